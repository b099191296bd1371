package hirfile

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/hir"
	"ember/internal/source"
	"ember/internal/types"
)

type decoder struct {
	in    fileModule
	decls []*hir.Decl
	exprs []*hir.Expr
	funcs []*hir.Func
}

// Decode reads a module from r.
func Decode(r io.Reader) (*hir.Module, error) {
	var in fileModule
	if err := msgpack.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("hirfile: decode: %w", err)
	}
	return rebuildModule(in)
}

func rebuildModule(in fileModule) (*hir.Module, error) {
	d := &decoder{in: in}
	if d.in.Schema != schemaVersion {
		return nil, fmt.Errorf("hirfile: schema version %d, want %d", d.in.Schema, schemaVersion)
	}

	// Allocate every node first so cross-references resolve in one pass.
	d.decls = make([]*hir.Decl, len(d.in.Decls))
	for i := range d.decls {
		d.decls[i] = &hir.Decl{}
	}
	d.exprs = make([]*hir.Expr, len(d.in.Exprs))
	for i := range d.exprs {
		d.exprs[i] = &hir.Expr{}
	}
	d.funcs = make([]*hir.Func, len(d.in.Funcs))
	for i := range d.funcs {
		d.funcs[i] = &hir.Func{}
	}

	for i, rec := range d.in.Decls {
		*d.decls[i] = hir.Decl{
			Kind:  hir.DeclKind(rec.Kind),
			Name:  rec.Name,
			Type:  types.TypeID(rec.Type),
			Span:  decSpan(rec.Span),
			Local: rec.Local,
			Union: types.TypeID(rec.Union),
			Case:  int(rec.Case),
		}
	}
	for i, rec := range d.in.Exprs {
		if err := d.fillExpr(d.exprs[i], rec); err != nil {
			return nil, err
		}
	}
	for i, rec := range d.in.Funcs {
		f := d.funcs[i]
		f.Name = rec.Name
		f.Span = decSpan(rec.Span)
		f.Result = types.TypeID(rec.Result)
		for _, di := range rec.Params {
			f.Params = append(f.Params, d.decl(di))
		}
		for _, di := range rec.Locals {
			f.Locals = append(f.Locals, d.decl(di))
		}
		for _, ei := range rec.Body {
			f.Body = append(f.Body, d.expr(ei))
		}
	}

	mod := &hir.Module{Name: d.in.Name}
	for _, fi := range d.in.Top {
		mod.Funcs = append(mod.Funcs, d.fn(fi))
	}
	for _, di := range d.in.Globals {
		mod.Globals = append(mod.Globals, d.decl(di))
	}
	return mod, nil
}

func decSpan(sp fileSpan) source.Span {
	return source.Span{File: source.FileID(sp.File), Start: sp.Start, End: sp.End}
}

func (d *decoder) decl(idx int32) *hir.Decl {
	if idx == noIndex || int(idx) >= len(d.decls) {
		return nil
	}
	return d.decls[idx]
}

func (d *decoder) expr(idx int32) *hir.Expr {
	if idx == noIndex || int(idx) >= len(d.exprs) {
		return nil
	}
	return d.exprs[idx]
}

func (d *decoder) fn(idx int32) *hir.Func {
	if idx == noIndex || int(idx) >= len(d.funcs) {
		return nil
	}
	return d.funcs[idx]
}

func (d *decoder) fillExpr(x *hir.Expr, rec fileExpr) error {
	x.Kind = hir.ExprKind(rec.Kind)
	x.Type = types.TypeID(rec.Type)
	x.ValueKind = hir.ValueKind(rec.ValueKind)
	x.Span = decSpan(rec.Span)

	switch x.Kind {
	case hir.ExprLoad:
		x.Data = hir.LoadData{Operand: d.expr(rec.Operand)}
	case hir.ExprCall, hir.ExprUnary, hir.ExprBinary, hir.ExprCtorCall, hir.ExprMethodCall:
		data := hir.ApplyData{Callee: d.expr(rec.Callee)}
		for _, ai := range rec.Args {
			data.Args = append(data.Args, d.expr(ai))
		}
		x.Data = data
	case hir.ExprIntLit:
		x.Data = hir.IntLitData{Value: rec.Int}
	case hir.ExprFloatLit:
		x.Data = hir.FloatLitData{Value: rec.Float}
	case hir.ExprTuple:
		data := hir.TupleData{Grouping: rec.Group}
		for _, ei := range rec.Args {
			data.Elems = append(data.Elems, d.expr(ei))
		}
		x.Data = data
	case hir.ExprTupleElem:
		x.Data = hir.TupleElemData{Tuple: d.expr(rec.Operand), Index: int(rec.Index)}
	case hir.ExprTupleShuffle:
		data := hir.TupleShuffleData{Operand: d.expr(rec.Operand)}
		for _, m := range rec.Mapping {
			data.Mapping = append(data.Mapping, int(m))
		}
		x.Data = data
	case hir.ExprUnionUnwrap:
		x.Data = hir.UnionUnwrapData{Operand: d.expr(rec.Operand)}
	case hir.ExprDeclRef:
		x.Data = hir.DeclRefData{Decl: d.decl(rec.Decl)}
	case hir.ExprFuncLit, hir.ExprClosureLit:
		x.Data = hir.FuncLitData{Fn: d.fn(rec.Fn)}
	case hir.ExprAnonArg:
		x.Data = hir.AnonArgData{Index: int(rec.Index)}
	case hir.ExprUncheckedIdent, hir.ExprUncheckedMember:
		x.Data = hir.UncheckedData{Name: rec.Name}
	default:
		return fmt.Errorf("hirfile: unknown expression kind %d", rec.Kind)
	}
	return nil
}
