package hirfile

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/hir"
	"ember/internal/source"
)

type encoder struct {
	out       fileModule
	declIndex map[*hir.Decl]int32
	exprIndex map[*hir.Expr]int32
	funcIndex map[*hir.Func]int32
}

// Encode writes the module to w.
func Encode(w io.Writer, mod *hir.Module) error {
	out, err := buildModule(mod)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(&out)
}

func buildModule(mod *hir.Module) (fileModule, error) {
	if mod == nil {
		return fileModule{}, fmt.Errorf("hirfile: nil module")
	}
	e := &encoder{
		declIndex: make(map[*hir.Decl]int32, 16),
		exprIndex: make(map[*hir.Expr]int32, 64),
		funcIndex: make(map[*hir.Func]int32, 8),
	}
	e.out.Schema = schemaVersion
	e.out.Name = mod.Name
	for _, f := range mod.Funcs {
		e.out.Top = append(e.out.Top, e.addFunc(f))
	}
	for _, d := range mod.Globals {
		e.out.Globals = append(e.out.Globals, e.addDecl(d))
	}
	return e.out, nil
}

func encSpan(sp source.Span) fileSpan {
	return fileSpan{File: uint32(sp.File), Start: sp.Start, End: sp.End}
}

func (e *encoder) addDecl(d *hir.Decl) int32 {
	if d == nil {
		return noIndex
	}
	if idx, ok := e.declIndex[d]; ok {
		return idx
	}
	idx := int32(len(e.out.Decls))
	e.declIndex[d] = idx
	e.out.Decls = append(e.out.Decls, fileDecl{
		Kind:  uint8(d.Kind),
		Name:  d.Name,
		Type:  uint32(d.Type),
		Span:  encSpan(d.Span),
		Local: d.Local,
		Union: uint32(d.Union),
		Case:  int32(d.Case),
	})
	return idx
}

func (e *encoder) addFunc(f *hir.Func) int32 {
	if f == nil {
		return noIndex
	}
	if idx, ok := e.funcIndex[f]; ok {
		return idx
	}
	// Reserve the slot before encoding the body so recursive function
	// literals terminate.
	idx := int32(len(e.out.Funcs))
	e.funcIndex[f] = idx
	e.out.Funcs = append(e.out.Funcs, fileFunc{})

	var rec fileFunc
	rec.Name = f.Name
	rec.Span = encSpan(f.Span)
	rec.Result = uint32(f.Result)
	for _, d := range f.Params {
		rec.Params = append(rec.Params, e.addDecl(d))
	}
	for _, d := range f.Locals {
		rec.Locals = append(rec.Locals, e.addDecl(d))
	}
	for _, b := range f.Body {
		rec.Body = append(rec.Body, e.addExpr(b))
	}
	e.out.Funcs[idx] = rec
	return idx
}

func (e *encoder) addExpr(x *hir.Expr) int32 {
	if x == nil {
		return noIndex
	}
	if idx, ok := e.exprIndex[x]; ok {
		return idx
	}
	idx := int32(len(e.out.Exprs))
	e.exprIndex[x] = idx
	e.out.Exprs = append(e.out.Exprs, fileExpr{})

	rec := fileExpr{
		Kind:      uint8(x.Kind),
		Type:      uint32(x.Type),
		ValueKind: uint8(x.ValueKind),
		Span:      encSpan(x.Span),
		Operand:   noIndex,
		Callee:    noIndex,
		Decl:      noIndex,
		Fn:        noIndex,
	}
	switch data := x.Data.(type) {
	case hir.LoadData:
		rec.Operand = e.addExpr(data.Operand)
	case hir.ApplyData:
		rec.Callee = e.addExpr(data.Callee)
		for _, a := range data.Args {
			rec.Args = append(rec.Args, e.addExpr(a))
		}
	case hir.IntLitData:
		rec.Int = data.Value
	case hir.FloatLitData:
		rec.Float = data.Value
	case hir.TupleData:
		rec.Group = data.Grouping
		for _, el := range data.Elems {
			rec.Args = append(rec.Args, e.addExpr(el))
		}
	case hir.TupleElemData:
		rec.Operand = e.addExpr(data.Tuple)
		rec.Index = int32(data.Index)
	case hir.TupleShuffleData:
		rec.Operand = e.addExpr(data.Operand)
		for _, m := range data.Mapping {
			rec.Mapping = append(rec.Mapping, int32(m))
		}
	case hir.UnionUnwrapData:
		rec.Operand = e.addExpr(data.Operand)
	case hir.DeclRefData:
		rec.Decl = e.addDecl(data.Decl)
	case hir.FuncLitData:
		rec.Fn = e.addFunc(data.Fn)
	case hir.AnonArgData:
		rec.Index = int32(data.Index)
	case hir.UncheckedData:
		rec.Name = data.Name
	case nil:
	default:
		panic(fmt.Sprintf("hirfile: unhandled payload %T", x.Data))
	}
	e.out.Exprs[idx] = rec
	return idx
}
