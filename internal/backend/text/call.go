package text

import (
	"fmt"
	"strings"

	"ember/internal/hir"
	"ember/internal/irgen"
	"ember/internal/types"
)

var _ irgen.CallLowerer = (*FuncGen)(nil)

// LowerCall lowers every call-family expression through one path. Arguments
// travel in exploded form. Results that do not fit a single scalar return
// through a caller-allocated out slot passed as the first operand.
func (fg *FuncGen) LowerCall(e *hir.Expr, info irgen.TypeInfo) irgen.RValue {
	if fg.em == nil {
		panic("text: call lowering requires a bound emitter")
	}
	data, ok := e.Data.(hir.ApplyData)
	if !ok {
		panic(fmt.Sprintf("text: %v payload is %T, want ApplyData", e.Kind, e.Data))
	}

	callee, ctx := fg.lowerCallee(data.Callee)

	args := irgen.NewExplosion(irgen.ExplosionMinimal)
	for _, a := range data.Args {
		fg.em.EmitExploded(a, args)
	}

	var operands []string
	appendOperand := func(ty string, v irgen.Value) {
		operands = append(operands, fmt.Sprintf("%s %s", ty, v))
	}

	kinds := info.Schema.Scalars()
	direct := info.Schema.IsScalar() && len(kinds) <= 1

	var out irgen.Address
	if !direct {
		out = fg.Temp(info)
		appendOperand("ptr", out.Addr())
	}
	if ctx != nil {
		appendOperand("ptr", ctx)
	}
	for _, a := range data.Args {
		fg.claimArgOperands(a.Type, args, appendOperand)
	}
	if !args.Empty() {
		panic(fmt.Sprintf("text: %d exploded argument values left unclaimed", args.Size()))
	}

	operandList := strings.Join(operands, ", ")
	switch {
	case direct && len(kinds) == 0:
		fmt.Fprintf(&fg.body, "  call void %s(%s)\n", callee, operandList)
		return irgen.ForScalars()
	case direct:
		tmp := fg.newTmp()
		fmt.Fprintf(&fg.body, "  %s = call %s %s(%s)\n", tmp, scalarType(kinds[0]), callee, operandList)
		return irgen.ForScalars(tmp)
	default:
		fmt.Fprintf(&fg.body, "  call void %s(%s)\n", callee, operandList)
		if info.Schema.IsScalar() {
			return fg.Load(out)
		}
		return irgen.ForAggregate(out.Addr())
	}
}

// claimArgOperands claims one exploded argument from args, leaf by leaf.
// The recursion mirrors how the lowering core explodes values: tuples
// contribute their elements in order even when the tuple itself has an
// aggregate layout, scalar-schema leaves contribute one typed operand per
// scalar, and any other aggregate contributes its address.
func (fg *FuncGen) claimArgOperands(id types.TypeID, args *irgen.Explosion, add func(ty string, v irgen.Value)) {
	id = resolveUnionWrap(fg.mod.Types, id)
	if id == types.NoTypeID {
		return
	}
	if info, ok := fg.mod.Types.TupleInfo(id); ok {
		for _, elem := range info.Elems {
			fg.claimArgOperands(elem, args, add)
		}
		return
	}
	aInfo := fg.mod.Info.InfoOf(id)
	if aInfo.Schema.IsScalar() {
		for _, k := range aInfo.Schema.Scalars() {
			add(scalarType(k), args.ClaimNext())
		}
		return
	}
	add("ptr", args.ClaimNext())
}

// lowerCallee resolves the callee to a callable symbol or pointer, plus the
// closure context operand when one is present. A direct reference to a named
// function skips materializing the (entry, context) pair.
func (fg *FuncGen) lowerCallee(callee *hir.Expr) (irgen.Value, irgen.Value) {
	if callee.Kind == hir.ExprDeclRef {
		if d, ok := callee.Data.(hir.DeclRefData); ok && d.Decl.Kind == hir.DeclFunc {
			return fg.FuncEntry(d.Decl), nil
		}
		if d, ok := callee.Data.(hir.DeclRefData); ok && d.Decl.Kind == hir.DeclCase {
			return fg.CaseInjection(d.Decl), nil
		}
	}

	pair := irgen.NewExplosion(irgen.ExplosionMinimal)
	fg.em.EmitExploded(callee, pair)
	entry := pair.ClaimNext()
	ctx := pair.ClaimNext()
	return entry, ctx
}
