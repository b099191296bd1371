package irgen

import (
	"fmt"

	"ember/internal/hir"
	"ember/internal/types"
)

// EmitRValue lowers an expression to its unexploded value form. The
// expression need not actually have r-value kind.
func (em *Emitter) EmitRValue(e *hir.Expr) RValue {
	return em.emitRValue(e, em.Info.InfoOf(e.Type))
}

func (em *Emitter) emitRValue(e *hir.Expr, info TypeInfo) RValue {
	switch e.Kind {
	case hir.ExprUncheckedIdent, hir.ExprUncheckedMember:
		panic(fmt.Sprintf("irgen: %s must not survive to lowering", e.Kind))

	case hir.ExprLoad:
		return em.emitRValue(exprData[hir.LoadData](e).Operand, info)

	case hir.ExprCall, hir.ExprUnary, hir.ExprBinary, hir.ExprCtorCall, hir.ExprMethodCall:
		return em.Calls.LowerCall(e, info)

	case hir.ExprIntLit:
		return ForScalars(em.emitIntLit(e))
	case hir.ExprFloatLit:
		return ForScalars(em.emitFloatLit(e))

	case hir.ExprTuple:
		data := exprData[hir.TupleData](e)
		if data.Grouping {
			return em.emitRValue(data.Elems[0], info)
		}
		return em.emitTupleRValue(e, data, info)

	case hir.ExprTupleElem:
		return em.emitTupleElemRValue(e, info)

	case hir.ExprTupleShuffle:
		return em.emitTupleShuffleRValue(e, info)

	case hir.ExprUnionUnwrap:
		// Single-case unions are laid out as their payload; the operand's
		// value already has the payload's representation.
		return em.emitRValue(exprData[hir.UnionUnwrapData](e).Operand, info)

	case hir.ExprDeclRef:
		return em.emitDeclRefRValue(e, info)

	case hir.ExprFuncLit, hir.ExprClosureLit, hir.ExprAnonArg:
		em.unimplemented(e.Span, "cannot generate r-values for this expression yet")
		return em.FakeRValue(info)
	}
	panic(fmt.Sprintf("irgen: bad expression kind %s", e.Kind))
}

// EmitExploded lowers an expression and appends its fully decomposed value
// sequence to the caller-supplied explosion.
func (em *Emitter) EmitExploded(e *hir.Expr, ex *Explosion) {
	switch e.Kind {
	case hir.ExprUncheckedIdent, hir.ExprUncheckedMember:
		panic(fmt.Sprintf("irgen: %s must not survive to lowering", e.Kind))

	case hir.ExprLoad:
		em.EmitExploded(exprData[hir.LoadData](e).Operand, ex)

	case hir.ExprCall, hir.ExprUnary, hir.ExprBinary, hir.ExprCtorCall, hir.ExprMethodCall:
		info := em.Info.InfoOf(e.Type)
		em.explode(em.Calls.LowerCall(e, info), info, ex)

	case hir.ExprIntLit:
		ex.Add(em.emitIntLit(e))
	case hir.ExprFloatLit:
		ex.Add(em.emitFloatLit(e))

	case hir.ExprTuple:
		data := exprData[hir.TupleData](e)
		if data.Grouping {
			em.EmitExploded(data.Elems[0], ex)
			return
		}
		em.emitExplodedTuple(e, data, ex)

	case hir.ExprTupleElem:
		em.emitExplodedTupleElem(e, ex)

	case hir.ExprTupleShuffle:
		em.emitExplodedTupleShuffle(e, ex)

	case hir.ExprUnionUnwrap:
		em.EmitExploded(exprData[hir.UnionUnwrapData](e).Operand, ex)

	case hir.ExprDeclRef:
		em.emitExplodedDeclRef(e, ex)

	case hir.ExprFuncLit, hir.ExprClosureLit, hir.ExprAnonArg:
		em.unimplemented(e.Span, "cannot explode r-values for this expression yet")
		em.FakeExplosion(e.Type, ex)

	default:
		panic(fmt.Sprintf("irgen: bad expression kind %s", e.Kind))
	}
}

// EmitLValue lowers an expression to the address it denotes. Expressions
// the front end did not prove addressable are reported and continued with
// a fake address; only contract breaches are fatal.
func (em *Emitter) EmitLValue(e *hir.Expr) Address {
	info := em.Info.InfoOf(e.Type)
	switch e.Kind {
	case hir.ExprUncheckedIdent, hir.ExprUncheckedMember:
		panic(fmt.Sprintf("irgen: %s must not survive to lowering", e.Kind))

	case hir.ExprCall, hir.ExprUnary, hir.ExprBinary,
		hir.ExprIntLit, hir.ExprFloatLit,
		hir.ExprTupleShuffle, hir.ExprFuncLit, hir.ExprClosureLit,
		hir.ExprAnonArg, hir.ExprLoad:
		// Never addressable. Reaching here means the front end failed to
		// reject malformed input; recover rather than crash.
		return em.notAddressable(e, info)

	case hir.ExprCtorCall, hir.ExprMethodCall:
		em.unimplemented(e.Span, "cannot generate l-values for this expression yet")
		return em.FakeLValue(info)

	case hir.ExprTuple:
		data := exprData[hir.TupleData](e)
		if !data.Grouping {
			return em.notAddressable(e, info)
		}
		return em.EmitLValue(data.Elems[0])

	case hir.ExprTupleElem:
		return em.emitTupleElemLValue(e, info)

	case hir.ExprUnionUnwrap:
		return em.EmitLValue(exprData[hir.UnionUnwrapData](e).Operand)

	case hir.ExprDeclRef:
		return em.emitDeclRefLValue(e, info)
	}
	panic(fmt.Sprintf("irgen: bad expression kind %s", e.Kind))
}

// TryEmitLValue emits the expression as an underlying l-value when it is
// provably addressable, as a local optimization for consumers that can use
// an address but do not require one.
func (em *Emitter) TryEmitLValue(e *hir.Expr) (Address, bool) {
	if e.ValueKind == hir.LValue {
		return em.EmitLValue(e), true
	}
	switch e.Kind {
	case hir.ExprUncheckedIdent, hir.ExprUncheckedMember:
		panic(fmt.Sprintf("irgen: %s must not survive to lowering", e.Kind))

	case hir.ExprLoad:
		return em.EmitLValue(exprData[hir.LoadData](e).Operand), true

	case hir.ExprTuple:
		data := exprData[hir.TupleData](e)
		if data.Grouping {
			return em.TryEmitLValue(data.Elems[0])
		}
		return Address{}, false

	default:
		return Address{}, false
	}
}

// EmitAsPrimitiveScalar lowers an expression that must have primitive
// scalar type to that single scalar. Convenience over building an
// explosion at the call site.
func (em *Emitter) EmitAsPrimitiveScalar(e *hir.Expr) Value {
	ex := NewExplosion(ExplosionMinimal)
	em.EmitExploded(e, ex)
	v := ex.ClaimNext()
	if !ex.Empty() {
		panic(fmt.Sprintf("irgen: expression of kind %s is not a primitive scalar", e.Kind))
	}
	return v
}

// EmitInit lowers an expression as the initializer of the given location.
func (em *Emitter) EmitInit(addr Address, e *hir.Expr) {
	em.EmitRValueToMemory(e, addr)
}

// EmitRValueToMemory lowers an expression directly into memory.
func (em *Emitter) EmitRValueToMemory(e *hir.Expr, addr Address) {
	rv := em.emitRValue(e, addr.Info())
	em.B.Store(rv, addr)
}

// EmitZeroInit zero-initializes the given location. Scalar schemas store
// zeros; aggregate schemas use one memset.
func (em *Emitter) EmitZeroInit(addr Address) {
	info := addr.Info()
	if info.Schema.IsScalar() {
		scalars := make([]Value, 0, MaxScalars)
		for _, k := range info.Schema.Scalars() {
			scalars = append(scalars, em.B.Zero(k))
		}
		em.B.Store(ForScalars(scalars...), addr)
		return
	}
	em.B.MemSet(addr, 0, info.Size, info.Align)
}

// EmitIgnored lowers an expression whose value is discarded.
func (em *Emitter) EmitIgnored(e *hir.Expr) {
	em.EmitRValue(e)
}

func (em *Emitter) emitIntLit(e *hir.Expr) Value {
	data := exprData[hir.IntLitData](e)
	return em.B.ConstInt(em.numericWidth(e.Type), data.Value)
}

func (em *Emitter) emitFloatLit(e *hir.Expr) Value {
	data := exprData[hir.FloatLitData](e)
	return em.B.ConstFloat(em.numericWidth(e.Type), data.Value)
}

func (em *Emitter) numericWidth(id types.TypeID) types.Width {
	tt, ok := em.Types.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("irgen: literal with unknown type id %d", id))
	}
	switch tt.Kind {
	case types.KindInt, types.KindUint, types.KindFloat:
		return tt.Width
	case types.KindBool:
		return types.Width8
	}
	panic(fmt.Sprintf("irgen: literal with non-numeric type %s", tt.Kind))
}
