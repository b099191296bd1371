package irgen

import (
	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/source"
	"ember/internal/types"
)

// The fake emitters synthesize structurally valid placeholder values after a
// diagnostic so lowering can continue. Downstream code must accept them
// without crashing; their contents are undefined and never executed.

// FakeRValue returns a placeholder unexploded value of the given type.
func (em *Emitter) FakeRValue(info TypeInfo) RValue {
	if info.Schema.IsScalar() {
		scalars := make([]Value, 0, MaxScalars)
		for _, k := range info.Schema.Scalars() {
			scalars = append(scalars, em.B.Undef(k))
		}
		return ForScalars(scalars...)
	}
	return ForAggregate(em.B.UndefAddr(info))
}

// FakeLValue returns a placeholder address of the given type.
func (em *Emitter) FakeLValue(info TypeInfo) Address {
	return MakeAddress(em.B.UndefAddr(info), info)
}

// FakeExplosion appends a placeholder exploded sequence of the given type.
func (em *Emitter) FakeExplosion(id types.TypeID, ex *Explosion) {
	info := em.Info.InfoOf(id)
	if info.Schema.IsScalar() {
		for _, k := range info.Schema.Scalars() {
			ex.Add(em.B.Undef(k))
		}
		return
	}
	if tinfo, ok := em.Types.TupleInfo(em.transparent(id)); ok {
		for _, elem := range tinfo.Elems {
			em.FakeExplosion(elem, ex)
		}
		return
	}
	ex.Add(em.B.UndefAddr(info))
}

func (em *Emitter) unimplemented(span source.Span, msg string) {
	em.diags.Report(diag.GenNotImplemented, diag.SevError, span, msg, nil)
}

// notAddressable reports that the expression has no storage location and
// returns a placeholder address in its stead.
func (em *Emitter) notAddressable(e *hir.Expr, info TypeInfo) Address {
	em.diags.Report(diag.GenNotAddressable, diag.SevError, e.Span,
		"cannot take the address of this expression", nil)
	return em.FakeLValue(info)
}
