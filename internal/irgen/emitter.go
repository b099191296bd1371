package irgen

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/types"
)

// Emitter lowers the expressions of one function. It carries no state of
// its own across calls; every entry point is a pure structural recursion
// over the expression tree. Independent emitters may run concurrently as
// long as they do not share a mutable frame registry.
type Emitter struct {
	Types   *types.Interner
	Info    TypeInfoProvider
	B       Builder
	Frame   FrameRegistry
	Globals GlobalRegistry
	Calls   CallLowerer

	diags diag.Reporter
}

// NewEmitter wires an emitter to its collaborators. The reporter is wrapped
// so that every not-yet-implemented construct is reported exactly once per
// source location.
func NewEmitter(typesIn *types.Interner, info TypeInfoProvider, b Builder, frame FrameRegistry, globals GlobalRegistry, calls CallLowerer, r diag.Reporter) *Emitter {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Emitter{
		Types:   typesIn,
		Info:    info,
		B:       b,
		Frame:   frame,
		Globals: globals,
		Calls:   calls,
		diags:   diag.NewDedupReporter(r),
	}
}

// exprData extracts a kind-specific payload. A mismatch means the front end
// built an inconsistent tree, which is fatal.
func exprData[T hir.ExprData](e *hir.Expr) T {
	d, ok := e.Data.(T)
	if !ok {
		panic(fmt.Sprintf("irgen: %s: unexpected payload %T", e.Kind, e.Data))
	}
	return d
}

// explode appends the unexploded value's decomposed components to the
// explosion. Scalars are appended directly; an in-memory tuple is read
// element by element so that the exploded form of a tuple is always the
// concatenation of its elements' exploded forms; any other aggregate
// contributes its address.
func (em *Emitter) explode(rv RValue, info TypeInfo, ex *Explosion) {
	if rv.IsScalar() {
		for _, v := range rv.Scalars() {
			ex.Add(v)
		}
		return
	}
	if tinfo, ok := em.Types.TupleInfo(em.transparent(info.Type)); ok {
		addr := MakeAddress(rv.Aggregate(), info)
		for i, elemID := range tinfo.Elems {
			elemInfo := em.Info.InfoOf(elemID)
			elemAddr := em.B.ElemAddr(addr, i, elemInfo)
			em.explode(em.B.Load(elemAddr), elemInfo, ex)
		}
		return
	}
	ex.Add(rv.Aggregate())
}

// transparent looks through single-case unions, which are laid out exactly
// as their payload.
func (em *Emitter) transparent(id types.TypeID) types.TypeID {
	for {
		payload, ok := em.Types.SingleCasePayload(id)
		if !ok || payload == types.NoTypeID {
			return id
		}
		id = payload
	}
}
