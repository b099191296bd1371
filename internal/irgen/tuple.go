package irgen

import (
	"fmt"

	"ember/internal/hir"
	"ember/internal/types"
)

func (em *Emitter) tupleElems(id types.TypeID) *types.TupleInfo {
	tinfo, ok := em.Types.TupleInfo(em.transparent(id))
	if !ok {
		panic(fmt.Sprintf("irgen: expected tuple type, got type id %d", id))
	}
	return tinfo
}

// emitTupleRValue lowers a multi-element tuple literal. Element order is a
// hard contract: call-argument lowering relies on positional order.
func (em *Emitter) emitTupleRValue(e *hir.Expr, data hir.TupleData, info TypeInfo) RValue {
	if info.Schema.IsScalar() {
		tmp := NewExplosion(ExplosionMinimal)
		for _, elem := range data.Elems {
			em.EmitExploded(elem, tmp)
		}
		scalars := make([]Value, 0, MaxScalars)
		for !tmp.Empty() {
			scalars = append(scalars, tmp.ClaimNext())
		}
		return ForScalars(scalars...)
	}

	dest := em.B.Temp(info)
	for i, elem := range data.Elems {
		elemInfo := em.Info.InfoOf(elem.Type)
		em.EmitRValueToMemory(elem, em.B.ElemAddr(dest, i, elemInfo))
	}
	return ForAggregate(dest.Addr())
}

func (em *Emitter) emitExplodedTuple(e *hir.Expr, data hir.TupleData, ex *Explosion) {
	for _, elem := range data.Elems {
		em.EmitExploded(elem, ex)
	}
}

// tupleBaseAddr returns an address holding the tuple value when one exists:
// the tuple is addressable, or its schema keeps it in memory anyway.
func (em *Emitter) tupleBaseAddr(tuple *hir.Expr) (Address, bool) {
	if addr, ok := em.TryEmitLValue(tuple); ok {
		return addr, true
	}
	info := em.Info.InfoOf(tuple.Type)
	if !info.Schema.IsScalar() {
		rv := em.emitRValue(tuple, info)
		if !rv.IsScalar() {
			return MakeAddress(rv.Aggregate(), info), true
		}
	}
	return Address{}, false
}

func (em *Emitter) emitTupleElemRValue(e *hir.Expr, info TypeInfo) RValue {
	data := exprData[hir.TupleElemData](e)
	if base, ok := em.tupleBaseAddr(data.Tuple); ok {
		return em.B.Load(em.B.ElemAddr(base, data.Index, info))
	}

	// The tuple has a scalar schema, so every element is scalar too; claim
	// the element's values out of the exploded tuple in order.
	tinfo := em.tupleElems(data.Tuple.Type)
	tmp := NewExplosion(ExplosionMinimal)
	em.EmitExploded(data.Tuple, tmp)
	em.skipElems(tmp, tinfo.Elems[:data.Index])
	scalars := make([]Value, 0, MaxScalars)
	for range info.Schema.Scalars() {
		scalars = append(scalars, tmp.ClaimNext())
	}
	return ForScalars(scalars...)
}

func (em *Emitter) emitExplodedTupleElem(e *hir.Expr, ex *Explosion) {
	data := exprData[hir.TupleElemData](e)
	info := em.Info.InfoOf(e.Type)
	if base, ok := em.tupleBaseAddr(data.Tuple); ok {
		rv := em.B.Load(em.B.ElemAddr(base, data.Index, info))
		em.explode(rv, info, ex)
		return
	}

	tinfo := em.tupleElems(data.Tuple.Type)
	tmp := NewExplosion(ex.Kind())
	em.EmitExploded(data.Tuple, tmp)
	em.skipElems(tmp, tinfo.Elems[:data.Index])
	for range info.Schema.Scalars() {
		ex.Add(tmp.ClaimNext())
	}
}

func (em *Emitter) emitTupleElemLValue(e *hir.Expr, info TypeInfo) Address {
	data := exprData[hir.TupleElemData](e)
	base := em.EmitLValue(data.Tuple)
	return em.B.ElemAddr(base, data.Index, info)
}

// skipElems claims and discards the values of the given leading elements.
func (em *Emitter) skipElems(ex *Explosion, elems []types.TypeID) {
	for _, id := range elems {
		elemInfo := em.Info.InfoOf(id)
		for range elemInfo.Schema.Scalars() {
			ex.ClaimNext()
		}
	}
}

// tupleElementRValues lowers the source tuple once and returns one
// unexploded value per source element.
func (em *Emitter) tupleElementRValues(src *hir.Expr, kind ExplosionKind) []RValue {
	tinfo := em.tupleElems(src.Type)
	out := make([]RValue, len(tinfo.Elems))

	if base, ok := em.tupleBaseAddr(src); ok {
		for i, id := range tinfo.Elems {
			elemInfo := em.Info.InfoOf(id)
			out[i] = em.B.Load(em.B.ElemAddr(base, i, elemInfo))
		}
		return out
	}

	tmp := NewExplosion(kind)
	em.EmitExploded(src, tmp)
	for i, id := range tinfo.Elems {
		elemInfo := em.Info.InfoOf(id)
		scalars := make([]Value, 0, MaxScalars)
		for range elemInfo.Schema.Scalars() {
			scalars = append(scalars, tmp.ClaimNext())
		}
		out[i] = ForScalars(scalars...)
	}
	return out
}

// emitExplodedTupleShuffle permutes, drops or default-fills the source
// tuple's elements to match the destination tuple shape. Each destination
// position is treated independently.
func (em *Emitter) emitExplodedTupleShuffle(e *hir.Expr, ex *Explosion) {
	data := exprData[hir.TupleShuffleData](e)
	destElems := em.tupleElems(e.Type).Elems
	srcVals := em.tupleElementRValues(data.Operand, ex.Kind())

	for destIdx, srcIdx := range data.Mapping {
		elemInfo := em.Info.InfoOf(destElems[destIdx])
		if srcIdx == hir.ShuffleDefault {
			em.emitDefaultInto(elemInfo, ex)
			continue
		}
		em.explode(srcVals[srcIdx], elemInfo, ex)
	}
}

func (em *Emitter) emitTupleShuffleRValue(e *hir.Expr, info TypeInfo) RValue {
	if info.Schema.IsScalar() {
		tmp := NewExplosion(ExplosionMinimal)
		em.emitExplodedTupleShuffle(e, tmp)
		scalars := make([]Value, 0, MaxScalars)
		for !tmp.Empty() {
			scalars = append(scalars, tmp.ClaimNext())
		}
		return ForScalars(scalars...)
	}

	data := exprData[hir.TupleShuffleData](e)
	destElems := em.tupleElems(e.Type).Elems
	srcVals := em.tupleElementRValues(data.Operand, ExplosionMinimal)

	dest := em.B.Temp(info)
	for destIdx, srcIdx := range data.Mapping {
		elemInfo := em.Info.InfoOf(destElems[destIdx])
		dstAddr := em.B.ElemAddr(dest, destIdx, elemInfo)
		if srcIdx == hir.ShuffleDefault {
			em.EmitZeroInit(dstAddr)
			continue
		}
		em.B.Store(srcVals[srcIdx], dstAddr)
	}
	return ForAggregate(dest.Addr())
}

// emitDefaultInto appends a synthesized default (zero) value for a
// destination element absent from the shuffle source.
func (em *Emitter) emitDefaultInto(info TypeInfo, ex *Explosion) {
	if info.Schema.IsScalar() {
		for _, k := range info.Schema.Scalars() {
			ex.Add(em.B.Zero(k))
		}
		return
	}
	if tinfo, ok := em.Types.TupleInfo(em.transparent(info.Type)); ok {
		for _, id := range tinfo.Elems {
			em.emitDefaultInto(em.Info.InfoOf(id), ex)
		}
		return
	}
	tmp := em.B.Temp(info)
	em.B.MemSet(tmp, 0, info.Size, info.Align)
	ex.Add(tmp.Addr())
}
