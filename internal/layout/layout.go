package layout

import (
	"ember/internal/types"
)

// TypeLayout is the ABI layout of a type for a specific Target.
type TypeLayout struct {
	Size  int
	Align int

	// Tuple-only: byte offsets of every element.
	FieldOffsets []int

	// Union-only ABI queries.
	TagSize       int
	PayloadOffset int
}

// Engine computes memory layout for types.
type Engine struct {
	Target Target
	Types  *types.Interner

	cache *cache
}

// New creates a new layout engine for the specified target.
func New(target Target, typesIn *types.Interner) *Engine {
	return &Engine{
		Target: target,
		Types:  typesIn,
		cache:  newCache(),
	}
}

type layoutState struct {
	stack []types.TypeID
	index map[types.TypeID]int
}

func newLayoutState() *layoutState {
	return &layoutState{
		index: make(map[types.TypeID]int, 8),
	}
}

// LayoutOf computes and caches the layout of a type.
func (e *Engine) LayoutOf(t types.TypeID) (TypeLayout, error) {
	l, err := e.layoutOf(t, newLayoutState())
	if err != nil {
		return l, err
	}
	return l, nil
}

func (e *Engine) layoutOf(t types.TypeID, state *layoutState) (TypeLayout, *Error) {
	if e.cache == nil {
		e.cache = newCache()
	}
	if cached, ok := e.cache.get(t); ok {
		return cached.Layout, cached.Err
	}

	if idx, ok := state.index[t]; ok {
		cycle := append([]types.TypeID(nil), state.stack[idx:]...)
		cycle = append(cycle, t)
		err := &Error{Kind: ErrRecursiveUnsized, Type: t, Cycle: cycle}
		e.cache.put(t, cacheEntry{Layout: TypeLayout{Size: 0, Align: 1}, Err: err})
		return TypeLayout{Size: 0, Align: 1}, err
	}

	state.index[t] = len(state.stack)
	state.stack = append(state.stack, t)
	l, err := e.computeLayout(t, state)
	state.stack = state.stack[:len(state.stack)-1]
	delete(state.index, t)

	e.cache.put(t, cacheEntry{Layout: l, Err: err})
	return l, err
}

// SizeOf returns the size of a type in bytes.
func (e *Engine) SizeOf(t types.TypeID) (int, error) {
	l, err := e.LayoutOf(t)
	return l.Size, err
}

// AlignOf returns the alignment requirement of a type in bytes.
func (e *Engine) AlignOf(t types.TypeID) (int, error) {
	l, err := e.LayoutOf(t)
	return l.Align, err
}

// ElemOffset returns the byte offset of a tuple element.
func (e *Engine) ElemOffset(tupleT types.TypeID, elemIdx int) (int, error) {
	l, err := e.LayoutOf(tupleT)
	if err != nil {
		return 0, err
	}
	if elemIdx < 0 || elemIdx >= len(l.FieldOffsets) {
		return 0, &Error{Kind: ErrBadElemIndex, Type: tupleT, Index: elemIdx}
	}
	return l.FieldOffsets[elemIdx], nil
}
