package layout

import (
	"ember/internal/types"
)

func (e *Engine) computeLayout(id types.TypeID, state *layoutState) (TypeLayout, *Error) {
	if id == types.NoTypeID {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	typesIn := e.Types
	if typesIn == nil {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrUnknownType, Type: id}
	}

	switch tt.Kind {
	case types.KindUnit:
		return TypeLayout{Size: 0, Align: 1}, nil

	case types.KindBool:
		return TypeLayout{Size: 1, Align: 1}, nil

	case types.KindInt, types.KindUint, types.KindFloat:
		return scalarLayoutBytes(int(tt.Width) / 8), nil

	case types.KindPointer, types.KindFn:
		// A function value is an (entry, context) pair but each half is
		// pointer-sized; the aggregate form is two pointers.
		if tt.Kind == types.KindFn {
			p := e.ptrLayout()
			return TypeLayout{Size: 2 * p.Size, Align: p.Align}, nil
		}
		return e.ptrLayout(), nil

	case types.KindTuple:
		return e.tupleLayout(id, state)

	case types.KindUnion:
		return e.unionLayout(id, state)

	default:
		return TypeLayout{Size: 0, Align: 1}, nil
	}
}

func (e *Engine) ptrLayout() TypeLayout {
	ptrSize := e.Target.PtrSize
	ptrAlign := e.Target.PtrAlign
	if ptrSize <= 0 {
		ptrSize = 8
	}
	if ptrAlign <= 0 {
		ptrAlign = ptrSize
	}
	return TypeLayout{Size: ptrSize, Align: ptrAlign}
}

func scalarLayoutBytes(size int) TypeLayout {
	if size <= 0 {
		return TypeLayout{Size: 0, Align: 1}
	}
	return TypeLayout{Size: size, Align: size}
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func (e *Engine) tupleLayout(id types.TypeID, state *layoutState) (TypeLayout, *Error) {
	info, ok := e.Types.TupleInfo(id)
	if !ok || len(info.Elems) == 0 {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	offsets := make([]int, len(info.Elems))
	size := 0
	align := 1
	for i, elem := range info.Elems {
		el, err := e.layoutOf(elem, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		elAlign := el.Align
		if elAlign <= 0 {
			elAlign = 1
		}
		size = roundUp(size, elAlign)
		offsets[i] = size
		size += el.Size
		if elAlign > align {
			align = elAlign
		}
	}
	size = roundUp(size, align)
	return TypeLayout{Size: size, Align: align, FieldOffsets: offsets}, nil
}

// unionLayout places a uint32 tag first, then the widest payload aligned to
// the payload alignment. A single-case union needs no tag and is laid out
// exactly as its payload.
func (e *Engine) unionLayout(id types.TypeID, state *layoutState) (TypeLayout, *Error) {
	info, ok := e.Types.UnionInfo(id)
	if !ok || len(info.Cases) == 0 {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	if len(info.Cases) == 1 {
		if info.Cases[0].Payload == types.NoTypeID {
			return TypeLayout{Size: 0, Align: 1}, nil
		}
		return e.layoutOf(info.Cases[0].Payload, state)
	}
	const tagSize = 4
	payloadSize := 0
	payloadAlign := 1
	for _, c := range info.Cases {
		if c.Payload == types.NoTypeID {
			continue
		}
		pl, err := e.layoutOf(c.Payload, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		if pl.Size > payloadSize {
			payloadSize = pl.Size
		}
		if pl.Align > payloadAlign {
			payloadAlign = pl.Align
		}
	}
	align := tagSize
	if payloadAlign > align {
		align = payloadAlign
	}
	payloadOffset := roundUp(tagSize, payloadAlign)
	size := roundUp(payloadOffset+payloadSize, align)
	return TypeLayout{
		Size:          size,
		Align:         align,
		TagSize:       tagSize,
		PayloadOffset: payloadOffset,
	}, nil
}
