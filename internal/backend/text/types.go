package text

import (
	"fmt"

	"ember/internal/irgen"
	"ember/internal/layout"
	"ember/internal/types"
)

// scalarType maps a scalar kind to its textual IR type.
func scalarType(k irgen.ScalarKind) string {
	switch k {
	case irgen.ScalarI1:
		return "i1"
	case irgen.ScalarI8:
		return "i8"
	case irgen.ScalarI16:
		return "i16"
	case irgen.ScalarI32:
		return "i32"
	case irgen.ScalarI64:
		return "i64"
	case irgen.ScalarF32:
		return "float"
	case irgen.ScalarF64:
		return "double"
	case irgen.ScalarPtr:
		return "ptr"
	default:
		panic(fmt.Sprintf("text: no IR type for scalar kind %v", k))
	}
}

func resolveUnionWrap(typesIn *types.Interner, id types.TypeID) types.TypeID {
	for {
		payload, ok := typesIn.SingleCasePayload(id)
		if !ok {
			return id
		}
		id = payload
	}
}

// scalarOffsets returns the byte offset of each scalar of a scalar-schema
// type, in schema order. The recursion mirrors how the schema was flattened.
func scalarOffsets(typesIn *types.Interner, engine *layout.Engine, id types.TypeID, base int) ([]int, error) {
	id = resolveUnionWrap(typesIn, id)
	if id == types.NoTypeID {
		// A payload-free single-case union carries no scalars.
		return nil, nil
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("text: unknown type id %d", id)
	}
	switch tt.Kind {
	case types.KindUnit:
		return nil, nil
	case types.KindBool, types.KindInt, types.KindUint, types.KindFloat, types.KindPointer:
		return []int{base}, nil
	case types.KindFn:
		return []int{base, base + engine.Target.PtrSize}, nil
	case types.KindTuple:
		info, ok := typesIn.TupleInfo(id)
		if !ok {
			return nil, fmt.Errorf("text: tuple info missing for type id %d", id)
		}
		var out []int
		for i, elem := range info.Elems {
			off, err := engine.ElemOffset(id, i)
			if err != nil {
				return nil, err
			}
			sub, err := scalarOffsets(typesIn, engine, elem, base+off)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("text: type kind %v has no scalar form", tt.Kind)
	}
}
