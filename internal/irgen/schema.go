package irgen

import (
	"ember/internal/layout"
	"ember/internal/types"
)

// Schema describes a type's natural backend form: either a fixed ordered
// sequence of primitive scalar kinds, or a single in-memory aggregate.
type Schema struct {
	scalars   []ScalarKind
	aggregate bool
}

// ScalarSchema builds a scalar schema from the given kinds.
func ScalarSchema(kinds ...ScalarKind) Schema {
	return Schema{scalars: kinds}
}

// AggregateSchema builds the aggregate schema.
func AggregateSchema() Schema {
	return Schema{aggregate: true}
}

// IsScalar reports whether the type decomposes into scalars.
func (s Schema) IsScalar() bool {
	return !s.aggregate
}

// Scalars returns the ordered scalar kinds. Valid only when IsScalar.
func (s Schema) Scalars() []ScalarKind {
	return s.scalars
}

// TypeInfo is the physical descriptor of a type: storage size, alignment,
// and its scalar-or-aggregate schema. Immutable once computed.
type TypeInfo struct {
	Type   types.TypeID
	Size   int
	Align  int
	Schema Schema
}

// ValueCount returns how many values the type contributes to an exploded
// sequence: its scalar count, or one aggregate address.
func (i TypeInfo) ValueCount() int {
	if i.Schema.IsScalar() {
		return len(i.Schema.Scalars())
	}
	return 1
}

// TypeInfoProvider reports the physical descriptor for a type.
type TypeInfoProvider interface {
	InfoOf(id types.TypeID) TypeInfo
}

// Describer computes and caches TypeInfo from the type interner and the
// target layout engine.
type Describer struct {
	types  *types.Interner
	layout *layout.Engine
	cache  map[types.TypeID]TypeInfo
}

var _ TypeInfoProvider = (*Describer)(nil)

// NewDescriber returns a describer for the given interner and layout engine.
func NewDescriber(typesIn *types.Interner, engine *layout.Engine) *Describer {
	return &Describer{
		types:  typesIn,
		layout: engine,
		cache:  make(map[types.TypeID]TypeInfo, 64),
	}
}

// InfoOf returns the physical descriptor for a type.
func (d *Describer) InfoOf(id types.TypeID) TypeInfo {
	if info, ok := d.cache[id]; ok {
		return info
	}
	info := d.compute(id)
	d.cache[id] = info
	return info
}

func (d *Describer) compute(id types.TypeID) TypeInfo {
	info := TypeInfo{Type: id, Align: 1, Schema: AggregateSchema()}
	l, err := d.layout.LayoutOf(id)
	if err != nil {
		// Ill-formed types were already diagnosed by the front end; keep a
		// zero-sized aggregate so lowering can continue.
		return info
	}
	info.Size = l.Size
	info.Align = l.Align
	if scalars, ok := d.scalarSchema(id, MaxScalars); ok {
		info.Schema = ScalarSchema(scalars...)
	}
	return info
}

// scalarSchema flattens a type into at most budget scalar kinds. It returns
// false when the type is aggregate-only or decomposes too wide.
func (d *Describer) scalarSchema(id types.TypeID, budget int) ([]ScalarKind, bool) {
	tt, ok := d.types.Lookup(id)
	if !ok {
		return nil, false
	}
	switch tt.Kind {
	case types.KindUnit:
		return nil, true
	case types.KindBool:
		return []ScalarKind{ScalarI1}, budget >= 1
	case types.KindInt, types.KindUint:
		return []ScalarKind{intScalar(tt.Width)}, budget >= 1
	case types.KindFloat:
		if tt.Width == types.Width32 {
			return []ScalarKind{ScalarF32}, budget >= 1
		}
		return []ScalarKind{ScalarF64}, budget >= 1
	case types.KindPointer:
		return []ScalarKind{ScalarPtr}, budget >= 1
	case types.KindFn:
		// (entry, context) pair
		return []ScalarKind{ScalarPtr, ScalarPtr}, budget >= 2
	case types.KindTuple:
		info, ok := d.types.TupleInfo(id)
		if !ok {
			return nil, false
		}
		var out []ScalarKind
		for _, elem := range info.Elems {
			ks, ok := d.scalarSchema(elem, budget-len(out))
			if !ok {
				return nil, false
			}
			out = append(out, ks...)
			if len(out) > budget {
				return nil, false
			}
		}
		return out, true
	case types.KindUnion:
		// A single-case union is laid out exactly as its payload.
		if payload, ok := d.types.SingleCasePayload(id); ok {
			if payload == types.NoTypeID {
				return nil, true
			}
			return d.scalarSchema(payload, budget)
		}
		return nil, false
	default:
		return nil, false
	}
}

func intScalar(w types.Width) ScalarKind {
	switch w {
	case types.Width8:
		return ScalarI8
	case types.Width16:
		return ScalarI16
	case types.Width32:
		return ScalarI32
	default:
		return ScalarI64
	}
}
