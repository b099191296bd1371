package irgen

import "fmt"

// MaxScalars bounds how many primitives an unexploded RValue may carry.
// Types whose flattened schema exceeds it keep an aggregate representation.
const MaxScalars = 2

// RValue is the unexploded form of a value: either up to MaxScalars
// primitive scalars, or a single address of an in-memory aggregate.
type RValue struct {
	scalars   []Value
	aggregate Value
}

// ForScalars builds a scalar RValue. It panics when more than MaxScalars
// values are supplied; such types must go through the aggregate form.
func ForScalars(vs ...Value) RValue {
	if len(vs) > MaxScalars {
		panic(fmt.Sprintf("irgen: %d scalars exceed RValue capacity %d", len(vs), MaxScalars))
	}
	return RValue{scalars: vs}
}

// ForAggregate builds an aggregate RValue holding the address of the value.
func ForAggregate(addr Value) RValue {
	return RValue{aggregate: addr}
}

// IsScalar reports whether the RValue holds scalars rather than an
// aggregate address.
func (rv RValue) IsScalar() bool {
	return rv.aggregate == nil
}

// Scalars returns the scalar values. Valid only when IsScalar.
func (rv RValue) Scalars() []Value {
	return rv.scalars
}

// Aggregate returns the aggregate address. Valid only when !IsScalar.
func (rv RValue) Aggregate() Value {
	return rv.aggregate
}
