// Package irgen lowers type-checked HIR expressions into backend values.
//
// Every expression can be asked for in three representation-specialized
// forms: an unexploded RValue (at most MaxScalars primitives or one
// aggregate address), an exploded scalar sequence appended to an Explosion,
// or an Address when the front end proved the expression addressable.
//
// The package owns no storage and builds no instructions itself; it drives
// an external Builder, call lowerer and storage registries. Constructs
// without a lowering rule yet are reported once through the diagnostic
// reporter and continued with type-correct fake values so the rest of the
// unit can still be processed.
package irgen
