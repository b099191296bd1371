package irgen

import "errors"

// ExplosionKind selects how aggressively composite values decompose into
// scalars. The lowering core only threads it through; the interpretation
// belongs to the type-info provider and call lowerer.
type ExplosionKind uint8

const (
	// ExplosionMinimal decomposes only what the ABI requires.
	ExplosionMinimal ExplosionKind = iota
	// ExplosionMaximal decomposes as far as the schema allows.
	ExplosionMaximal
)

// ErrUnderflow is the panic value raised when claiming from an empty
// explosion. Underflow means producer and consumer disagree about a type's
// scalar count, which is an internal contract breach, never user input.
var ErrUnderflow = errors.New("irgen: explosion underflow")

// Explosion is an ordered, consume-once sequence of primitive backend
// values representing one logical value. Values are claimed strictly in
// FIFO order; no random access exists so lowering and consuming code stay
// in lock-step about how many primitives a value decomposes into.
type Explosion struct {
	kind   ExplosionKind
	values []Value
	next   int
}

// NewExplosion returns an empty explosion of the given kind.
func NewExplosion(kind ExplosionKind) *Explosion {
	return &Explosion{kind: kind}
}

// Kind returns the explosion's decomposition mode.
func (ex *Explosion) Kind() ExplosionKind {
	return ex.kind
}

// Add appends a value to the back of the explosion.
func (ex *Explosion) Add(v Value) {
	ex.values = append(ex.values, v)
}

// ClaimNext removes and returns the frontmost unclaimed value. It panics
// with ErrUnderflow when the explosion is empty.
func (ex *Explosion) ClaimNext() Value {
	if ex.next >= len(ex.values) {
		panic(ErrUnderflow)
	}
	v := ex.values[ex.next]
	ex.next++
	return v
}

// Empty reports whether every added value has been claimed.
func (ex *Explosion) Empty() bool {
	return ex.next >= len(ex.values)
}

// Size returns the number of unclaimed values.
func (ex *Explosion) Size() int {
	return len(ex.values) - ex.next
}
