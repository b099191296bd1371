// Package text renders lowered functions as LLVM-flavored textual IR. It is
// the reference backend: every value is a printable token and every
// instruction is a formatted line, which keeps the lowering contract easy to
// inspect in tests and dumps.
package text

// value is a printable backend token: a temporary name, a literal, a global
// or function symbol, or undef.
type value string

func (v value) String() string {
	return string(v)
}
