package irgen

import "fmt"

// Value is an opaque backend value produced by a Builder.
type Value interface {
	String() string
}

// ScalarKind enumerates the primitive backend value kinds a type can
// decompose into.
type ScalarKind uint8

const (
	ScalarInvalid ScalarKind = iota
	ScalarI1
	ScalarI8
	ScalarI16
	ScalarI32
	ScalarI64
	ScalarF32
	ScalarF64
	ScalarPtr
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarI1:
		return "i1"
	case ScalarI8:
		return "i8"
	case ScalarI16:
		return "i16"
	case ScalarI32:
		return "i32"
	case ScalarI64:
		return "i64"
	case ScalarF32:
		return "f32"
	case ScalarF64:
		return "f64"
	case ScalarPtr:
		return "ptr"
	default:
		return fmt.Sprintf("ScalarKind(%d)", k)
	}
}

// Float reports whether the scalar kind is a floating-point kind.
func (k ScalarKind) Float() bool {
	return k == ScalarF32 || k == ScalarF64
}
