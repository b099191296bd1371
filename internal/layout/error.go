package layout

import (
	"fmt"
	"strings"

	"ember/internal/types"
)

// ErrorKind enumerates types of layout calculation errors.
type ErrorKind uint8

const (
	// ErrRecursiveUnsized indicates a recursive type with no fixed size.
	ErrRecursiveUnsized ErrorKind = iota + 1
	// ErrUnknownType indicates a TypeID with no interner entry.
	ErrUnknownType
	// ErrBadElemIndex indicates an element index outside the tuple's arity.
	ErrBadElemIndex
)

// Error represents an error during memory layout calculation.
type Error struct {
	Kind  ErrorKind
	Type  types.TypeID
	Cycle []types.TypeID // for ErrRecursiveUnsized
	Index int            // for ErrBadElemIndex
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ErrRecursiveUnsized:
		if len(e.Cycle) == 0 {
			return fmt.Sprintf("recursive value type has infinite size (type#%d)", e.Type)
		}
		parts := make([]string, 0, len(e.Cycle))
		for _, id := range e.Cycle {
			parts = append(parts, fmt.Sprintf("type#%d", id))
		}
		return fmt.Sprintf("recursive value type has infinite size (cycle: %s)", strings.Join(parts, " -> "))
	case ErrUnknownType:
		return fmt.Sprintf("unknown type id %d", e.Type)
	case ErrBadElemIndex:
		return fmt.Sprintf("type#%d has no element %d", e.Type, e.Index)
	default:
		return fmt.Sprintf("layout error kind=%d type#%d", e.Kind, e.Type)
	}
}
