package hir

import (
	"fmt"

	"ember/internal/source"
	"ember/internal/types"
)

// DeclKind enumerates declaration binding categories.
type DeclKind uint8

const (
	// DeclVar is a storage-backed variable; Local tells frame vs module scope.
	DeclVar DeclKind = iota
	// DeclParam is a function parameter, always frame-backed.
	DeclParam
	// DeclFunc is a named function, never addressable.
	DeclFunc
	// DeclCase is a union case constructor.
	DeclCase
	// DeclPatternElem is a pattern-bound element; lowering for it does not
	// exist yet and routes through the fallback path.
	DeclPatternElem

	// The kinds below never denote values; resolving one as a value is a
	// front-end contract violation.

	// DeclImport is an import binding.
	DeclImport
	// DeclTypeAlias is a type alias binding.
	DeclTypeAlias
	// DeclNamespace is a namespace binding.
	DeclNamespace
)

// String returns a human-readable name for the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "Var"
	case DeclParam:
		return "Param"
	case DeclFunc:
		return "Func"
	case DeclCase:
		return "Case"
	case DeclPatternElem:
		return "PatternElem"
	case DeclImport:
		return "Import"
	case DeclTypeAlias:
		return "TypeAlias"
	case DeclNamespace:
		return "Namespace"
	default:
		return fmt.Sprintf("DeclKind(%d)", k)
	}
}

// IsValue reports whether the declaration kind can denote a storable or
// callable value at all.
func (k DeclKind) IsValue() bool {
	switch k {
	case DeclImport, DeclTypeAlias, DeclNamespace:
		return false
	default:
		return true
	}
}

// Decl is a resolved declaration as handed over by the front end.
type Decl struct {
	Kind  DeclKind
	Name  string
	Type  types.TypeID
	Span  source.Span
	Local bool // frame scope vs module scope, meaningful for DeclVar

	// DeclCase only: the union this case injects into and the case index.
	Union types.TypeID
	Case  int
}

func (d *Decl) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", d.Kind, d.Name)
}
