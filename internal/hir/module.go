package hir

import (
	"ember/internal/source"
	"ember/internal/types"
)

// Func is a lowering unit: frame-backed declarations plus the expressions
// to lower, in order. Statement structure is flattened by the front end.
type Func struct {
	Name   string
	Span   source.Span
	Result types.TypeID
	Params []*Decl
	Locals []*Decl
	Body   []*Expr
}

// Module is a set of functions plus the module-scope declarations they
// reference.
type Module struct {
	Name    string
	Funcs   []*Func
	Globals []*Decl
}
