package hir

import (
	"ember/internal/source"
	"ember/internal/types"
)

// ExprKind enumerates HIR expression kinds as they arrive from the front
// end, fully typed and resolved.
type ExprKind uint8

const (
	// ExprLoad wraps an addressable operand and denotes reading it as a value.
	ExprLoad ExprKind = iota
	// ExprCall represents a function call.
	ExprCall
	// ExprUnary represents a unary operator application.
	ExprUnary
	// ExprBinary represents a binary operator application.
	ExprBinary
	// ExprCtorCall represents a constructor call.
	ExprCtorCall
	// ExprMethodCall represents a method-dispatch call.
	ExprMethodCall
	// ExprIntLit represents an integer literal.
	ExprIntLit
	// ExprFloatLit represents a float literal.
	ExprFloatLit
	// ExprTuple represents a tuple literal, including single-element
	// grouping parentheses.
	ExprTuple
	// ExprTupleElem represents a tuple element projection.
	ExprTupleElem
	// ExprTupleShuffle reorders, drops or default-fills tuple elements to
	// match a differently shaped tuple type.
	ExprTupleShuffle
	// ExprUnionUnwrap looks through a single-case union.
	ExprUnionUnwrap
	// ExprDeclRef references a resolved declaration.
	ExprDeclRef
	// ExprFuncLit represents a function literal.
	ExprFuncLit
	// ExprClosureLit represents a closure literal.
	ExprClosureLit
	// ExprAnonArg represents an anonymous closure argument placeholder.
	ExprAnonArg

	// Unchecked kinds below are produced by the parser and must be rewritten
	// by the type checker; they never survive to lowering.

	// ExprUncheckedIdent is an unresolved identifier.
	ExprUncheckedIdent
	// ExprUncheckedMember is an unresolved member access.
	ExprUncheckedMember
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLoad:
		return "Load"
	case ExprCall:
		return "Call"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprCtorCall:
		return "CtorCall"
	case ExprMethodCall:
		return "MethodCall"
	case ExprIntLit:
		return "IntLit"
	case ExprFloatLit:
		return "FloatLit"
	case ExprTuple:
		return "Tuple"
	case ExprTupleElem:
		return "TupleElem"
	case ExprTupleShuffle:
		return "TupleShuffle"
	case ExprUnionUnwrap:
		return "UnionUnwrap"
	case ExprDeclRef:
		return "DeclRef"
	case ExprFuncLit:
		return "FuncLit"
	case ExprClosureLit:
		return "ClosureLit"
	case ExprAnonArg:
		return "AnonArg"
	case ExprUncheckedIdent:
		return "UncheckedIdent"
	case ExprUncheckedMember:
		return "UncheckedMember"
	default:
		return "Unknown"
	}
}

// Unchecked reports whether the kind belongs to the reserved pre-typecheck
// family that must never reach lowering.
func (k ExprKind) Unchecked() bool {
	return k >= ExprUncheckedIdent
}

// IsCallFamily reports whether the kind lowers through the call path.
// Unary/binary/constructor/method syntax are call expressions in disguise.
func (k ExprKind) IsCallFamily() bool {
	switch k {
	case ExprCall, ExprUnary, ExprBinary, ExprCtorCall, ExprMethodCall:
		return true
	default:
		return false
	}
}

// ValueKind tells whether the front end proved an expression denotes a
// storage location.
type ValueKind uint8

const (
	// RValue marks a transient value.
	RValue ValueKind = iota
	// LValue marks an addressable storage location.
	LValue
)

// Expr represents a type-checked HIR expression.
type Expr struct {
	Kind      ExprKind
	Type      types.TypeID // always filled by the front end
	ValueKind ValueKind
	Span      source.Span
	Data      ExprData // kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// LoadData holds data for ExprLoad.
type LoadData struct {
	Operand *Expr
}

// ApplyData holds data for every call-family kind. Callee and arguments are
// kept uniform so all call syntaxes share one lowering path.
type ApplyData struct {
	Callee *Expr
	Args   []*Expr
}

// IntLitData holds data for ExprIntLit.
type IntLitData struct {
	Value int64
}

// FloatLitData holds data for ExprFloatLit.
type FloatLitData struct {
	Value float64
}

// TupleData holds data for ExprTuple. Grouping marks a single-element tuple
// used purely for syntactic parenthesization; it is transparent to lowering.
type TupleData struct {
	Elems    []*Expr
	Grouping bool
}

// TupleElemData holds data for ExprTupleElem.
type TupleElemData struct {
	Tuple *Expr
	Index int
}

// ShuffleDefault marks a destination position filled with a synthesized
// default instead of a source element.
const ShuffleDefault = -1

// TupleShuffleData holds data for ExprTupleShuffle. Mapping has one entry
// per destination element: a source element index or ShuffleDefault.
type TupleShuffleData struct {
	Operand *Expr
	Mapping []int
}

// UnionUnwrapData holds data for ExprUnionUnwrap.
type UnionUnwrapData struct {
	Operand *Expr
}

// DeclRefData holds data for ExprDeclRef.
type DeclRefData struct {
	Decl *Decl
}

// FuncLitData holds data for ExprFuncLit and ExprClosureLit.
type FuncLitData struct {
	Fn *Func
}

// AnonArgData holds data for ExprAnonArg.
type AnonArgData struct {
	Index int
}

// UncheckedData holds data for the reserved unchecked kinds.
type UncheckedData struct {
	Name string
}

func (LoadData) exprData()         {}
func (ApplyData) exprData()        {}
func (IntLitData) exprData()       {}
func (FloatLitData) exprData()     {}
func (TupleData) exprData()        {}
func (TupleElemData) exprData()    {}
func (TupleShuffleData) exprData() {}
func (UnionUnwrapData) exprData()  {}
func (DeclRefData) exprData()      {}
func (FuncLitData) exprData()      {}
func (AnonArgData) exprData()      {}
func (UncheckedData) exprData()    {}
