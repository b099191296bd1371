package irgen

import (
	"ember/internal/hir"
	"ember/internal/types"
)

// Builder is the backend instruction builder the lowering core drives. It
// owns value representation and instruction emission; the core only decides
// what to emit.
type Builder interface {
	// ConstInt materializes an integer constant of the given width.
	ConstInt(w types.Width, v int64) Value
	// ConstFloat materializes a floating-point constant of the given width.
	ConstFloat(w types.Width, v float64) Value
	// Zero materializes the zero value of a scalar kind.
	Zero(k ScalarKind) Value
	// Undef materializes an indeterminate value of a scalar kind. Used only
	// for error recovery and absent closure contexts.
	Undef(k ScalarKind) Value
	// UndefAddr materializes an indeterminate address for the given type.
	// Used only for error recovery.
	UndefAddr(info TypeInfo) Value

	// Temp allocates a frame-scoped scratch slot. The enclosing function
	// context owns the storage.
	Temp(info TypeInfo) Address
	// Load reads the value form stored at addr.
	Load(addr Address) RValue
	// Store writes a value form to addr.
	Store(rv RValue, addr Address)
	// MemSet fills size bytes at addr with b.
	MemSet(addr Address, b byte, size, align int)
	// ElemAddr projects the address of a tuple element.
	ElemAddr(addr Address, index int, elemInfo TypeInfo) Address

	// FuncEntry returns the code entry pointer of a function declaration.
	FuncEntry(d *hir.Decl) Value
	// CaseInjection returns the injection function pointer of a union case
	// constructor.
	CaseInjection(d *hir.Decl) Value
}

// CallLowerer lowers every call-family expression: plain calls, unary and
// binary operator applications, constructor calls and method-dispatch
// calls all share this one path.
type CallLowerer interface {
	LowerCall(e *hir.Expr, info TypeInfo) RValue
}

// FrameRegistry resolves frame-backed declarations to their already
// allocated slots. Allocation happens in the enclosing function-lowering
// context, never here.
type FrameRegistry interface {
	Lookup(d *hir.Decl) (Address, bool)
}

// GlobalRegistry resolves module-scope declarations to module storage.
type GlobalRegistry interface {
	AddressOf(d *hir.Decl, info TypeInfo) Address
}

// FrameMap is the standard FrameRegistry: a plain slot table filled by the
// function-lowering context before expression lowering starts.
type FrameMap struct {
	slots map[*hir.Decl]Address
}

// NewFrameMap returns an empty frame map.
func NewFrameMap() *FrameMap {
	return &FrameMap{slots: make(map[*hir.Decl]Address, 8)}
}

// Define records the slot allocated for a declaration.
func (m *FrameMap) Define(d *hir.Decl, addr Address) {
	m.slots[d] = addr
}

// Lookup returns the slot for a declaration.
func (m *FrameMap) Lookup(d *hir.Decl) (Address, bool) {
	addr, ok := m.slots[d]
	return addr, ok
}
