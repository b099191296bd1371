package irgen

import (
	"fmt"

	"ember/internal/hir"
)

// emitDeclRefLValue resolves a declaration reference to the address of its
// storage. Only declarations with storage are addressable; a reference to a
// function is a value, never a location.
func (em *Emitter) emitDeclRefLValue(e *hir.Expr, info TypeInfo) Address {
	d := exprData[hir.DeclRefData](e).Decl
	switch d.Kind {
	case hir.DeclImport, hir.DeclTypeAlias, hir.DeclNamespace:
		panic(fmt.Sprintf("irgen: declaration kind %v cannot be referenced as a value", d.Kind))

	case hir.DeclFunc:
		return em.notAddressable(e, info)

	case hir.DeclVar, hir.DeclParam:
		if d.Kind == hir.DeclVar && !d.Local {
			return em.Globals.AddressOf(d, info)
		}
		addr, ok := em.Frame.Lookup(d)
		if !ok {
			panic(fmt.Sprintf("irgen: no frame slot for %q", d.Name))
		}
		return addr

	case hir.DeclCase, hir.DeclPatternElem:
		em.unimplemented(e.Span, "cannot reference this declaration yet")
		return em.FakeLValue(info)
	}
	panic(fmt.Sprintf("irgen: bad declaration kind %v", d.Kind))
}

func (em *Emitter) emitDeclRefRValue(e *hir.Expr, info TypeInfo) RValue {
	d := exprData[hir.DeclRefData](e).Decl
	switch d.Kind {
	case hir.DeclImport, hir.DeclTypeAlias, hir.DeclNamespace:
		panic(fmt.Sprintf("irgen: declaration kind %v cannot be referenced as a value", d.Kind))

	case hir.DeclVar, hir.DeclParam:
		return em.B.Load(em.emitDeclRefLValue(e, info))

	case hir.DeclFunc:
		// (entry, context) pair; a plain function carries no context.
		return ForScalars(em.B.FuncEntry(d), em.B.Undef(ScalarPtr))

	case hir.DeclCase:
		return ForScalars(em.B.CaseInjection(d), em.B.Undef(ScalarPtr))

	case hir.DeclPatternElem:
		em.unimplemented(e.Span, "cannot reference this declaration yet")
		return em.FakeRValue(info)
	}
	panic(fmt.Sprintf("irgen: bad declaration kind %v", d.Kind))
}

func (em *Emitter) emitExplodedDeclRef(e *hir.Expr, ex *Explosion) {
	info := em.Info.InfoOf(e.Type)
	em.explode(em.emitDeclRefRValue(e, info), info, ex)
}
