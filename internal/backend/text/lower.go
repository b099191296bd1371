package text

import (
	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/irgen"
)

// LowerFunc lowers one function to its textual definition. Frame slots for
// parameters and locals are allocated up front; the expression core then
// resolves declaration references against them. Functions are independent,
// so callers may lower several concurrently against one ModuleGen.
func LowerFunc(mg *ModuleGen, f *hir.Func, r diag.Reporter) string {
	fg := NewFuncGen(mg, "fn."+f.Name)
	frame := irgen.NewFrameMap()
	for _, d := range f.Params {
		frame.Define(d, fg.Temp(mg.Info.InfoOf(d.Type)))
	}
	for _, d := range f.Locals {
		frame.Define(d, fg.Temp(mg.Info.InfoOf(d.Type)))
	}

	em := irgen.NewEmitter(mg.Types, mg.Info, fg, frame, mg, fg, r)
	fg.Bind(em)

	body := f.Body
	var last *hir.Expr
	if len(body) > 0 {
		last = body[len(body)-1]
		body = body[:len(body)-1]
	}
	for _, e := range body {
		em.EmitIgnored(e)
	}

	resultInfo := mg.Info.InfoOf(f.Result)
	kinds := resultInfo.Schema.Scalars()
	switch {
	case last == nil || resultInfo.ValueCount() == 0:
		if last != nil {
			em.EmitIgnored(last)
		}
		fg.Printf("  ret void\n")
		return fg.Finish("void")

	case resultInfo.Schema.IsScalar() && len(kinds) == 1:
		v := em.EmitAsPrimitiveScalar(last)
		fg.Printf("  ret %s %s\n", scalarType(kinds[0]), v)
		return fg.Finish(scalarType(kinds[0]))

	default:
		// Wide and aggregate results return through an out slot; the slot
		// stands in for the caller-provided pointer in this reference
		// backend.
		out := fg.Temp(resultInfo)
		em.EmitInit(out, last)
		fg.Printf("  ret void\n")
		return fg.Finish("void")
	}
}
