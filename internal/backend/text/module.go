package text

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"ember/internal/hir"
	"ember/internal/irgen"
	"ember/internal/layout"
	"ember/internal/types"
)

// ModuleGen holds module-level backend state: registered globals and the
// target description. Function bodies are produced by FuncGen instances and
// assembled at the end, so functions can be lowered concurrently.
type ModuleGen struct {
	Types  *types.Interner
	Layout *layout.Engine
	Info   irgen.TypeInfoProvider

	mu      sync.Mutex
	globals map[*hir.Decl]globalDef
}

type globalDef struct {
	name  string
	size  int
	align int
}

// NewModuleGen returns an empty module generator.
func NewModuleGen(typesIn *types.Interner, engine *layout.Engine, info irgen.TypeInfoProvider) *ModuleGen {
	return &ModuleGen{
		Types:   typesIn,
		Layout:  engine,
		Info:    info,
		globals: make(map[*hir.Decl]globalDef, 8),
	}
}

var _ irgen.GlobalRegistry = (*ModuleGen)(nil)

// AddressOf registers module storage for a global declaration on first use
// and returns its address. Safe for concurrent use.
func (mg *ModuleGen) AddressOf(d *hir.Decl, info irgen.TypeInfo) irgen.Address {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	def, ok := mg.globals[d]
	if !ok {
		def = globalDef{
			name:  fmt.Sprintf("g.%s", d.Name),
			size:  info.Size,
			align: info.Align,
		}
		mg.globals[d] = def
	}
	return irgen.MakeAddress(value("@"+def.name), info)
}

// Assemble renders the whole module: preamble, global definitions sorted by
// symbol, then the given function bodies in order.
func (mg *ModuleGen) Assemble(funcs []string) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "target triple = %q\n\n", mg.Layout.Target.Triple)

	mg.mu.Lock()
	defs := make([]globalDef, 0, len(mg.globals))
	for _, def := range mg.globals {
		defs = append(defs, def)
	}
	mg.mu.Unlock()

	// Registration order depends on which goroutine touched a global
	// first; sort by symbol so output is stable across runs.
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })
	for _, def := range defs {
		align := def.align
		if align < 1 {
			align = 1
		}
		fmt.Fprintf(&buf, "@%s = global [%d x i8] zeroinitializer, align %d\n", def.name, def.size, align)
	}
	if len(defs) > 0 {
		buf.WriteString("\n")
	}

	for i, f := range funcs {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(f)
	}
	return buf.String()
}
