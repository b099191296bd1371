package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ember/internal/backend/text"
	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/irgen"
	"ember/internal/layout"
	"ember/internal/types"
)

// Options controls module lowering.
type Options struct {
	Target layout.Target
	// Jobs caps concurrent function lowering; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the number of collected diagnostics per function.
	MaxDiagnostics int
}

// FuncResult is the lowering outcome for a single function.
type FuncResult struct {
	Name string
	Text string
	Bag  *diag.Bag
}

// Result is the lowering outcome for a whole module.
type Result struct {
	IR    string
	Funcs []FuncResult
	Bag   *diag.Bag
}

// LowerModule lowers every function of the module concurrently and
// assembles the textual IR. Function order in the output matches the input
// module; diagnostics are merged and sorted deterministically.
func LowerModule(ctx context.Context, mod *hir.Module, typesIn *types.Interner, opts Options) (*Result, error) {
	engine := layout.New(opts.Target, typesIn)
	desc := irgen.NewDescriber(typesIn, engine)
	mg := text.NewModuleGen(typesIn, engine, desc)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = 256
	}

	funcs := mod.Funcs
	results := make([]FuncResult, len(funcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(funcs), 1)))
	for i, f := range funcs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(maxDiags)
			ir := text.LowerFunc(mg, f, diag.BagReporter{Bag: bag})
			results[i] = FuncResult{Name: f.Name, Text: ir, Bag: bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := diag.NewBag(maxDiags * max(len(funcs), 1))
	texts := make([]string, len(results))
	for i, fr := range results {
		texts[i] = fr.Text
		merged.Merge(fr.Bag)
	}
	merged.Sort()

	return &Result{
		IR:    mg.Assemble(texts),
		Funcs: results,
		Bag:   merged,
	}, nil
}
