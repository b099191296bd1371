// Package diag defines the diagnostic model shared by lowering phases.
//
// Diagnostic is the central record: a Severity, a stable Code, a human
// oriented Message, the Primary source.Span, and optional Notes with
// secondary spans. The package performs no formatting or IO; rendering
// lives in the CLI layer.
//
// Phases emit through a diag.Reporter to stay decoupled from storage.
// BagReporter aggregates diagnostics into a Bag which supports sorting and
// merging; DedupReporter guarantees that one construct is reported at most
// once per (code, span, message) — the contract the expression lowerer
// relies on for its not-yet-implemented fallback paths.
package diag
