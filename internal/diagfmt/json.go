package diagfmt

import (
	"encoding/json"
	"io"

	"ember/internal/diag"
	"ember/internal/source"
)

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
}

type jsonNote struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	File     string     `json:"file,omitempty"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

type jsonReport struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Errors      bool             `json:"errors"`
}

// JSON writes diagnostics as a single JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	report := jsonReport{Errors: bag.HasErrors()}
	for _, d := range bag.Items() {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
		}
		if opts.IncludePositions {
			jd.File, jd.Line, jd.Col = position(fs, d.Primary)
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jn := jsonNote{Message: n.Msg}
				if opts.IncludePositions {
					jn.File, jn.Line, jn.Col = position(fs, n.Span)
				}
				jd.Notes = append(jd.Notes, jn)
			}
		}
		report.Diagnostics = append(report.Diagnostics, jd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func position(fs *source.FileSet, sp source.Span) (string, uint32, uint32) {
	if fs == nil {
		return "", 0, 0
	}
	f := fs.Get(sp.File)
	if f == nil {
		return "", 0, 0
	}
	lc := fs.Position(sp.File, sp.Start)
	return f.Path, lc.Line, lc.Col
}
