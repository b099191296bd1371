package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
)

func testBag(fs *source.FileSet) *diag.Bag {
	id := fs.Add("main.em", []byte("let x = oops\n"), source.FileVirtual)
	sp := source.Span{File: id, Start: 8, End: 12}

	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.GenNotImplemented, sp, "cannot lower this expression yet").
		WithNote(sp, "value replaced with a placeholder"))
	bag.Add(diag.New(diag.SevWarning, diag.GenInfo, sp, "result unused"))
	bag.Sort()
	return bag
}

func TestPretty(t *testing.T) {
	fs := source.NewFileSet()
	bag := testBag(fs)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"main.em:1:9: error EM7001: cannot lower this expression yet",
		"  let x = oops\n",
		"  note: value replaced with a placeholder",
		"warning EM7000: result unused",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Caret underline covers the offending span.
	if !strings.Contains(out, "          ^~~~\n") {
		t.Fatalf("output missing caret underline:\n%s", out)
	}
}

func TestPrettyWithoutFileSet(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.GenLayout, source.NoSpan, "layout failed"))

	var buf bytes.Buffer
	Pretty(&buf, bag, nil, PrettyOpts{})
	if !strings.Contains(buf.String(), "<unknown>: error EM7004: layout failed") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	fs := source.NewFileSet()
	bag := testBag(fs)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var report struct {
		Diagnostics []struct {
			Severity string `json:"severity"`
			Code     string `json:"code"`
			Message  string `json:"message"`
			File     string `json:"file"`
			Line     uint32 `json:"line"`
			Col      uint32 `json:"col"`
			Notes    []struct {
				Message string `json:"message"`
			} `json:"notes"`
		} `json:"diagnostics"`
		Errors bool `json:"errors"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if !report.Errors || len(report.Diagnostics) != 2 {
		t.Fatalf("report = %+v", report)
	}
	d := report.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "EM7001" || d.File != "main.em" || d.Line != 1 || d.Col != 9 {
		t.Fatalf("first diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "value replaced with a placeholder" {
		t.Fatalf("notes = %+v", d.Notes)
	}
}
