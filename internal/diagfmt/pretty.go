// Package diagfmt renders diagnostics for terminal and machine output.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ember/internal/diag"
	"ember/internal/source"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	noteColor = color.New(color.FgBlue)
)

func sevLabel(sev diag.Severity, useColor bool) string {
	var c *color.Color
	var label string
	switch sev {
	case diag.SevError:
		c, label = errColor, "error"
	case diag.SevWarning:
		c, label = warnColor, "warning"
	default:
		c, label = infoColor, "info"
	}
	if !useColor {
		return label
	}
	return c.Sprint(label)
}

// Pretty writes diagnostics in a human-readable form, one per block:
//
//	<path>:<line>:<col>: <severity> <code>: <message>
//	  <source line>
//	  <caret underline>
//
// The bag is expected to be sorted.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeOne(w, d.Primary, d.Severity, d.Code.String(), d.Message, fs, opts)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			prefix := "note"
			if opts.Color {
				prefix = noteColor.Sprint(prefix)
			}
			fmt.Fprintf(w, "  %s: %s\n", prefix, n.Msg)
			writeContext(w, n.Span, fs)
		}
	}
}

func writeOne(w io.Writer, sp source.Span, sev diag.Severity, code, msg string, fs *source.FileSet, opts PrettyOpts) {
	loc := "<unknown>"
	if fs != nil {
		if f := fs.Get(sp.File); f != nil {
			lc := fs.Position(sp.File, sp.Start)
			loc = fmt.Sprintf("%s:%d:%d", f.Path, lc.Line, lc.Col)
		}
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", loc, sevLabel(sev, opts.Color), code, msg)
	writeContext(w, sp, fs)
}

// writeContext prints the offending source line with a caret underline.
func writeContext(w io.Writer, sp source.Span, fs *source.FileSet) {
	if fs == nil {
		return
	}
	f := fs.Get(sp.File)
	if f == nil || int(sp.Start) > len(f.Content) {
		return
	}
	content := string(f.Content)
	lineStart := strings.LastIndexByte(content[:sp.Start], '\n') + 1
	lineEnd := strings.IndexByte(content[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content)
	} else {
		lineEnd += lineStart
	}
	line := content[lineStart:lineEnd]
	fmt.Fprintf(w, "  %s\n", line)

	col := int(sp.Start) - lineStart
	width := int(sp.End) - int(sp.Start)
	if width < 1 {
		width = 1
	}
	if col+width > len(line)+1 {
		width = len(line) - col + 1
	}
	if col < 0 || width < 1 {
		return
	}
	fmt.Fprintf(w, "  %s^%s\n", strings.Repeat(" ", col), strings.Repeat("~", width-1))
}
