package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddAndLookup(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("main.em", []byte("let x = 1\n"), FileVirtual)

	got, ok := fs.Lookup("main.em")
	if !ok || got != id {
		t.Fatalf("Lookup = %d, %v, want %d", got, ok, id)
	}
	f := fs.Get(id)
	if f == nil || f.Path != "main.em" || f.Flags&FileVirtual == 0 {
		t.Fatalf("Get = %+v", f)
	}
	if fs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", fs.Len())
	}
}

func TestGetInvalid(t *testing.T) {
	fs := NewFileSet()
	if fs.Get(NoFileID) != nil {
		t.Fatal("Get(NoFileID) must be nil")
	}
	if fs.Get(FileID(5)) != nil {
		t.Fatal("Get past the end must be nil")
	}
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("pos.em", []byte("ab\ncd\n\nef"), 0)

	tests := []struct {
		offset uint32
		line   uint32
		col    uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
		{8, 4, 2},
	}
	for _, tt := range tests {
		lc := fs.Position(id, tt.offset)
		if lc.Line != tt.line || lc.Col != tt.col {
			t.Fatalf("Position(%d) = %d:%d, want %d:%d", tt.offset, lc.Line, lc.Col, tt.line, tt.col)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.em")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "hello\n" {
		t.Fatalf("Content = %q", f.Content)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.em")); err == nil {
		t.Fatal("Load of a missing file must fail")
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}

	c := a.Cover(b)
	if c.Start != 2 || c.End != 8 {
		t.Fatalf("Cover = %+v", c)
	}
	if !c.Contains(a) || !c.Contains(b) {
		t.Fatal("covering span must contain both inputs")
	}

	other := Span{File: 2, Start: 0, End: 1}
	if got := a.Cover(other); got != a {
		t.Fatal("Cover across files must be a no-op")
	}
	if a.Contains(other) {
		t.Fatal("Contains across files must be false")
	}
}
