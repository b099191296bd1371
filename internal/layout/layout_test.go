package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ember/internal/source"
	"ember/internal/types"
)

func newEngine(t *testing.T) (*types.Interner, *Engine) {
	t.Helper()
	typesIn := types.NewInterner()
	return typesIn, New(X86_64LinuxGNU(), typesIn)
}

func mustLayout(t *testing.T, e *Engine, id types.TypeID) TypeLayout {
	t.Helper()
	l, err := e.LayoutOf(id)
	if err != nil {
		t.Fatalf("LayoutOf(%d): %v", id, err)
	}
	return l
}

func TestPrimitiveLayouts(t *testing.T) {
	typesIn, e := newEngine(t)
	b := typesIn.Builtins()

	tests := []struct {
		name  string
		id    types.TypeID
		size  int
		align int
	}{
		{"unit", b.Unit, 0, 1},
		{"bool", b.Bool, 1, 1},
		{"int32", b.Int32, 4, 4},
		{"int64", b.Int64, 8, 8},
		{"float32", b.Float32, 4, 4},
		{"float64", b.Float64, 8, 8},
		{"pointer", typesIn.Intern(types.MakePointer(b.Int32)), 8, 8},
		{"fn", typesIn.RegisterFn(nil, b.Unit), 16, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLayout(t, e, tt.id)
			if l.Size != tt.size || l.Align != tt.align {
				t.Fatalf("layout = %d/%d, want %d/%d", l.Size, l.Align, tt.size, tt.align)
			}
		})
	}
}

func TestTupleLayoutPadsElements(t *testing.T) {
	typesIn, e := newEngine(t)
	b := typesIn.Builtins()

	// (i32, i64, bool) -> i64 forces 8-byte alignment and padding.
	tup := typesIn.RegisterTuple([]types.TypeID{b.Int32, b.Int64, b.Bool})
	l := mustLayout(t, e, tup)

	wantOffsets := []int{0, 8, 16}
	if len(l.FieldOffsets) != len(wantOffsets) {
		t.Fatalf("FieldOffsets = %v, want %v", l.FieldOffsets, wantOffsets)
	}
	for i, off := range wantOffsets {
		if l.FieldOffsets[i] != off {
			t.Fatalf("offset %d = %d, want %d", i, l.FieldOffsets[i], off)
		}
	}
	if l.Size != 24 || l.Align != 8 {
		t.Fatalf("layout = %d/%d, want 24/8", l.Size, l.Align)
	}
}

func TestSingleCaseUnionIsPayloadLayout(t *testing.T) {
	typesIn, e := newEngine(t)
	b := typesIn.Builtins()

	u := typesIn.RegisterUnion("Wrap", source.Span{})
	typesIn.SetUnionCases(u, []types.UnionCase{{Name: "Only", Payload: b.Int64}})

	l := mustLayout(t, e, u)
	if l.Size != 8 || l.Align != 8 || l.TagSize != 0 {
		t.Fatalf("layout = %d/%d tag %d, want 8/8 tag 0", l.Size, l.Align, l.TagSize)
	}
}

func TestMultiCaseUnionCarriesTag(t *testing.T) {
	typesIn, e := newEngine(t)
	b := typesIn.Builtins()

	u := typesIn.RegisterUnion("Either", source.Span{})
	typesIn.SetUnionCases(u, []types.UnionCase{
		{Name: "L", Payload: b.Int32},
		{Name: "R", Payload: b.Float64},
	})

	l := mustLayout(t, e, u)
	if l.TagSize != 4 {
		t.Fatalf("TagSize = %d, want 4", l.TagSize)
	}
	if l.PayloadOffset != 8 {
		t.Fatalf("PayloadOffset = %d, want 8", l.PayloadOffset)
	}
	if l.Size != 16 || l.Align != 8 {
		t.Fatalf("layout = %d/%d, want 16/8", l.Size, l.Align)
	}
}

func TestRecursiveUnionIsAnError(t *testing.T) {
	typesIn, e := newEngine(t)

	u := typesIn.RegisterUnion("Rec", source.Span{})
	tup := typesIn.RegisterTuple([]types.TypeID{u, u})
	typesIn.SetUnionCases(u, []types.UnionCase{
		{Name: "A", Payload: tup},
		{Name: "B", Payload: tup},
	})

	_, err := e.LayoutOf(u)
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.Kind != ErrRecursiveUnsized {
		t.Fatalf("LayoutOf = %v, want recursive-unsized error", err)
	}
}

func TestElemOffset(t *testing.T) {
	typesIn, e := newEngine(t)
	b := typesIn.Builtins()

	tup := typesIn.RegisterTuple([]types.TypeID{b.Bool, b.Int32})
	off, err := e.ElemOffset(tup, 1)
	if err != nil {
		t.Fatalf("ElemOffset: %v", err)
	}
	if off != 4 {
		t.Fatalf("ElemOffset = %d, want 4", off)
	}
}

func TestElemOffsetRejectsBadIndex(t *testing.T) {
	typesIn, e := newEngine(t)
	b := typesIn.Builtins()

	tup := typesIn.RegisterTuple([]types.TypeID{b.Bool, b.Int32})
	for _, idx := range []int{-1, 2} {
		_, err := e.ElemOffset(tup, idx)
		var lerr *Error
		if !errors.As(err, &lerr) || lerr.Kind != ErrBadElemIndex {
			t.Fatalf("ElemOffset(%d) error = %v, want ErrBadElemIndex", idx, err)
		}
	}
}

func TestFromManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ember.toml")
	manifest := `[target]
triple = "aarch64-linux-gnu"
ptr_size = 8
ptr_align = 8
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	target, err := FromManifest(path)
	if err != nil {
		t.Fatalf("FromManifest: %v", err)
	}
	if target.Triple != "aarch64-linux-gnu" || target.PtrSize != 8 {
		t.Fatalf("target = %+v", target)
	}
}

func TestFromManifestRejectsBadPointerSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ember.toml")
	if err := os.WriteFile(path, []byte("[target]\nptr_size = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromManifest(path); err == nil {
		t.Fatal("expected error for unsupported pointer size")
	}
}
