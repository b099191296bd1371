package hirfile

import (
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/hir"
	"ember/internal/types"
)

// fileBundle is the on-disk container: the type table plus the module, in
// one msgpack object so readers never split a buffered stream.
type fileBundle struct {
	Types  fileTypeTable
	Module fileModule
}

// Write serializes the module together with its type table.
func Write(w io.Writer, mod *hir.Module, in *types.Interner) error {
	table, err := buildTypeTable(in)
	if err != nil {
		return err
	}
	fm, err := buildModule(mod)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(&fileBundle{Types: table, Module: fm})
}

// Read deserializes a module and the interner it was typed against.
func Read(r io.Reader) (*hir.Module, *types.Interner, error) {
	var b fileBundle
	if err := msgpack.NewDecoder(r).Decode(&b); err != nil {
		return nil, nil, err
	}
	in, err := rebuildInterner(b.Types)
	if err != nil {
		return nil, nil, err
	}
	mod, err := rebuildModule(b.Module)
	if err != nil {
		return nil, nil, err
	}
	return mod, in, nil
}

// ReadFile loads a module bundle from disk.
func ReadFile(path string) (*hir.Module, *types.Interner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Read(f)
}

// WriteFile stores a module bundle on disk.
func WriteFile(path string, mod *hir.Module, in *types.Interner) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, mod, in); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
