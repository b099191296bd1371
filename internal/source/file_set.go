package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves spans to
// line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID // path -> latest id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from bytes, computes its line index and hash, and
// returns a new FileID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file count overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[path] = id
	return id
}

// Load reads a file from disk and adds it to the set.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return NoFileID, err
	}
	return fs.Add(path, content, 0), nil
}

// Get returns the file for an ID, or nil when the ID is invalid.
func (fs *FileSet) Get(id FileID) *File {
	if id == NoFileID || int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Lookup returns the latest FileID added under path.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.index[path]
	return id, ok
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Position resolves a byte offset in a file to a 1-based line/column pair.
func (fs *FileSet) Position(id FileID, offset uint32) LineCol {
	f := fs.Get(id)
	if f == nil {
		return LineCol{Line: 1, Col: 1}
	}
	return positionIn(f, offset)
}

// SpanStart resolves the start of a span to a line/column pair.
func (fs *FileSet) SpanStart(sp Span) LineCol {
	return fs.Position(sp.File, sp.Start)
}

func positionIn(f *File, offset uint32) LineCol {
	line := uint32(0)
	for line+1 < uint32(len(f.LineIdx)) && f.LineIdx[line+1] <= offset {
		line++
	}
	col := offset
	if int(line) < len(f.LineIdx) {
		col = offset - f.LineIdx[line]
	}
	return LineCol{Line: line + 1, Col: col + 1}
}

// buildLineIndex returns byte offsets of every line start, including line 0.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 1, 64)
	idx[0] = 0
	for i, b := range content {
		if b == '\n' {
			next, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				break
			}
			idx = append(idx, next)
		}
	}
	return idx
}
