package source

import (
	"path"
	"path/filepath"

	"fortio.org/safecast"
)

// Table is an append-only registry of source file paths. The backend
// only needs paths for debug info; content stays with the frontend.
type Table struct {
	paths []string
	index map[string]FileID // normalized path -> id
}

// NewTable creates an empty file table.
func NewTable() *Table {
	return &Table{
		paths: make([]string, 0),
		index: make(map[string]FileID),
	}
}

// Add registers a path and returns its id. Adding the same path twice
// returns the id of the first registration.
func (t *Table) Add(path string) FileID {
	normalized := normalizePath(path)
	if id, ok := t.index[normalized]; ok {
		return id
	}
	id, err := safecast.Conv[uint32](len(t.paths))
	if err != nil {
		panic("source: file table overflow")
	}
	t.paths = append(t.paths, normalized)
	t.index[normalized] = FileID(id)
	return FileID(id)
}

// Get returns the normalized path for id, or "" if the id is unknown.
func (t *Table) Get(id FileID) string {
	if int(id) >= len(t.paths) {
		return ""
	}
	return t.paths[id]
}

// Len returns the number of registered files.
func (t *Table) Len() int {
	return len(t.paths)
}

// Paths returns the registered paths in id order. The slice is shared;
// callers must not mutate it.
func (t *Table) Paths() []string {
	return t.paths
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// SplitPath splits a path into the filename and directory parts a
// DIFile record wants. A bare name gets "." as its directory.
func SplitPath(p string) (filename, directory string) {
	normalized := normalizePath(p)
	dir, file := path.Split(normalized)
	if dir == "" {
		return file, "."
	}
	return file, path.Clean(dir)
}
