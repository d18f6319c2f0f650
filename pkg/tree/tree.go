// Package tree holds the file hierarchy and the per-file direct ACLs the
// permission engine evaluates and mutates.
//
// Files form a tree via parent links. Each file owns its direct ACL
// exclusively; inherited entries are never stored, they are derived from
// ancestors at evaluation time. A per-file writer lock makes multi-step ACL
// edits appear atomic to concurrent readers.
package tree

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

// Common errors returned by the tree.
var (
	// ErrFileNotFound indicates the path does not exist in the tree.
	ErrFileNotFound = errors.New("file not found")

	// ErrDuplicateFile indicates a file with the path already exists.
	ErrDuplicateFile = errors.New("file already exists")

	// ErrParentNotFound indicates the parent path does not exist.
	ErrParentNotFound = errors.New("parent not found")

	// ErrParentCycle indicates a parent chain loops back on itself. The
	// tree is built append-only with existing parents, so this can only
	// appear on corrupted data; it is treated as fatal.
	ErrParentCycle = errors.New("file parent cycle")
)

// Tree is a collection of files addressed by cleaned absolute path.
//
// Thread Safety: safe for concurrent use. Structural changes (adding files)
// take the tree lock; ACL reads and writes take the per-file lock.
type Tree struct {
	mu    sync.RWMutex
	files map[string]*File
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{files: make(map[string]*File)}
}

// CleanPath normalizes a file path to the canonical form used as tree key.
func CleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// AddFile creates a file under the given parent path. The root is created
// with an empty parent path. Inheritance is enabled by default; use
// File.SetInheritance to cut a file off from its ancestors.
//
// Returns ErrDuplicateFile if the path exists and ErrParentNotFound if the
// parent does not.
func (t *Tree) AddFile(filePath, parentPath string) (*File, error) {
	cleaned := CleanPath(filePath)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.files[cleaned]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateFile, cleaned)
	}

	var parent *File
	if parentPath != "" {
		cleanedParent := CleanPath(parentPath)
		var ok bool
		parent, ok = t.files[cleanedParent]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, cleanedParent)
		}
	}

	f := &File{
		path:               cleaned,
		parent:             parent,
		inheritanceEnabled: true,
	}
	t.files[cleaned] = f
	return f, nil
}

// Lookup returns the file at the given path.
// Returns ErrFileNotFound if the path does not exist.
func (t *Tree) Lookup(filePath string) (*File, error) {
	cleaned := CleanPath(filePath)

	t.mu.RLock()
	defer t.mu.RUnlock()

	f, ok := t.files[cleaned]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, cleaned)
	}
	return f, nil
}

// List returns all files sorted by path.
func (t *Tree) List() []*File {
	t.mu.RLock()
	defer t.mu.RUnlock()

	files := make([]*File, 0, len(t.files))
	for _, f := range t.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	return files
}

// Ancestors returns the file's ancestor chain ordered from nearest parent
// to root. A visited set guards against corrupted parent links; a loop
// returns ErrParentCycle.
func Ancestors(f *File) ([]*File, error) {
	var chain []*File
	visited := map[string]bool{f.path: true}
	for current := f.parent; current != nil; current = current.parent {
		if visited[current.path] {
			return nil, fmt.Errorf("%w: %s", ErrParentCycle, current.path)
		}
		visited[current.path] = true
		chain = append(chain, current)
	}
	return chain, nil
}
