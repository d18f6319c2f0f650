package tree

import (
	"sync"

	"github.com/permdeck/permdeck/pkg/acl"
)

// File is a node in the tree carrying a direct ACL.
//
// The direct ACL is an ordered list of ACEs with no duplicate (principal,
// permission, effect) triples. Entries are kept in canonical order: deny
// entries before allow entries, each bucket in insertion order.
type File struct {
	path               string
	parent             *File
	inheritanceEnabled bool

	mu     sync.RWMutex
	direct []acl.ACE
}

// Path returns the file's cleaned absolute path.
func (f *File) Path() string {
	return f.path
}

// Parent returns the parent file, or nil for the root.
func (f *File) Parent() *File {
	return f.parent
}

// InheritanceEnabled reports whether the file receives ACEs from its
// ancestors during evaluation.
func (f *File) InheritanceEnabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.inheritanceEnabled
}

// SetInheritance enables or disables ancestor inheritance for this file.
func (f *File) SetInheritance(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inheritanceEnabled = enabled
}

// DirectACL returns a copy of the file's direct ACL.
func (f *File) DirectACL() []acl.ACE {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]acl.ACE(nil), f.direct...)
}

// HasDirect reports whether the direct ACL contains the given triple.
func (f *File) HasDirect(principal string, perm acl.Permission, effect acl.Effect) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, ace := range f.direct {
		if ace.Matches(principal, perm, effect) {
			return true
		}
	}
	return false
}

// Mutate runs fn against a staged copy of the direct ACL while holding the
// file's writer lock. If fn returns an error, the staged changes are
// discarded and the ACL is left untouched; otherwise the staged list is
// committed as a single swap, so concurrent readers never observe a
// half-applied edit.
func (f *File) Mutate(fn func(ed *ACLEditor) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ed := &ACLEditor{staged: append([]acl.ACE(nil), f.direct...)}
	if err := fn(ed); err != nil {
		return err
	}
	ed.sortCanonical()
	f.direct = ed.staged
	return nil
}

// ACLEditor is the staged view of a direct ACL handed to File.Mutate.
type ACLEditor struct {
	staged []acl.ACE
}

// Has reports whether the staged ACL contains the triple.
func (ed *ACLEditor) Has(principal string, perm acl.Permission, effect acl.Effect) bool {
	return ed.indexOf(principal, perm, effect) >= 0
}

// Upsert adds the triple if absent. Returns true if the list changed.
// The Inherited flag is always cleared: direct ACLs never hold inherited
// entries.
func (ed *ACLEditor) Upsert(principal string, perm acl.Permission, effect acl.Effect) bool {
	if ed.Has(principal, perm, effect) {
		return false
	}
	ed.staged = append(ed.staged, acl.ACE{
		Principal:  principal,
		Permission: perm,
		Effect:     effect,
	})
	return true
}

// Remove deletes the triple if present. Returns true if the list changed.
func (ed *ACLEditor) Remove(principal string, perm acl.Permission, effect acl.Effect) bool {
	i := ed.indexOf(principal, perm, effect)
	if i < 0 {
		return false
	}
	ed.staged = append(ed.staged[:i], ed.staged[i+1:]...)
	return true
}

// Entries returns the staged ACL. The slice is shared; callers must not
// modify it.
func (ed *ACLEditor) Entries() []acl.ACE {
	return ed.staged
}

func (ed *ACLEditor) indexOf(principal string, perm acl.Permission, effect acl.Effect) int {
	for i, ace := range ed.staged {
		if ace.Matches(principal, perm, effect) {
			return i
		}
	}
	return -1
}

// sortCanonical orders deny entries before allow entries, preserving
// insertion order within each bucket.
func (ed *ACLEditor) sortCanonical() {
	denies := make([]acl.ACE, 0, len(ed.staged))
	allows := make([]acl.ACE, 0, len(ed.staged))
	for _, ace := range ed.staged {
		if ace.Effect == acl.Deny {
			denies = append(denies, ace)
		} else {
			allows = append(allows, ace)
		}
	}
	ed.staged = append(denies, allows...)
}
