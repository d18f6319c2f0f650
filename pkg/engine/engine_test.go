package engine

import (
	"context"
	"testing"

	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/directory"
	"github.com/permdeck/permdeck/pkg/store/directory/memory"
	"github.com/permdeck/permdeck/pkg/tree"
)

// newTestEngine builds an engine over a small fixture domain:
//
//	users:  alice, bob, carol, dave
//	groups: staff {alice, bob}, writers {carol}, editors {writers}
//	files:  /docs -> /docs/sub -> /docs/sub/leaf
func newTestEngine(t *testing.T) (*Engine, *tree.Tree) {
	t.Helper()
	ctx := context.Background()

	dir := memory.NewMemoryDirectory()
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		if err := dir.CreateUser(ctx, &directory.User{Name: name}); err != nil {
			t.Fatalf("CreateUser(%s): %v", name, err)
		}
	}
	groups := map[string][]string{
		"staff":   {"alice", "bob"},
		"writers": {"carol"},
		"editors": {"writers"},
	}
	for name, members := range groups {
		if err := dir.CreateGroup(ctx, &directory.Group{Name: name, Members: members}); err != nil {
			t.Fatalf("CreateGroup(%s): %v", name, err)
		}
	}

	tr := tree.NewTree()
	for _, fix := range []struct{ path, parent string }{
		{"/docs", ""},
		{"/docs/sub", "/docs"},
		{"/docs/sub/leaf", "/docs/sub"},
	} {
		if _, err := tr.AddFile(fix.path, fix.parent); err != nil {
			t.Fatalf("AddFile(%s): %v", fix.path, err)
		}
	}

	return New(dir, tr), tr
}

// seed places an ACE directly on a file, bypassing the engine's mutation
// checks. Used to stage group ACEs and preexisting state.
func seed(t *testing.T, tr *tree.Tree, path, principal string, perm acl.Permission, effect acl.Effect) {
	t.Helper()
	f, err := tr.Lookup(path)
	if err != nil {
		t.Fatalf("Lookup(%s): %v", path, err)
	}
	err = f.Mutate(func(ed *tree.ACLEditor) error {
		ed.Upsert(principal, perm, effect)
		return nil
	})
	if err != nil {
		t.Fatalf("seed %s: %v", path, err)
	}
}

func mustAllowed(t *testing.T, e *Engine, path, user string, perm acl.Permission, want bool) {
	t.Helper()
	got, err := e.IsAllowed(path, user, perm)
	if err != nil {
		t.Fatalf("IsAllowed(%s, %s, %s): %v", path, user, perm, err)
	}
	if got != want {
		t.Errorf("IsAllowed(%s, %s, %s) = %v, want %v", path, user, perm, got, want)
	}
}

func TestEngineUnknownFile(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.EffectivePermissions("/nope", "alice")
	if !acl.IsUnknownFile(err) {
		t.Fatalf("expected unknown file error, got %v", err)
	}
}

func TestEngineUnknownPrincipal(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.EffectivePermissions("/docs", "mallory")
	if !acl.IsUnknownPrincipal(err) {
		t.Fatalf("expected unknown principal error, got %v", err)
	}
}

func TestEngineRejectsGroupAsSubject(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.EffectivePermissions("/docs", "staff")
	if err == nil {
		t.Fatal("expected error evaluating a group as the subject")
	}
	if acl.IsUnknownPrincipal(err) {
		t.Fatalf("group subject misreported as unknown principal: %v", err)
	}
}
