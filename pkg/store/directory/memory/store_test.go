package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/permdeck/permdeck/pkg/directory"
)

func TestCreateUser(t *testing.T) {
	store := NewMemoryDirectory()
	ctx := context.Background()

	user := &directory.User{Name: "alice"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Duplicate.
	err := store.CreateUser(ctx, &directory.User{Name: "alice"})
	if !errors.Is(err, directory.ErrDuplicatePrincipal) {
		t.Errorf("expected ErrDuplicatePrincipal, got: %v", err)
	}

	// Stored user gets an ID.
	stored, err := store.LookupUser("alice")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stored.ID == "" {
		t.Error("expected an assigned ID")
	}
}

func TestUserGroupNamespaceIsShared(t *testing.T) {
	store := NewMemoryDirectory()
	ctx := context.Background()

	if err := store.CreateUser(ctx, &directory.User{Name: "staff"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	err := store.CreateGroup(ctx, &directory.Group{Name: "staff"})
	if !errors.Is(err, directory.ErrDuplicatePrincipal) {
		t.Errorf("expected ErrDuplicatePrincipal, got: %v", err)
	}
}

func TestIsUser(t *testing.T) {
	store := NewMemoryDirectory()
	ctx := context.Background()

	_ = store.CreateUser(ctx, &directory.User{Name: "alice"})
	_ = store.CreateGroup(ctx, &directory.Group{Name: "staff"})

	isUser, err := store.IsUser("alice")
	if err != nil || !isUser {
		t.Errorf("expected alice to be a user, got (%v, %v)", isUser, err)
	}

	isUser, err = store.IsUser("staff")
	if err != nil || isUser {
		t.Errorf("expected staff to be a group, got (%v, %v)", isUser, err)
	}

	_, err = store.IsUser("ghost")
	if !errors.Is(err, directory.ErrPrincipalNotFound) {
		t.Errorf("expected ErrPrincipalNotFound, got: %v", err)
	}
}

func TestMembers(t *testing.T) {
	store := NewMemoryDirectory()
	ctx := context.Background()

	_ = store.CreateUser(ctx, &directory.User{Name: "alice"})
	_ = store.CreateUser(ctx, &directory.User{Name: "bob"})
	_ = store.CreateGroup(ctx, &directory.Group{Name: "staff", Members: []string{"alice"}})

	if err := store.AddMember(ctx, "staff", "bob"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	// Idempotent.
	if err := store.AddMember(ctx, "staff", "bob"); err != nil {
		t.Fatalf("AddMember should be idempotent: %v", err)
	}

	members, err := store.Members("staff")
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 2 || members[0] != "alice" || members[1] != "bob" {
		t.Errorf("expected [alice bob], got %v", members)
	}

	// Members on a user is an error.
	_, err = store.Members("alice")
	if !errors.Is(err, directory.ErrNotGroup) {
		t.Errorf("expected ErrNotGroup, got: %v", err)
	}
}

func TestAddMemberUnknownPrincipal(t *testing.T) {
	store := NewMemoryDirectory()
	ctx := context.Background()

	_ = store.CreateGroup(ctx, &directory.Group{Name: "staff"})

	err := store.AddMember(ctx, "staff", "ghost")
	if !errors.Is(err, directory.ErrPrincipalNotFound) {
		t.Errorf("expected ErrPrincipalNotFound, got: %v", err)
	}
	err = store.AddMember(ctx, "ghosts", "staff")
	if !errors.Is(err, directory.ErrPrincipalNotFound) {
		t.Errorf("expected ErrPrincipalNotFound, got: %v", err)
	}
}

func TestRemoveMember(t *testing.T) {
	store := NewMemoryDirectory()
	ctx := context.Background()

	_ = store.CreateUser(ctx, &directory.User{Name: "alice"})
	_ = store.CreateGroup(ctx, &directory.Group{Name: "staff", Members: []string{"alice"}})

	if err := store.RemoveMember(ctx, "staff", "alice"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	members, _ := store.Members("staff")
	if len(members) != 0 {
		t.Errorf("expected no members, got %v", members)
	}

	// Removing a non-member is a no-op.
	if err := store.RemoveMember(ctx, "staff", "alice"); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestListOrdering(t *testing.T) {
	store := NewMemoryDirectory()
	ctx := context.Background()

	_ = store.CreateUser(ctx, &directory.User{Name: "zoe"})
	_ = store.CreateUser(ctx, &directory.User{Name: "alice"})
	_ = store.CreateGroup(ctx, &directory.Group{Name: "writers"})
	_ = store.CreateGroup(ctx, &directory.Group{Name: "admins"})

	users, err := store.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if users[0].Name != "alice" || users[1].Name != "zoe" {
		t.Errorf("expected users sorted by name, got %v, %v", users[0].Name, users[1].Name)
	}

	groups, err := store.ListGroups()
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if groups[0].Name != "admins" || groups[1].Name != "writers" {
		t.Errorf("expected groups sorted by name, got %v, %v", groups[0].Name, groups[1].Name)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	store := NewMemoryDirectory()
	ctx := context.Background()

	_ = store.CreateUser(ctx, &directory.User{Name: "alice"})
	_ = store.CreateGroup(ctx, &directory.Group{Name: "staff", Members: []string{"alice"}})

	group, _ := store.LookupGroup("staff")
	group.Members[0] = "mallory"

	fresh, _ := store.LookupGroup("staff")
	if fresh.Members[0] != "alice" {
		t.Error("expected lookup to return a defensive copy")
	}
}
