package engine

import (
	"testing"

	"github.com/permdeck/permdeck/pkg/acl"
)

func TestDirectAllow(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "alice", acl.PermReadData, acl.Allow)

	mustAllowed(t, e, "/docs", "alice", acl.PermReadData, true)
	mustAllowed(t, e, "/docs", "alice", acl.PermWriteData, false)
	mustAllowed(t, e, "/docs", "bob", acl.PermReadData, false)
}

func TestGroupMembershipGrants(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "staff", acl.PermReadData, acl.Allow)

	// alice and bob are staff members; dave is not.
	mustAllowed(t, e, "/docs", "alice", acl.PermReadData, true)
	mustAllowed(t, e, "/docs", "bob", acl.PermReadData, true)
	mustAllowed(t, e, "/docs", "dave", acl.PermReadData, false)
}

func TestNestedGroupMembershipGrants(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "editors", acl.PermWriteData, acl.Allow)

	// carol is in writers, writers is in editors.
	mustAllowed(t, e, "/docs", "carol", acl.PermWriteData, true)
	mustAllowed(t, e, "/docs", "alice", acl.PermWriteData, false)
}

func TestDenyOverridesAllow(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "staff", acl.PermReadData, acl.Allow)
	seed(t, tr, "/docs", "alice", acl.PermReadData, acl.Deny)

	mustAllowed(t, e, "/docs", "alice", acl.PermReadData, false)
	mustAllowed(t, e, "/docs", "bob", acl.PermReadData, true)

	set, err := e.EffectivePermissions("/docs", "alice")
	if err != nil {
		t.Fatalf("EffectivePermissions: %v", err)
	}
	if set.State(acl.PermReadData) != StateDenied {
		t.Errorf("state = %s, want %s", set.State(acl.PermReadData), StateDenied)
	}
	if _, ok := set.Allow[acl.PermReadData]; ok {
		t.Error("denied permission must not appear on the allow side")
	}
}

func TestGroupDenyOverridesDirectAllow(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "alice", acl.PermDelete, acl.Allow)
	seed(t, tr, "/docs", "staff", acl.PermDelete, acl.Deny)

	mustAllowed(t, e, "/docs", "alice", acl.PermDelete, false)
}

func TestUnsetIsNotAllowed(t *testing.T) {
	e, _ := newTestEngine(t)

	set, err := e.EffectivePermissions("/docs", "alice")
	if err != nil {
		t.Fatalf("EffectivePermissions: %v", err)
	}
	if got := set.State(acl.PermReadData); got != StateUnset {
		t.Errorf("state = %s, want %s", got, StateUnset)
	}
	mustAllowed(t, e, "/docs", "alice", acl.PermReadData, false)
}

func TestInheritanceCarriesProvenance(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "staff", acl.PermReadData, acl.Allow)

	set, err := e.EffectivePermissions("/docs/sub", "alice")
	if err != nil {
		t.Fatalf("EffectivePermissions: %v", err)
	}
	provs := set.Allow[acl.PermReadData]
	if len(provs) != 1 {
		t.Fatalf("got %d provenance entries, want 1", len(provs))
	}
	if provs[0].Path != "/docs" {
		t.Errorf("provenance path = %s, want /docs", provs[0].Path)
	}
	if !provs[0].ACE.Inherited {
		t.Error("ancestor-sourced ACE must be marked inherited")
	}

	// The same ACE evaluated on its own file is not inherited.
	own, err := e.EffectivePermissions("/docs", "alice")
	if err != nil {
		t.Fatalf("EffectivePermissions: %v", err)
	}
	if own.Allow[acl.PermReadData][0].ACE.Inherited {
		t.Error("same-file ACE must not be marked inherited")
	}
}

func TestInheritedDenyOverridesLocalAllow(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "alice", acl.PermWriteData, acl.Deny)
	seed(t, tr, "/docs/sub", "alice", acl.PermWriteData, acl.Allow)

	mustAllowed(t, e, "/docs/sub", "alice", acl.PermWriteData, false)
}

func TestInheritanceDisabledIgnoresAncestors(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "alice", acl.PermReadData, acl.Allow)

	sub, err := tr.Lookup("/docs/sub")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	sub.SetInheritance(false)
	seed(t, tr, "/docs/sub", "alice", acl.PermWriteData, acl.Allow)

	// The ancestor grant no longer applies; the file's own ACL still does.
	mustAllowed(t, e, "/docs/sub", "alice", acl.PermReadData, false)
	mustAllowed(t, e, "/docs/sub", "alice", acl.PermWriteData, true)
}

func TestInheritanceChainStopsAtDisabledAncestor(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "alice", acl.PermReadData, acl.Allow)
	seed(t, tr, "/docs/sub", "alice", acl.PermWriteData, acl.Allow)

	sub, err := tr.Lookup("/docs/sub")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	sub.SetInheritance(false)

	// The leaf still inherits from the disabled ancestor itself, but the
	// chain does not climb past it.
	mustAllowed(t, e, "/docs/sub/leaf", "alice", acl.PermWriteData, true)
	mustAllowed(t, e, "/docs/sub/leaf", "alice", acl.PermReadData, false)
}

func TestIsAllowedRejectsInvalidPermission(t *testing.T) {
	e, _ := newTestEngine(t)

	if _, err := e.IsAllowed("/docs", "alice", acl.Permission(250)); err == nil {
		t.Fatal("expected an error for an out-of-catalog permission")
	}
}
