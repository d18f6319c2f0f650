package engine

import (
	"testing"

	"github.com/permdeck/permdeck/pkg/acl"
)

func TestAttributionGroupSourced(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "staff", acl.PermReadData, acl.Allow)

	group, attributed, err := e.AttributedGroup("/docs", "alice", acl.PermReadData, acl.Allow)
	if err != nil {
		t.Fatalf("AttributedGroup: %v", err)
	}
	if !attributed {
		t.Fatal("grant from group membership must be attributed")
	}
	if group != "staff" {
		t.Errorf("group = %s, want staff", group)
	}
}

func TestAttributionDirectGrant(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "alice", acl.PermReadData, acl.Allow)

	group, attributed, err := e.AttributedGroup("/docs", "alice", acl.PermReadData, acl.Allow)
	if err != nil {
		t.Fatalf("AttributedGroup: %v", err)
	}
	if attributed || group != "" {
		t.Errorf("direct grant attributed to %q", group)
	}
}

func TestAttributionDirectBeatsGroup(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "staff", acl.PermReadData, acl.Allow)
	seed(t, tr, "/docs", "alice", acl.PermReadData, acl.Allow)

	// A direct ACE exists, so removal through the user is meaningful and
	// the grant is not group-attributed.
	_, attributed, err := e.AttributedGroup("/docs", "alice", acl.PermReadData, acl.Allow)
	if err != nil {
		t.Fatalf("AttributedGroup: %v", err)
	}
	if attributed {
		t.Error("grant with a direct ACE must not be group-attributed")
	}
}

func TestAttributionUnsetPermission(t *testing.T) {
	e, _ := newTestEngine(t)

	group, attributed, err := e.AttributedGroup("/docs", "alice", acl.PermReadData, acl.Allow)
	if err != nil {
		t.Fatalf("AttributedGroup: %v", err)
	}
	if attributed || group != "" {
		t.Errorf("unset permission attributed to %q", group)
	}
}

func TestAttributionNestedGroup(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "editors", acl.PermWriteData, acl.Allow)

	group, attributed, err := e.AttributedGroup("/docs", "carol", acl.PermWriteData, acl.Allow)
	if err != nil {
		t.Fatalf("AttributedGroup: %v", err)
	}
	if !attributed {
		t.Fatal("transitive group grant must be attributed")
	}
	if group != "editors" {
		t.Errorf("group = %s, want editors", group)
	}
}

func TestAttributionInheritedGroupGrant(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "staff", acl.PermReadData, acl.Allow)

	group, attributed, err := e.AttributedGroup("/docs/sub", "alice", acl.PermReadData, acl.Allow)
	if err != nil {
		t.Fatalf("AttributedGroup: %v", err)
	}
	if !attributed || group != "staff" {
		t.Errorf("got (%q, %v), want (staff, true)", group, attributed)
	}
}

func TestAttributionEffectSpecific(t *testing.T) {
	e, tr := newTestEngine(t)
	seed(t, tr, "/docs", "staff", acl.PermReadData, acl.Deny)

	// The allow side has no applicable ACE; only the deny side is
	// group-attributed.
	_, attributed, err := e.AttributedGroup("/docs", "alice", acl.PermReadData, acl.Allow)
	if err != nil {
		t.Fatalf("AttributedGroup: %v", err)
	}
	if attributed {
		t.Error("allow side attributed from a deny ACE")
	}

	group, attributed, err := e.AttributedGroup("/docs", "alice", acl.PermReadData, acl.Deny)
	if err != nil {
		t.Fatalf("AttributedGroup: %v", err)
	}
	if !attributed || group != "staff" {
		t.Errorf("got (%q, %v), want (staff, true)", group, attributed)
	}
}
