package acl

import "testing"

func TestEffectRoundTrip(t *testing.T) {
	for _, e := range []Effect{Allow, Deny} {
		parsed, err := ParseEffect(e.String())
		if err != nil {
			t.Fatalf("ParseEffect(%q) failed: %v", e.String(), err)
		}
		if parsed != e {
			t.Errorf("expected %v, got %v", e, parsed)
		}
	}

	if _, err := ParseEffect("maybe"); err == nil {
		t.Error("expected error for unknown effect")
	}
}

func TestPermissionRoundTrip(t *testing.T) {
	for _, p := range AllPermissions() {
		parsed, err := ParsePermission(p.String())
		if err != nil {
			t.Fatalf("ParsePermission(%q) failed: %v", p.String(), err)
		}
		if parsed != p {
			t.Errorf("expected %v, got %v", p, parsed)
		}
	}

	if _, err := ParsePermission("fly"); err == nil {
		t.Error("expected error for unknown permission")
	}
}

func TestPermissionValid(t *testing.T) {
	if !PermReadData.Valid() {
		t.Error("expected PermReadData to be valid")
	}
	if Permission(200).Valid() {
		t.Error("expected out-of-range permission to be invalid")
	}
}

func TestACEMatches(t *testing.T) {
	ace := ACE{Principal: "alice", Permission: PermReadData, Effect: Allow}

	if !ace.Matches("alice", PermReadData, Allow) {
		t.Error("expected exact triple to match")
	}
	if ace.Matches("bob", PermReadData, Allow) {
		t.Error("expected different principal to not match")
	}
	if ace.Matches("alice", PermWriteData, Allow) {
		t.Error("expected different permission to not match")
	}
	if ace.Matches("alice", PermReadData, Deny) {
		t.Error("expected different effect to not match")
	}

	// Inherited flag is ignored for matching.
	inherited := ACE{Principal: "alice", Permission: PermReadData, Effect: Allow, Inherited: true}
	if !inherited.Matches("alice", PermReadData, Allow) {
		t.Error("expected inherited flag to be ignored")
	}
}
