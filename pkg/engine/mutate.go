package engine

import (
	"time"

	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/tree"
)

// SetPermission applies (present=true) or retracts (present=false) a single
// direct permission grant for a (file, user) pair.
//
// Applying an effect removes the opposite direct effect for the same
// (user, permission) first, so a file's direct ACL never holds a
// contradictory allow/deny pair for one user and permission.
//
// Retraction refuses with a GroupAttributed error when the effective grant
// comes from group membership, and with an InheritedGrant error when it
// comes from an ancestor file: in both cases the direct ACE does not exist
// and removal would not change the effective outcome. Retracting a grant
// that exists nowhere succeeds and changes nothing.
//
// The call is idempotent and atomic: a failure leaves the ACL unchanged,
// and concurrent readers never observe intermediate state.
func (e *Engine) SetPermission(path, user string, perm acl.Permission, effect acl.Effect, present bool) error {
	start := time.Now()
	outcome, err := e.setPermission(path, user, perm, effect, present)
	e.metrics.ObserveMutation(time.Since(start), "permission", outcome)
	return err
}

func (e *Engine) setPermission(path, user string, perm acl.Permission, effect acl.Effect, present bool) (outcome string, err error) {
	if !perm.Valid() {
		return "rejected", acl.NewInvalidArgumentError("invalid permission")
	}
	if !effect.Valid() {
		return "rejected", acl.NewInvalidArgumentError("invalid effect")
	}

	f, err := e.lookupFile(path)
	if err != nil {
		return "rejected", err
	}
	principals, err := e.principalsFor(user)
	if err != nil {
		return "rejected", err
	}

	// Ancestor ACEs are collected before taking the file's writer lock;
	// they are read-only here and never mutated by this engine.
	inherited, err := e.inheritedApplicable(f, principals)
	if err != nil {
		return "rejected", err
	}

	changed := false
	err = f.Mutate(func(ed *tree.ACLEditor) error {
		if present {
			changed = applyPresent(ed, user, perm, effect)
			return nil
		}
		if ed.Remove(user, perm, effect) {
			changed = true
			return nil
		}
		return retractionBlocker(ed, inherited, principals, user, perm, effect)
	})
	if err != nil {
		return "rejected", err
	}
	if changed {
		return "applied", nil
	}
	return "noop", nil
}

// SetPermissionGroup applies or retracts an entire permission group for a
// (file, user) pair. The group expands to one logical SetPermission per
// member permission; the overlap group (Read & Execute) expands only to its
// distinguishing permission, leaving Read's members untouched.
//
// The whole expansion is applied under the file's writer lock as a single
// atomic edit: a reader never observes a group mutation half-applied, and
// any refusal (group-attributed or inherited member) aborts the entire
// call with the ACL unchanged.
func (e *Engine) SetPermissionGroup(path, user string, group acl.PermissionGroup, effect acl.Effect, present bool) error {
	start := time.Now()
	outcome, err := e.setPermissionGroup(path, user, group, effect, present)
	e.metrics.ObserveMutation(time.Since(start), "group", outcome)
	return err
}

func (e *Engine) setPermissionGroup(path, user string, group acl.PermissionGroup, effect acl.Effect, present bool) (outcome string, err error) {
	if !group.Valid() {
		return "rejected", acl.NewInvalidArgumentError("invalid permission group")
	}
	if !effect.Valid() {
		return "rejected", acl.NewInvalidArgumentError("invalid effect")
	}

	f, err := e.lookupFile(path)
	if err != nil {
		return "rejected", err
	}
	principals, err := e.principalsFor(user)
	if err != nil {
		return "rejected", err
	}
	inherited, err := e.inheritedApplicable(f, principals)
	if err != nil {
		return "rejected", err
	}

	perms := group.MutationExpansion()
	changed := false
	err = f.Mutate(func(ed *tree.ACLEditor) error {
		if present {
			for _, perm := range perms {
				if applyPresent(ed, user, perm, effect) {
					changed = true
				}
			}
			return nil
		}

		// Check every member before touching anything so a refusal leaves
		// the ACL fully unchanged.
		for _, perm := range perms {
			if ed.Has(user, perm, effect) {
				continue
			}
			if err := retractionBlocker(ed, inherited, principals, user, perm, effect); err != nil {
				return err
			}
		}
		for _, perm := range perms {
			if ed.Remove(user, perm, effect) {
				changed = true
			}
		}
		return nil
	})
	if err != nil {
		return "rejected", err
	}
	if changed {
		return "applied", nil
	}
	return "noop", nil
}

// applyPresent stages an upsert of (user, perm, effect), clearing the
// opposite direct effect first. Returns true if the staged list changed.
func applyPresent(ed *tree.ACLEditor, user string, perm acl.Permission, effect acl.Effect) bool {
	opposite := acl.Allow
	if effect == acl.Allow {
		opposite = acl.Deny
	}
	removed := ed.Remove(user, perm, opposite)
	added := ed.Upsert(user, perm, effect)
	return removed || added
}

// retractionBlocker decides why a retraction target is absent from the
// direct ACL. It returns an InheritedGrant error when the user holds the
// grant via an ancestor file, a GroupAttributed error when a containing
// group holds it (on this file or an ancestor), and nil when the grant
// exists nowhere (the retraction is an idempotent no-op).
func retractionBlocker(ed *tree.ACLEditor, inherited []Provenance, principals map[string]bool, user string, perm acl.Permission, effect acl.Effect) error {
	for _, prov := range inherited {
		if prov.ACE.Permission == perm && prov.ACE.Effect == effect && prov.ACE.Principal == user {
			return acl.NewInheritedGrantError(prov.Path, perm)
		}
	}
	for _, ace := range ed.Entries() {
		if ace.Permission == perm && ace.Effect == effect && ace.Principal != user && principals[ace.Principal] {
			return acl.NewGroupAttributedError(ace.Principal, perm)
		}
	}
	for _, prov := range inherited {
		if prov.ACE.Permission == perm && prov.ACE.Effect == effect {
			return acl.NewGroupAttributedError(prov.ACE.Principal, perm)
		}
	}
	return nil
}

// inheritedApplicable collects the applicable ACEs from the file's
// ancestors only, in nearest-first order.
func (e *Engine) inheritedApplicable(f *tree.File, principals map[string]bool) ([]Provenance, error) {
	chain, err := e.evaluationChain(f)
	if err != nil {
		return nil, err
	}

	var out []Provenance
	for _, source := range chain[1:] {
		for _, ace := range source.DirectACL() {
			if !principals[ace.Principal] {
				continue
			}
			entry := ace
			entry.Inherited = true
			out = append(out, Provenance{Path: source.Path(), ACE: entry})
		}
	}
	return out, nil
}
