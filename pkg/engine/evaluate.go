package engine

import (
	"time"

	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/tree"
)

// Provenance records where an effective permission came from: the
// responsible file and the responsible ACE. For entries collected from an
// ancestor, the ACE carries Inherited=true and Path names the ancestor.
type Provenance struct {
	Path string  `json:"path"`
	ACE  acl.ACE `json:"ace"`
}

// PermissionState is the three-valued outcome of evaluating one permission.
type PermissionState string

const (
	// StateAllowed means at least one applicable ACE allows the permission
	// and none denies it.
	StateAllowed PermissionState = "allowed"
	// StateDenied means at least one applicable ACE denies the permission;
	// deny overrides allow regardless of source.
	StateDenied PermissionState = "denied"
	// StateUnset means no applicable ACE mentions the permission. The
	// authorization layer treats this as an implicit deny, but it is
	// distinguishable from an explicit deny for explanation purposes.
	StateUnset PermissionState = "unset"
)

// EffectiveSet is the result of evaluating all permissions for a
// (file, user) pair. A permission appears in exactly one of the two maps:
// deny wins over allow by construction, so Allow never contains a denied
// permission.
type EffectiveSet struct {
	Allow map[acl.Permission][]Provenance `json:"allow"`
	Deny  map[acl.Permission][]Provenance `json:"deny"`
}

// Allowed reports whether the permission is effectively allowed.
func (s *EffectiveSet) Allowed(p acl.Permission) bool {
	_, ok := s.Allow[p]
	return ok
}

// Denied reports whether the permission is explicitly denied.
func (s *EffectiveSet) Denied(p acl.Permission) bool {
	_, ok := s.Deny[p]
	return ok
}

// State returns the three-valued outcome for one permission.
func (s *EffectiveSet) State(p acl.Permission) PermissionState {
	switch {
	case s.Denied(p):
		return StateDenied
	case s.Allowed(p):
		return StateAllowed
	default:
		return StateUnset
	}
}

// applicable collects every ACE on the evaluation chain whose principal is
// the user or a group containing the user, partitioned by permission and
// effect. ACEs sourced from an ancestor are marked Inherited and carry the
// ancestor's path.
func (e *Engine) applicable(f *tree.File, principals map[string]bool) (map[acl.Permission]map[acl.Effect][]Provenance, error) {
	chain, err := e.evaluationChain(f)
	if err != nil {
		return nil, err
	}

	out := make(map[acl.Permission]map[acl.Effect][]Provenance)
	for _, source := range chain {
		for _, ace := range source.DirectACL() {
			if !principals[ace.Principal] {
				continue
			}
			entry := ace
			entry.Inherited = source != f
			byEffect, ok := out[entry.Permission]
			if !ok {
				byEffect = make(map[acl.Effect][]Provenance)
				out[entry.Permission] = byEffect
			}
			byEffect[entry.Effect] = append(byEffect[entry.Effect], Provenance{
				Path: source.Path(),
				ACE:  entry,
			})
		}
	}
	return out, nil
}

// EffectivePermissions computes the full effective permission set for a
// user on a file, applying deny-overrides-allow precedence across direct
// and inherited ACEs of the user and all containing groups.
func (e *Engine) EffectivePermissions(path, user string) (*EffectiveSet, error) {
	start := time.Now()

	f, err := e.lookupFile(path)
	if err != nil {
		return nil, err
	}
	principals, err := e.principalsFor(user)
	if err != nil {
		return nil, err
	}

	raw, err := e.applicable(f, principals)
	if err != nil {
		return nil, err
	}

	set := &EffectiveSet{
		Allow: make(map[acl.Permission][]Provenance),
		Deny:  make(map[acl.Permission][]Provenance),
	}
	for perm, byEffect := range raw {
		if denies := byEffect[acl.Deny]; len(denies) > 0 {
			set.Deny[perm] = denies
			continue
		}
		if allows := byEffect[acl.Allow]; len(allows) > 0 {
			set.Allow[perm] = allows
		}
	}

	e.metrics.ObserveEvaluation(time.Since(start))
	return set, nil
}

// IsAllowed reports whether the user may exercise the permission on the
// file: the permission must be effectively allowed and not denied.
func (e *Engine) IsAllowed(path, user string, p acl.Permission) (bool, error) {
	if !p.Valid() {
		return false, acl.NewInvalidArgumentError("invalid permission")
	}

	set, err := e.EffectivePermissions(path, user)
	if err != nil {
		return false, err
	}

	allowed := set.Allowed(p)
	e.metrics.ObserveDecision(string(set.State(p)))
	return allowed, nil
}
