package engine

import (
	"github.com/permdeck/permdeck/pkg/acl"
)

// AttributedGroup determines whether the user's effective grant of
// (permission, effect) on the file originates from group membership rather
// than a direct grant on the user.
//
// It returns the responsible group's name and true when every applicable
// ACE for that effect targets a group containing the user and no ACE names
// the user directly. When the grant is direct, or no applicable ACE exists,
// it returns ("", false).
//
// This is the check that protects a user from "removing" a permission that
// is actually supplied by group membership: the direct ACE does not exist,
// so removal would be a misleading no-op.
func (e *Engine) AttributedGroup(path, user string, perm acl.Permission, effect acl.Effect) (string, bool, error) {
	if !perm.Valid() {
		return "", false, acl.NewInvalidArgumentError("invalid permission")
	}
	if !effect.Valid() {
		return "", false, acl.NewInvalidArgumentError("invalid effect")
	}

	f, err := e.lookupFile(path)
	if err != nil {
		return "", false, err
	}
	principals, err := e.principalsFor(user)
	if err != nil {
		return "", false, err
	}

	raw, err := e.applicable(f, principals)
	if err != nil {
		return "", false, err
	}

	provs := raw[perm][effect]
	if len(provs) == 0 {
		e.metrics.ObserveAttribution("unset")
		return "", false, nil
	}

	for _, prov := range provs {
		if prov.ACE.Principal == user {
			e.metrics.ObserveAttribution("direct")
			return "", false, nil
		}
	}

	// Every supporting ACE targets a containing group; report the nearest
	// one in evaluation order (this file first, then ancestors).
	e.metrics.ObserveAttribution("group")
	return provs[0].ACE.Principal, true, nil
}
