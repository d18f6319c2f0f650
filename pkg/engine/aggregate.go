package engine

import (
	"github.com/permdeck/permdeck/pkg/acl"
)

// GroupState is the three-valued editing state of a permission group.
type GroupState string

const (
	// GroupGranted means every considered member permission is present.
	GroupGranted GroupState = "granted"
	// GroupPartial means some but not all member permissions are present.
	GroupPartial GroupState = "partial"
	// GroupAbsent means no member permission is present.
	GroupAbsent GroupState = "absent"
)

// GroupStatus is the state of one permission group on one side (allow or
// deny), with provenance when granted.
type GroupStatus struct {
	State GroupState `json:"state"`
	// Sources lists the provenance of the member permissions when the
	// group is granted; empty for partial and absent states.
	Sources []Provenance `json:"sources,omitempty"`
}

// GroupedSet maps every permission group to its status on both sides.
type GroupedSet struct {
	Allow map[acl.PermissionGroup]GroupStatus `json:"allow"`
	Deny  map[acl.PermissionGroup]GroupStatus `json:"deny"`
}

// GroupedPermissions maps the user's effective permission set onto the
// permission-group catalog.
//
// Derivable groups (Read, Write, Modify) are granted when every member
// permission is present, absent when none is, partial otherwise. The
// overlap group (Read & Execute) is judged only by its distinguishing
// permission so its state is not a duplicate of Read's. Full control and
// Special permissions are never derived from member checks: Full control is
// aggregate bookkeeping over the entire catalog, Special over the
// permissions no other group covers.
func (e *Engine) GroupedPermissions(path, user string) (*GroupedSet, error) {
	set, err := e.EffectivePermissions(path, user)
	if err != nil {
		return nil, err
	}

	return &GroupedSet{
		Allow: groupStates(set.Allow),
		Deny:  groupStates(set.Deny),
	}, nil
}

// groupStates computes per-group status against one side of an effective
// set.
func groupStates(side map[acl.Permission][]Provenance) map[acl.PermissionGroup]GroupStatus {
	out := make(map[acl.PermissionGroup]GroupStatus, len(acl.AllGroups()))

	for _, g := range acl.DerivableGroups() {
		members := g.Expansion()
		if p, ok := g.DistinguishingPermission(); ok {
			members = []acl.Permission{p}
		}
		out[g] = statusOf(side, members, true)
	}

	// Full control: granted only when the whole catalog is present; a
	// partial catalog is reported as absent, never partial.
	out[acl.GroupFullControl] = statusOf(side, acl.AllPermissions(), false)

	// Special permissions: catch-all over the ungrouped permissions.
	out[acl.GroupSpecial] = statusOf(side, acl.UngroupedPermissions(), true)

	return out
}

// statusOf derives a GroupStatus from the presence of the given member
// permissions. When allowPartial is false, anything short of a full match
// reports absent.
func statusOf(side map[acl.Permission][]Provenance, members []acl.Permission, allowPartial bool) GroupStatus {
	present := 0
	var sources []Provenance
	for _, p := range members {
		if provs, ok := side[p]; ok {
			present++
			sources = append(sources, provs...)
		}
	}

	switch {
	case present == len(members) && present > 0:
		return GroupStatus{State: GroupGranted, Sources: sources}
	case present == 0:
		return GroupStatus{State: GroupAbsent}
	case allowPartial:
		return GroupStatus{State: GroupPartial}
	default:
		return GroupStatus{State: GroupAbsent}
	}
}
