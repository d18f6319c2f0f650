package acl

import "fmt"

// PermissionGroup is a named bundle of permissions presented to the editor
// as a single checkbox row ("Full control", "Modify", ...).
type PermissionGroup uint8

const (
	// GroupFullControl implicitly covers every catalog permission.
	GroupFullControl PermissionGroup = iota
	// GroupModify bundles read, write, execute, and delete.
	GroupModify
	// GroupReadExecute bundles the Read permissions plus execute. It
	// deliberately overlaps GroupRead; execute is its distinguishing
	// permission.
	GroupReadExecute
	// GroupRead bundles the read-side permissions.
	GroupRead
	// GroupWrite bundles the write-side permissions.
	GroupWrite
	// GroupSpecial is the catch-all for permissions not covered by any
	// other group.
	GroupSpecial

	// groupCount is the number of permission groups. Keep last.
	groupCount
)

var groupNames = [groupCount]string{
	GroupFullControl: "full-control",
	GroupModify:      "modify",
	GroupReadExecute: "read-execute",
	GroupRead:        "read",
	GroupWrite:       "write",
	GroupSpecial:     "special",
}

// String returns the wire/display name of the group.
func (g PermissionGroup) String() string {
	if !g.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(g))
	}
	return groupNames[g]
}

// Valid reports whether g is a catalog group.
func (g PermissionGroup) Valid() bool {
	return g < groupCount
}

// ParsePermissionGroup converts a wire/display name back to a PermissionGroup.
func ParsePermissionGroup(s string) (PermissionGroup, error) {
	for i, name := range groupNames {
		if name == s {
			return PermissionGroup(i), nil
		}
	}
	return 0, fmt.Errorf("unknown permission group %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (g PermissionGroup) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid permission group %d", uint8(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *PermissionGroup) UnmarshalText(b []byte) error {
	parsed, err := ParsePermissionGroup(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// AllGroups returns every permission group in display order.
func AllGroups() []PermissionGroup {
	groups := make([]PermissionGroup, groupCount)
	for i := range groups {
		groups[i] = PermissionGroup(i)
	}
	return groups
}

// readPermissions, writePermissions, and specialPermissions are the building
// blocks of the expansion table. The table is built once at init and never
// mutated afterwards.
var (
	readPermissions    = []Permission{PermReadData, PermReadAttributes, PermReadPermissions}
	writePermissions   = []Permission{PermWriteData, PermAppendData, PermWriteAttributes}
	specialPermissions = []Permission{PermChangePermissions, PermTakeOwnership}

	// groupExpansion maps each group to its full member set.
	groupExpansion [groupCount][]Permission

	// derivableGroups are the groups whose granted/partial/absent state is
	// computed from member permissions. Full control and Special are
	// excluded: they are reported by aggregate bookkeeping only.
	derivableGroups = []PermissionGroup{GroupModify, GroupReadExecute, GroupRead, GroupWrite}
)

func init() {
	concat := func(sets ...[]Permission) []Permission {
		var out []Permission
		seen := map[Permission]bool{}
		for _, set := range sets {
			for _, p := range set {
				if !seen[p] {
					seen[p] = true
					out = append(out, p)
				}
			}
		}
		return out
	}

	groupExpansion[GroupRead] = concat(readPermissions)
	groupExpansion[GroupWrite] = concat(writePermissions)
	groupExpansion[GroupReadExecute] = concat(readPermissions, []Permission{PermExecute})
	groupExpansion[GroupModify] = concat(readPermissions, writePermissions, []Permission{PermExecute, PermDelete})
	groupExpansion[GroupSpecial] = concat(specialPermissions)
	groupExpansion[GroupFullControl] = AllPermissions()
}

// Expansion returns the full member set of a group. The returned slice is a
// copy and safe to modify.
func (g PermissionGroup) Expansion() []Permission {
	if !g.Valid() {
		return nil
	}
	out := make([]Permission, len(groupExpansion[g]))
	copy(out, groupExpansion[g])
	return out
}

// DistinguishingPermission returns the member of g not shared with GroupRead
// when g is the designated overlap group (Read & Execute), and false
// otherwise. The aggregator and mutation engine evaluate the overlap group
// through this single permission so its state is not a duplicate of Read's.
func (g PermissionGroup) DistinguishingPermission() (Permission, bool) {
	if g == GroupReadExecute {
		return PermExecute, true
	}
	return 0, false
}

// MutationExpansion returns the permissions a SetPermissionGroup call
// touches. For the overlap group this is only the distinguishing permission,
// leaving Read's members alone; for every other group it equals Expansion.
func (g PermissionGroup) MutationExpansion() []Permission {
	if p, ok := g.DistinguishingPermission(); ok {
		return []Permission{p}
	}
	return g.Expansion()
}

// DerivableGroups returns the groups whose state the aggregator computes
// from member permissions, in display order.
func DerivableGroups() []PermissionGroup {
	out := make([]PermissionGroup, len(derivableGroups))
	copy(out, derivableGroups)
	return out
}

// UngroupedPermissions returns the permissions covered by no derivable
// group; these are the members of Special.
func UngroupedPermissions() []Permission {
	out := make([]Permission, len(specialPermissions))
	copy(out, specialPermissions)
	return out
}
