package directory

import "fmt"

// GroupsContaining returns every group that directly or transitively
// contains the named principal, in a deterministic order (breadth-first
// over the directory's group listing order).
//
// The full group graph is cycle-checked before traversal; a cycle returns
// ErrMembershipCycle wrapped with the offending group name. The engine
// treats this as a fatal data-integrity fault.
func GroupsContaining(d Directory, principal string) ([]string, error) {
	groups, err := d.ListGroups()
	if err != nil {
		return nil, err
	}

	if err := checkCycles(groups); err != nil {
		return nil, err
	}

	// memberOf maps a principal name to the groups that list it directly,
	// preserving ListGroups order for deterministic output.
	memberOf := make(map[string][]string)
	for _, g := range groups {
		for _, member := range g.Members {
			memberOf[member] = append(memberOf[member], g.Name)
		}
	}

	var result []string
	seen := map[string]bool{}
	queue := []string{principal}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, groupName := range memberOf[current] {
			if seen[groupName] {
				continue
			}
			seen[groupName] = true
			result = append(result, groupName)
			queue = append(queue, groupName)
		}
	}
	return result, nil
}

// Contains reports whether the group directly or transitively contains the
// named principal. Returns ErrMembershipCycle on cyclic membership.
func Contains(d Directory, group, principal string) (bool, error) {
	containing, err := GroupsContaining(d, principal)
	if err != nil {
		return false, err
	}
	for _, name := range containing {
		if name == group {
			return true, nil
		}
	}
	return false, nil
}

// ExpandUsers returns the ordered set of user names that are direct or
// transitive members of the group. Nested groups are expanded depth-first in
// member order; duplicates are dropped. Returns ErrMembershipCycle on
// cyclic membership and ErrNotGroup when the principal is a user.
func ExpandUsers(d Directory, group string) ([]string, error) {
	if isUser, err := d.IsUser(group); err != nil {
		return nil, err
	} else if isUser {
		return nil, fmt.Errorf("%w: %s", ErrNotGroup, group)
	}

	var users []string
	seenUsers := map[string]bool{}
	onPath := map[string]bool{}

	var walk func(name string) error
	walk = func(name string) error {
		if onPath[name] {
			return fmt.Errorf("%w: %s", ErrMembershipCycle, name)
		}
		onPath[name] = true
		defer delete(onPath, name)

		members, err := d.Members(name)
		if err != nil {
			return err
		}
		for _, member := range members {
			isUser, err := d.IsUser(member)
			if err != nil {
				return err
			}
			if isUser {
				if !seenUsers[member] {
					seenUsers[member] = true
					users = append(users, member)
				}
				continue
			}
			if err := walk(member); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(group); err != nil {
		return nil, err
	}
	return users, nil
}

// checkCycles walks the group-to-group membership edges depth-first with an
// on-path set, so diamond-shaped membership (legal) is distinguished from a
// true cycle (fatal).
func checkCycles(groups []*Group) error {
	byName := make(map[string]*Group, len(groups))
	for _, g := range groups {
		byName[g.Name] = g
	}

	visited := map[string]bool{}
	onPath := map[string]bool{}

	var visit func(g *Group) error
	visit = func(g *Group) error {
		if onPath[g.Name] {
			return fmt.Errorf("%w: %s", ErrMembershipCycle, g.Name)
		}
		if visited[g.Name] {
			return nil
		}
		onPath[g.Name] = true
		for _, member := range g.Members {
			if child, ok := byName[member]; ok {
				if err := visit(child); err != nil {
					return err
				}
			}
		}
		delete(onPath, g.Name)
		visited[g.Name] = true
		return nil
	}

	for _, g := range groups {
		if err := visit(g); err != nil {
			return err
		}
	}
	return nil
}
