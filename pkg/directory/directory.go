// Package directory defines principals (users and groups) and the lookup
// interface the permission engine resolves them through.
//
// Group membership may nest: a group's member list can name other groups.
// Membership must be acyclic; traversal helpers in this package detect
// cycles explicitly and report them instead of looping.
package directory

import (
	"errors"
	"fmt"
)

// Common errors returned by Directory implementations.
var (
	// ErrPrincipalNotFound indicates the named principal does not exist.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrNotGroup indicates a group operation was attempted on a user.
	ErrNotGroup = errors.New("principal is not a group")

	// ErrDuplicatePrincipal indicates a principal with the same name exists.
	ErrDuplicatePrincipal = errors.New("principal already exists")

	// ErrMembershipCycle indicates a group transitively contains itself.
	ErrMembershipCycle = errors.New("group membership cycle")
)

// User is an atomic principal.
type User struct {
	// ID is the unique identifier for the user (UUID).
	ID string `json:"id" yaml:"id"`

	// Name is the unique human-readable identifier for the user.
	Name string `json:"name" yaml:"name"`

	// DisplayName is an optional friendly name shown by editors.
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// Validate checks the user has valid configuration.
func (u *User) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("user name is required")
	}
	return nil
}

// Group is a named principal containing an ordered set of member principal
// names. Members may be users or other groups.
type Group struct {
	// Name is the unique identifier for the group.
	Name string `json:"name" yaml:"name"`

	// Members is the ordered list of member principal names.
	Members []string `json:"members" yaml:"members"`

	// Description is an optional human-readable description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Validate checks the group has valid configuration.
func (g *Group) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	seen := make(map[string]bool, len(g.Members))
	for _, member := range g.Members {
		if member == "" {
			return fmt.Errorf("group %q has an empty member name", g.Name)
		}
		if member == g.Name {
			return fmt.Errorf("group %q lists itself as a member", g.Name)
		}
		if seen[member] {
			return fmt.Errorf("group %q lists member %q twice", g.Name, member)
		}
		seen[member] = true
	}
	return nil
}

// HasMember reports whether name is a direct member of the group.
func (g *Group) HasMember(name string) bool {
	for _, member := range g.Members {
		if member == name {
			return true
		}
	}
	return false
}

// Directory resolves principal names to users and groups.
//
// Thread Safety: implementations must be safe for concurrent use; the
// engine evaluates permissions from multiple goroutines.
type Directory interface {
	// LookupUser returns a user by name.
	// Returns ErrPrincipalNotFound if the user doesn't exist.
	LookupUser(name string) (*User, error)

	// LookupGroup returns a group by name.
	// Returns ErrPrincipalNotFound if the group doesn't exist.
	LookupGroup(name string) (*Group, error)

	// IsUser reports whether the named principal is a user (true) or a
	// group (false). Returns ErrPrincipalNotFound for unknown names.
	IsUser(name string) (bool, error)

	// Members returns the ordered direct member names of a group.
	// Returns ErrPrincipalNotFound for unknown names and ErrNotGroup when
	// the principal is a user.
	Members(group string) ([]string, error)

	// ListUsers returns all users in a stable order.
	ListUsers() ([]*User, error)

	// ListGroups returns all groups in a stable order.
	ListGroups() ([]*Group, error)
}
