// Package memory provides an in-memory implementation of the
// directory.Directory interface. All data is lost on restart; servers seed
// it from a domain file at startup.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/permdeck/permdeck/pkg/directory"
)

// MemoryDirectory is a thread-safe, ephemeral directory.Directory.
type MemoryDirectory struct {
	mu     sync.RWMutex
	users  map[string]*directory.User
	groups map[string]*directory.Group
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		users:  make(map[string]*directory.User),
		groups: make(map[string]*directory.Group),
	}
}

// CreateUser adds a user. A missing ID is assigned a fresh UUID.
// Returns ErrDuplicatePrincipal if a user or group with the name exists.
func (m *MemoryDirectory) CreateUser(ctx context.Context, user *directory.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nameTakenLocked(user.Name) {
		return fmt.Errorf("%w: %s", directory.ErrDuplicatePrincipal, user.Name)
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	m.users[stored.Name] = &stored
	return nil
}

// CreateGroup adds a group.
// Returns ErrDuplicatePrincipal if a user or group with the name exists.
func (m *MemoryDirectory) CreateGroup(ctx context.Context, group *directory.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := group.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nameTakenLocked(group.Name) {
		return fmt.Errorf("%w: %s", directory.ErrDuplicatePrincipal, group.Name)
	}

	stored := *group
	stored.Members = append([]string(nil), group.Members...)
	m.groups[stored.Name] = &stored
	return nil
}

// AddMember appends a principal to a group's member list.
// No error if the principal is already a member.
func (m *MemoryDirectory) AddMember(ctx context.Context, groupName, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	group, ok := m.groups[groupName]
	if !ok {
		return fmt.Errorf("%w: %s", directory.ErrPrincipalNotFound, groupName)
	}
	if _, ok := m.users[member]; !ok {
		if _, ok := m.groups[member]; !ok {
			return fmt.Errorf("%w: %s", directory.ErrPrincipalNotFound, member)
		}
	}
	if group.HasMember(member) {
		return nil
	}
	group.Members = append(group.Members, member)
	return nil
}

// RemoveMember removes a principal from a group's member list.
// No error if the principal was not a member.
func (m *MemoryDirectory) RemoveMember(ctx context.Context, groupName, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	group, ok := m.groups[groupName]
	if !ok {
		return fmt.Errorf("%w: %s", directory.ErrPrincipalNotFound, groupName)
	}
	for i, name := range group.Members {
		if name == member {
			group.Members = append(group.Members[:i], group.Members[i+1:]...)
			return nil
		}
	}
	return nil
}

// LookupUser implements directory.Directory.
func (m *MemoryDirectory) LookupUser(name string) (*directory.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", directory.ErrPrincipalNotFound, name)
	}
	copied := *user
	return &copied, nil
}

// LookupGroup implements directory.Directory.
func (m *MemoryDirectory) LookupGroup(name string) (*directory.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	group, ok := m.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", directory.ErrPrincipalNotFound, name)
	}
	copied := *group
	copied.Members = append([]string(nil), group.Members...)
	return &copied, nil
}

// IsUser implements directory.Directory.
func (m *MemoryDirectory) IsUser(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.users[name]; ok {
		return true, nil
	}
	if _, ok := m.groups[name]; ok {
		return false, nil
	}
	return false, fmt.Errorf("%w: %s", directory.ErrPrincipalNotFound, name)
}

// Members implements directory.Directory.
func (m *MemoryDirectory) Members(name string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if group, ok := m.groups[name]; ok {
		return append([]string(nil), group.Members...), nil
	}
	if _, ok := m.users[name]; ok {
		return nil, fmt.Errorf("%w: %s", directory.ErrNotGroup, name)
	}
	return nil, fmt.Errorf("%w: %s", directory.ErrPrincipalNotFound, name)
}

// ListUsers implements directory.Directory. Users are sorted by name.
func (m *MemoryDirectory) ListUsers() ([]*directory.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*directory.User, 0, len(m.users))
	for _, user := range m.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

// ListGroups implements directory.Directory. Groups are sorted by name.
func (m *MemoryDirectory) ListGroups() ([]*directory.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	groups := make([]*directory.Group, 0, len(m.groups))
	for _, group := range m.groups {
		copied := *group
		copied.Members = append([]string(nil), group.Members...)
		groups = append(groups, &copied)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

func (m *MemoryDirectory) nameTakenLocked(name string) bool {
	if _, ok := m.users[name]; ok {
		return true
	}
	_, ok := m.groups[name]
	return ok
}
