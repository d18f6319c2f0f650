// Package domain bundles a principal directory and a file tree into one
// independently evaluable ACL domain, with seeding from YAML files and
// snapshot support for durable stores.
package domain

import (
	"context"
	"fmt"
	"sort"

	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/directory"
	"github.com/permdeck/permdeck/pkg/engine"
	"github.com/permdeck/permdeck/pkg/store/directory/memory"
	"github.com/permdeck/permdeck/pkg/tree"
)

// Domain is one self-contained permission universe: its own principals,
// its own file tree, and an engine evaluating over them. Domains share no
// state, so a process can serve several of them side by side.
type Domain struct {
	name string
	dir  *memory.MemoryDirectory
	tr   *tree.Tree
	eng  *engine.Engine
}

// Option configures a Domain at construction time.
type Option func(*settings)

type settings struct {
	metrics *acl.Metrics
}

// WithMetrics attaches engine metrics to the domain.
func WithMetrics(m *acl.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// New creates an empty named domain.
func New(name string, opts ...Option) *Domain {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	dir := memory.NewMemoryDirectory()
	tr := tree.NewTree()
	return &Domain{
		name: name,
		dir:  dir,
		tr:   tr,
		eng:  engine.New(dir, tr, engine.WithMetrics(s.metrics)),
	}
}

// Name returns the domain name.
func (d *Domain) Name() string {
	return d.name
}

// Directory returns the domain's principal directory.
func (d *Domain) Directory() *memory.MemoryDirectory {
	return d.dir
}

// Tree returns the domain's file tree.
func (d *Domain) Tree() *tree.Tree {
	return d.tr
}

// Engine returns the evaluation and mutation engine bound to this domain.
func (d *Domain) Engine() *engine.Engine {
	return d.eng
}

// FileState is the serializable form of one file: its position in the tree
// and its direct ACL. Inherited flags are never persisted; they are an
// evaluation-time artifact.
type FileState struct {
	Path        string    `json:"path" yaml:"path"`
	Parent      string    `json:"parent,omitempty" yaml:"parent,omitempty"`
	Inheritance bool      `json:"inheritance" yaml:"inheritance"`
	ACL         []acl.ACE `json:"acl,omitempty" yaml:"acl,omitempty"`
}

// Snapshot is the full serializable state of a domain.
type Snapshot struct {
	Name   string            `json:"name" yaml:"name"`
	Users  []directory.User  `json:"users,omitempty" yaml:"users,omitempty"`
	Groups []directory.Group `json:"groups,omitempty" yaml:"groups,omitempty"`
	Files  []FileState       `json:"files,omitempty" yaml:"files,omitempty"`
}

// Snapshot captures the current state of the domain. Files are listed in
// path order, which guarantees parents precede their children on restore.
func (d *Domain) Snapshot() (*Snapshot, error) {
	users, err := d.dir.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	groups, err := d.dir.ListGroups()
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	snap := &Snapshot{Name: d.name}
	for _, u := range users {
		snap.Users = append(snap.Users, *u)
	}
	for _, g := range groups {
		snap.Groups = append(snap.Groups, *g)
	}

	for _, f := range d.tr.List() {
		state := FileState{
			Path:        f.Path(),
			Inheritance: f.InheritanceEnabled(),
			ACL:         f.DirectACL(),
		}
		if parent := f.Parent(); parent != nil {
			state.Parent = parent.Path()
		}
		snap.Files = append(snap.Files, state)
	}
	return snap, nil
}

// Restore rebuilds a domain from a snapshot.
func Restore(snap *Snapshot, opts ...Option) (*Domain, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}

	d := New(snap.Name, opts...)
	if err := d.populate(snap.Users, snap.Groups); err != nil {
		return nil, err
	}

	files := append([]FileState(nil), snap.Files...)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	for _, state := range files {
		f, err := d.tr.AddFile(state.Path, state.Parent)
		if err != nil {
			return nil, fmt.Errorf("restoring file %s: %w", state.Path, err)
		}
		f.SetInheritance(state.Inheritance)
		if err := d.applyACL(f, state.ACL); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// populate creates the snapshot's principals in the directory.
func (d *Domain) populate(users []directory.User, groups []directory.Group) error {
	ctx := context.Background()
	for i := range users {
		u := users[i]
		if err := d.dir.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("creating user %s: %w", u.Name, err)
		}
	}
	for i := range groups {
		g := groups[i]
		// Create with empty membership first so groups can reference each
		// other regardless of declaration order.
		shell := directory.Group{Name: g.Name, Description: g.Description}
		if err := d.dir.CreateGroup(ctx, &shell); err != nil {
			return fmt.Errorf("creating group %s: %w", g.Name, err)
		}
	}
	for _, g := range groups {
		for _, member := range g.Members {
			if err := d.dir.AddMember(ctx, g.Name, member); err != nil {
				return fmt.Errorf("adding %s to group %s: %w", member, g.Name, err)
			}
		}
	}
	return nil
}

// applyACL installs ACEs on a file after checking each principal exists.
func (d *Domain) applyACL(f *tree.File, aces []acl.ACE) error {
	for _, ace := range aces {
		if _, err := d.dir.IsUser(ace.Principal); err != nil {
			return fmt.Errorf("file %s: ACE references unknown principal %q", f.Path(), ace.Principal)
		}
	}
	return f.Mutate(func(ed *tree.ACLEditor) error {
		for _, ace := range aces {
			ed.Upsert(ace.Principal, ace.Permission, ace.Effect)
		}
		return nil
	})
}
