package domain

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/directory"
	"github.com/permdeck/permdeck/pkg/tree"
)

// Seed is the YAML description of an initial domain: principals, files,
// and their direct ACLs.
//
// Example:
//
//	name: corp
//	users:
//	  - name: alice
//	    display_name: Alice Smith
//	  - name: bob
//	groups:
//	  - name: staff
//	    members: [alice, bob]
//	files:
//	  - path: /docs
//	    acl:
//	      - {principal: staff, permission: read-data, effect: allow}
//	  - path: /docs/finance
//	    inherit: false
type Seed struct {
	Name   string            `yaml:"name"`
	Users  []directory.User  `yaml:"users"`
	Groups []directory.Group `yaml:"groups"`
	Files  []SeedFile        `yaml:"files"`
}

// SeedFile describes one file entry in a seed. Parent may be omitted: it
// defaults to the entry whose path is the file's directory portion, or to
// no parent (a root) when no such entry exists. Inherit defaults to true.
type SeedFile struct {
	Path    string    `yaml:"path"`
	Parent  string    `yaml:"parent,omitempty"`
	Inherit *bool     `yaml:"inherit,omitempty"`
	ACL     []acl.ACE `yaml:"acl,omitempty"`
}

// ParseSeed decodes and validates a YAML seed document.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// LoadSeed reads and parses a seed file from disk.
func LoadSeed(filePath string) (*Seed, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", filePath, err)
	}
	return seed, nil
}

// Validate checks the seed is internally consistent.
func (s *Seed) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("seed requires a domain name")
	}
	for i := range s.Users {
		if err := s.Users[i].Validate(); err != nil {
			return err
		}
	}
	for i := range s.Groups {
		if err := s.Groups[i].Validate(); err != nil {
			return err
		}
	}
	for _, f := range s.Files {
		if f.Path == "" {
			return fmt.Errorf("seed file entry without a path")
		}
	}
	return nil
}

// FromSeed builds a fully populated domain from a seed.
func FromSeed(seed *Seed, opts ...Option) (*Domain, error) {
	if seed == nil {
		return nil, fmt.Errorf("nil seed")
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}

	d := New(seed.Name, opts...)
	if err := d.populate(seed.Users, seed.Groups); err != nil {
		return nil, err
	}

	for _, entry := range seed.Files {
		parent := entry.Parent
		if parent == "" {
			parent = impliedParent(d.tr, entry.Path)
		}
		f, err := d.tr.AddFile(entry.Path, parent)
		if err != nil {
			return nil, fmt.Errorf("seeding file %s: %w", entry.Path, err)
		}
		if entry.Inherit != nil {
			f.SetInheritance(*entry.Inherit)
		}
		if err := d.applyACL(f, entry.ACL); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// impliedParent returns the path-derived parent when the seed omits one:
// the already-seeded file at the entry's directory path, or none.
func impliedParent(tr *tree.Tree, filePath string) string {
	dir := path.Dir(tree.CleanPath(filePath))
	if dir == "/" || dir == "." {
		return ""
	}
	if _, err := tr.Lookup(dir); err != nil {
		return ""
	}
	return dir
}
