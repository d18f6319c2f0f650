package handlers

import (
	"testing"

	"github.com/permdeck/permdeck/pkg/domain"
)

// staticSource serves a fixed domain; Set swaps it like the live manager.
type staticSource struct {
	d *domain.Domain
}

func (s *staticSource) Current() *domain.Domain { return s.d }
func (s *staticSource) Set(d *domain.Domain)    { s.d = d }

const testSeed = `
name: corp
users:
  - name: alice
  - name: bob
groups:
  - name: staff
    members: [alice, bob]
files:
  - path: /docs
    acl:
      - principal: staff
        permission: read-data
        effect: allow
      - principal: alice
        permission: write-data
        effect: allow
  - path: /docs/sub
    parent: /docs
`

func testDomain(t *testing.T) *domain.Domain {
	t.Helper()
	seed, err := domain.ParseSeed([]byte(testSeed))
	if err != nil {
		t.Fatalf("parsing seed: %v", err)
	}
	d, err := domain.FromSeed(seed)
	if err != nil {
		t.Fatalf("building domain: %v", err)
	}
	return d
}

func testSource(t *testing.T) *staticSource {
	t.Helper()
	return &staticSource{d: testDomain(t)}
}
