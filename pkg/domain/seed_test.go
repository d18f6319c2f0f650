package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permdeck/permdeck/pkg/acl"
)

const sampleSeed = `
name: corp
users:
  - name: alice
    display_name: Alice Smith
  - name: bob
groups:
  - name: staff
    members: [alice, bob]
files:
  - path: /docs
    acl:
      - {principal: staff, permission: read-data, effect: allow}
      - {principal: alice, permission: write-data, effect: deny}
  - path: /docs/finance
    inherit: false
  - path: /public
    parent: ""
`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)

	assert.Equal(t, "corp", seed.Name)
	assert.Len(t, seed.Users, 2)
	assert.Equal(t, "Alice Smith", seed.Users[0].DisplayName)
	assert.Len(t, seed.Files, 3)
	require.Len(t, seed.Files[0].ACL, 2)
	assert.Equal(t, acl.PermReadData, seed.Files[0].ACL[0].Permission)
	assert.Equal(t, acl.Deny, seed.Files[0].ACL[1].Effect)
	require.NotNil(t, seed.Files[1].Inherit)
	assert.False(t, *seed.Files[1].Inherit)
}

func TestParseSeedRejectsBadPermission(t *testing.T) {
	_, err := ParseSeed([]byte(`
name: corp
users: [{name: alice}]
files:
  - path: /docs
    acl:
      - {principal: alice, permission: fly, effect: allow}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fly")
}

func TestParseSeedRequiresName(t *testing.T) {
	_, err := ParseSeed([]byte(`users: [{name: alice}]`))
	require.Error(t, err)
}

func TestFromSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)

	d, err := FromSeed(seed)
	require.NoError(t, err)

	// The seeded group ACE applies to both members.
	allowed, err := d.Engine().IsAllowed("/docs", "bob", acl.PermReadData)
	require.NoError(t, err)
	assert.True(t, allowed)

	// The deny ACE wins over the group allow for the same permission only.
	allowed, err = d.Engine().IsAllowed("/docs", "alice", acl.PermReadData)
	require.NoError(t, err)
	assert.True(t, allowed)
	set, err := d.Engine().EffectivePermissions("/docs", "alice")
	require.NoError(t, err)
	assert.True(t, set.Denied(acl.PermWriteData))
}

func TestFromSeedImpliedParent(t *testing.T) {
	seed, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)

	d, err := FromSeed(seed)
	require.NoError(t, err)

	// /docs/finance declared no parent; it attaches under /docs by path.
	finance, err := d.Tree().Lookup("/docs/finance")
	require.NoError(t, err)
	require.NotNil(t, finance.Parent())
	assert.Equal(t, "/docs", finance.Parent().Path())
	assert.False(t, finance.InheritanceEnabled())

	// /public has no seeded parent entry; it is a root.
	public, err := d.Tree().Lookup("/public")
	require.NoError(t, err)
	assert.Nil(t, public.Parent())
}

func TestLoadSeedFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, "corp", seed.Name)

	_, err = LoadSeed(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestManagerLoadAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o644))

	m := NewManager(path)
	require.Nil(t, m.Current())
	require.NoError(t, m.Load())
	require.NotNil(t, m.Current())
	assert.Equal(t, "corp", m.Current().Name())

	// A broken seed leaves the previous domain serving.
	first := m.Current()
	require.NoError(t, os.WriteFile(path, []byte("name: ["), 0o644))
	require.Error(t, m.Load())
	assert.Same(t, first, m.Current())
}
