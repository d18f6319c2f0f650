package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/directory"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Name: "corp",
		Users: []directory.User{
			{Name: "alice"},
			{Name: "bob"},
		},
		Groups: []directory.Group{
			{Name: "staff", Members: []string{"alice", "bob"}},
		},
		Files: []FileState{
			{Path: "/docs", Inheritance: true, ACL: []acl.ACE{
				{Principal: "staff", Permission: acl.PermReadData, Effect: acl.Allow},
			}},
			{Path: "/docs/sub", Parent: "/docs", Inheritance: true},
		},
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	d, err := Restore(testSnapshot())
	require.NoError(t, err)

	allowed, err := d.Engine().IsAllowed("/docs/sub", "alice", acl.PermReadData)
	require.NoError(t, err)
	assert.True(t, allowed)

	snap, err := d.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "corp", snap.Name)
	assert.Len(t, snap.Users, 2)
	assert.Len(t, snap.Groups, 1)
	assert.Len(t, snap.Files, 2)
	assert.Equal(t, "/docs", snap.Files[0].Path)
	assert.Equal(t, "/docs", snap.Files[1].Parent)

	// Restoring the captured snapshot reproduces the same decisions.
	d2, err := Restore(snap)
	require.NoError(t, err)
	allowed, err = d2.Engine().IsAllowed("/docs/sub", "alice", acl.PermReadData)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRestoreOrdersFilesByPath(t *testing.T) {
	snap := testSnapshot()
	// Children listed before parents must still restore.
	snap.Files[0], snap.Files[1] = snap.Files[1], snap.Files[0]

	d, err := Restore(snap)
	require.NoError(t, err)
	_, err = d.Tree().Lookup("/docs/sub")
	assert.NoError(t, err)
}

func TestRestoreRejectsUnknownACLPrincipal(t *testing.T) {
	snap := testSnapshot()
	snap.Files[0].ACL = append(snap.Files[0].ACL, acl.ACE{
		Principal:  "ghost",
		Permission: acl.PermReadData,
		Effect:     acl.Allow,
	})

	_, err := Restore(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRestoreForwardGroupReference(t *testing.T) {
	snap := testSnapshot()
	// "editors" references "writers" which is declared later.
	snap.Groups = []directory.Group{
		{Name: "editors", Members: []string{"writers"}},
		{Name: "writers", Members: []string{"alice"}},
	}
	// The fixture ACL targets a group that no longer exists
	snap.Files[0].ACL = []acl.ACE{
		{Principal: "writers", Permission: acl.PermReadData, Effect: acl.Allow},
	}

	d, err := Restore(snap)
	require.NoError(t, err)

	groups, err := directory.GroupsContaining(d.Directory(), "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"editors", "writers"}, groups)
}

func TestSnapshotDropsInheritedFlags(t *testing.T) {
	d, err := Restore(testSnapshot())
	require.NoError(t, err)

	snap, err := d.Snapshot()
	require.NoError(t, err)
	for _, f := range snap.Files {
		for _, ace := range f.ACL {
			assert.False(t, ace.Inherited, "direct ACL must not carry inherited flags")
		}
	}
}

func TestDomainsAreIndependent(t *testing.T) {
	a, err := Restore(testSnapshot())
	require.NoError(t, err)
	b := New("other")

	_, err = b.Engine().IsAllowed("/docs", "alice", acl.PermReadData)
	assert.Error(t, err, "empty domain must not see the other domain's files")

	allowed, err := a.Engine().IsAllowed("/docs", "alice", acl.PermReadData)
	require.NoError(t, err)
	assert.True(t, allowed)
}
