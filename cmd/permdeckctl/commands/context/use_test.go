package context

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permdeck/permdeck/internal/cli/credentials"
)

func newTestStore(t *testing.T) *credentials.Store {
	t.Helper()

	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	_ = os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { _ = os.Setenv("XDG_CONFIG_HOME", oldXDG) })

	store, err := credentials.NewStore()
	require.NoError(t, err)
	return store
}

func TestContextOptionsEmpty(t *testing.T) {
	store := newTestStore(t)
	assert.Empty(t, contextOptions(store))
}

func TestContextOptionsMarksCurrent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetContext("staging", &credentials.Context{ServerURL: "http://staging:8080"}))
	require.NoError(t, store.SetContext("production", &credentials.Context{ServerURL: "http://prod:8080"}))
	require.NoError(t, store.UseContext("production"))

	options := contextOptions(store)
	require.Len(t, options, 2)

	byValue := make(map[string]string, len(options))
	for _, o := range options {
		byValue[o.Value] = o.Label
	}
	assert.Equal(t, "production (current)", byValue["production"])
	assert.Equal(t, "staging", byValue["staging"])

	// The server URL shows up as the option description
	for _, o := range options {
		assert.NotEmpty(t, o.Description)
	}
}
