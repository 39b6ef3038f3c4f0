package identity_test

import (
	"os/user"
	"testing"

	"github.com/nivl-labs/mvcs/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter map[string]string

func (f fakeGetter) Get(key string) string { return f[key] }
func (f fakeGetter) Has(key string) bool   { _, ok := f[key]; return ok }

func TestFromEnvNameAndEmail(t *testing.T) {
	t.Parallel()

	got, err := identity.FromEnv(fakeGetter{
		identity.NameVar:  "Ada Lovelace",
		identity.EmailVar: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace ada@example.com", got)
}

func TestFromEnvNameOnly(t *testing.T) {
	t.Parallel()

	got, err := identity.FromEnv(fakeGetter{
		identity.NameVar: "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got)
}

func TestFromEnvFallsBackToOSUser(t *testing.T) {
	t.Parallel()

	got, err := identity.FromEnv(fakeGetter{})
	require.NoError(t, err)

	u, err := user.Current()
	require.NoError(t, err)
	assert.Equal(t, u.Username, got)
}

func TestFromEnvTrimsWhitespace(t *testing.T) {
	t.Parallel()

	got, err := identity.FromEnv(fakeGetter{
		identity.NameVar: "  Ada Lovelace  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got)
}
