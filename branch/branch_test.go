package branch_test

import (
	"testing"

	"github.com/nivl-labs/mvcs/branch"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/nivl-labs/mvcs/refstore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*branch.Manager, *refstore.Store) {
	t.Helper()
	fs := afero.NewMemMapFs()
	refs := refstore.New(fs, ".vcs")
	return branch.New(refs), refs
}

func TestCreateAndExists(t *testing.T) {
	t.Parallel()

	m, _ := setup(t)
	id := oid.Sum([]byte("c1"))
	require.NoError(t, m.Create("feature", id))

	exists, err := m.Exists("feature")
	require.NoError(t, err)
	assert.True(t, exists)

	head, err := m.Head("feature")
	require.NoError(t, err)
	assert.Equal(t, id, head)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	t.Parallel()

	m, _ := setup(t)
	id := oid.Sum([]byte("c1"))
	require.NoError(t, m.Create("feature", id))

	err := m.Create("feature", id)
	require.ErrorIs(t, err, branch.ErrAlreadyExists)
}

func TestDeleteRejectsCurrentBranch(t *testing.T) {
	t.Parallel()

	m, refs := setup(t)
	id := oid.Sum([]byte("c1"))
	require.NoError(t, m.Create("master", id))
	require.NoError(t, refs.UpdateHead("master"))

	err := m.Delete("master")
	require.ErrorIs(t, err, branch.ErrIsCurrent)
}

func TestDeleteNonCurrentBranch(t *testing.T) {
	t.Parallel()

	m, refs := setup(t)
	require.NoError(t, m.Create("master", oid.Sum([]byte("c1"))))
	require.NoError(t, refs.UpdateHead("master"))
	require.NoError(t, m.Create("feature", oid.Sum([]byte("c2"))))

	require.NoError(t, m.Delete("feature"))

	exists, err := m.Exists("feature")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteMissingBranch(t *testing.T) {
	t.Parallel()

	m, _ := setup(t)
	err := m.Delete("nope")
	require.ErrorIs(t, err, branch.ErrNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()

	m, _ := setup(t)
	require.NoError(t, m.Create("master", oid.Sum([]byte("a"))))
	require.NoError(t, m.Create("dev", oid.Sum([]byte("b"))))

	names, err := m.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"master", "dev"}, names)
}
