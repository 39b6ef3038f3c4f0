package history_test

import (
	"testing"
	"time"

	"github.com/nivl-labs/mvcs/history"
	"github.com/nivl-labs/mvcs/object"
	"github.com/nivl-labs/mvcs/odb"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commit(t *testing.T, store *odb.Store, msg string, parents ...oid.Oid) oid.Oid {
	t.Helper()
	tree := object.NewTree(nil)
	_, err := store.Put(tree.ToObject())
	require.NoError(t, err)

	author := object.Signature{Identity: "tester", Time: time.Unix(1, 0).UTC()}
	c := object.NewCommit(tree.ID(), author, object.CommitOptions{Message: msg, ParentIDs: parents})
	id, err := history.WriteCommit(store, c)
	require.NoError(t, err)
	return id
}

func TestWalkFirstParentAndAncestry(t *testing.T) {
	t.Parallel()

	store := odb.New(afero.NewMemMapFs(), ".vcs")
	root := commit(t, store, "root")
	mid := commit(t, store, "mid", root)
	tip := commit(t, store, "tip", mid)

	chain, err := history.WalkFirstParent(store, tip)
	require.NoError(t, err)
	assert.Equal(t, []oid.Oid{tip, mid, root}, chain)

	isAncestor, err := history.IsAncestor(store, root, tip)
	require.NoError(t, err)
	assert.True(t, isAncestor)

	isAncestor, err = history.IsAncestor(store, tip, root)
	require.NoError(t, err)
	assert.False(t, isAncestor)
}

func TestMergeBase(t *testing.T) {
	t.Parallel()

	store := odb.New(afero.NewMemMapFs(), ".vcs")
	root := commit(t, store, "root")
	tip := commit(t, store, "tip", root)

	base, found, err := history.MergeBase(store, tip, root)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, root, base)

	_, found, err = history.MergeBase(store, root, tip)
	require.NoError(t, err)
	assert.False(t, found, "tip is not a first-parent ancestor of root")
}
