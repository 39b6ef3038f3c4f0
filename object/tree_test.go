package object_test

import (
	"testing"

	"github.com/nivl-labs/mvcs/object"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeRoundTrip(t *testing.T) {
	t.Parallel()

	idA := oid.Sum([]byte("a"))
	idB := oid.Sum([]byte("b"))

	entries := []object.TreeEntry{
		{Name: "a.txt", ID: idA},
		{Name: "b.txt", ID: idB},
	}
	object.SortEntries(entries)

	tree := object.NewTree(entries)

	decoded, err := tree.ToObject().AsTree()
	require.NoError(t, err)
	assert.Equal(t, entries, decoded.Entries())
	assert.Equal(t, tree.ID(), decoded.ID())
}

func TestTreeRejectsUnsortedEntries(t *testing.T) {
	t.Parallel()

	entries := []object.TreeEntry{
		{Name: "z.txt", ID: oid.Sum([]byte("z"))},
		{Name: "a.txt", ID: oid.Sum([]byte("a"))},
	}
	tree := object.NewTree(entries)

	_, err := tree.ToObject().AsTree()
	require.Error(t, err)
}

func TestTreeRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	entries := []object.TreeEntry{
		{Name: "a.txt", ID: oid.Sum([]byte("a"))},
		{Name: "a.txt", ID: oid.Sum([]byte("b"))},
	}
	tree := object.NewTree(entries)

	_, err := tree.ToObject().AsTree()
	require.Error(t, err)
}

func TestEmptyTree(t *testing.T) {
	t.Parallel()

	tree := object.NewTree(nil)
	decoded, err := tree.ToObject().AsTree()
	require.NoError(t, err)
	assert.Empty(t, decoded.Entries())
}
