package object_test

import (
	"testing"
	"time"

	"github.com/nivl-labs/mvcs/object"
	"github.com/nivl-labs/mvcs/oid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitRoundTrip(t *testing.T) {
	t.Parallel()

	treeID := oid.Sum([]byte("tree"))
	parentID := oid.Sum([]byte("parent"))
	author := object.Signature{Identity: "Ada Lovelace", Time: time.Unix(1000, 0).UTC()}

	c := object.NewCommit(treeID, author, object.CommitOptions{
		Message:   "initial commit\n",
		ParentIDs: []oid.Oid{parentID},
	})

	decoded, err := c.ToObject().AsCommit()
	require.NoError(t, err)

	assert.Equal(t, treeID, decoded.TreeID())
	assert.Equal(t, []oid.Oid{parentID}, decoded.ParentIDs())
	assert.Equal(t, author, decoded.Author())
	assert.Equal(t, author, decoded.Committer())
	assert.Equal(t, "initial commit", decoded.Message())
	assert.Equal(t, c.ID(), decoded.ID())
}

func TestCommitDefaultsCommitterToAuthor(t *testing.T) {
	t.Parallel()

	author := object.Signature{Identity: "bob", Time: time.Unix(1, 0).UTC()}
	c := object.NewCommit(oid.Sum([]byte("t")), author, object.CommitOptions{Message: "m"})
	assert.Equal(t, author, c.Committer())
}

func TestCommitAppendsTrailingNewlineToMessage(t *testing.T) {
	t.Parallel()

	author := object.Signature{Identity: "bob", Time: time.Unix(1, 0).UTC()}
	c := object.NewCommit(oid.Sum([]byte("t")), author, object.CommitOptions{Message: "no newline"})
	decoded, err := c.ToObject().AsCommit()
	require.NoError(t, err)
	assert.Equal(t, "no newline", decoded.Message())
}

func TestCommitRejectsMissingTree(t *testing.T) {
	t.Parallel()

	raw := object.New(object.TypeCommit, []byte("author bob 1\n\nmsg\n"))
	_, err := raw.AsCommit()
	require.Error(t, err)
}

func TestParseSignatureSplitsOnLastSpace(t *testing.T) {
	t.Parallel()

	sig, err := object.ParseSignature([]byte("Grace Hopper 1234"))
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", sig.Identity)
	assert.Equal(t, int64(1234), sig.Time.Unix())
}
