package wtwalk_test

import (
	"sort"
	"testing"

	"github.com/nivl-labs/mvcs/wtwalk"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(entries []wtwalk.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	sort.Strings(out)
	return out
}

func TestWalkSkipsVCSDirAndDotfiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/a.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/repo/sub/b.txt", []byte("b"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/repo/.vcs/objects/ab/cdef", []byte("junk"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/repo/.hidden", []byte("nope"), 0o644))

	entries, err := wtwalk.Walk(fs, "/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, paths(entries))
}

func TestWalkReturnsContentAndSize(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/a.txt", []byte("hello\n"), 0o644))

	entries, err := wtwalk.Walk(fs, "/repo")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []byte("hello\n"), entries[0].Bytes)
	assert.Equal(t, int64(6), entries[0].Size)
}

func TestWalkEmptyRepo(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/repo", 0o755))

	entries, err := wtwalk.Walk(fs, "/repo")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
