package object_test

import (
	"testing"

	"github.com/nivl-labs/mvcs/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	t.Parallel()

	o := object.New(object.TypeBlob, []byte("hello world"))
	compressed, err := o.Compress()
	require.NoError(t, err)

	got, err := object.Decompress(compressed)
	require.NoError(t, err)

	assert.Equal(t, o.ID(), got.ID())
	assert.Equal(t, o.Type(), got.Type())
	assert.Equal(t, o.Bytes(), got.Bytes())
}

func TestIDIsDeterministic(t *testing.T) {
	t.Parallel()

	a := object.New(object.TypeBlob, []byte("same content"))
	b := object.New(object.TypeBlob, []byte("same content"))
	assert.Equal(t, a.ID(), b.ID())

	c := object.New(object.TypeBlob, []byte("different content"))
	assert.NotEqual(t, a.ID(), c.ID())
}

func TestParseRejectsSizeMismatch(t *testing.T) {
	t.Parallel()

	_, err := object.Parse([]byte("blob 99\x00short"))
	require.Error(t, err)
}

func TestParseRejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, err := object.Parse([]byte("tag 0\x00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, object.ErrUnknownType)
}
