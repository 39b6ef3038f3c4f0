package vcserr_test

import (
	"errors"
	"testing"

	"github.com/nivl-labs/mvcs/vcserr"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk is on fire")
	err := vcserr.Wrap(vcserr.IOError, cause, "writing object")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, vcserr.IOError, vcserr.KindOf(err))
	assert.True(t, vcserr.Is(err, vcserr.IOError))
	assert.False(t, vcserr.Is(err, vcserr.NotFound))
}

func TestWrapNil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, vcserr.Wrap(vcserr.IOError, nil, "whatever"))
}

func TestKindOfPlainError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, vcserr.Unknown, vcserr.KindOf(errors.New("plain")))
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := vcserr.Newf(vcserr.BadOid, "invalid oid %q", "zzz")
	assert.Equal(t, vcserr.BadOid, vcserr.KindOf(err))
	assert.Contains(t, err.Error(), "zzz")
}
