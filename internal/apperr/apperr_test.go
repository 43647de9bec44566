package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := New(AliasNotFound, "alias 'box' not found", nil)
	assert.Equal(t, "alias 'box' not found", err.Error())

	wrapped := New(ConnectFailed, "failed to connect to 10.0.0.1:22", errors.New("connection refused"))
	assert.Equal(t, "failed to connect to 10.0.0.1:22: connection refused", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no route to host")
	err := Newf(ConnectFailed, cause, "failed to connect to %s", "example.com:22")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "example.com:22")
}

func TestIsKind(t *testing.T) {
	err := New(AuthFailed, "authentication failed for 'box'", errors.New("permission denied"))

	assert.True(t, IsKind(err, AuthFailed))
	assert.False(t, IsKind(err, ConnectFailed))
	assert.False(t, IsKind(nil, AuthFailed))
	assert.False(t, IsKind(errors.New("plain"), AuthFailed))
}

func TestIsKind_WrappedChain(t *testing.T) {
	inner := New(TransferFailed, "error reading remote file", errors.New("io timeout"))
	outer := fmt.Errorf("download report.txt: %w", inner)

	assert.True(t, IsKind(outer, TransferFailed))
	assert.False(t, IsKind(outer, NotAFile))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "authentication failed", AuthFailed.String())
	assert.Equal(t, "destination is a file", DestinationIsFile.String())
	assert.Equal(t, "unknown error", Kind(99).String())
}
