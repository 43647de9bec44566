package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetSecret(t *testing.T) {
	v := NewFileVault(t.TempDir())

	require.NoError(t, v.SetSecret("rssh", "box", "s3cret"))

	secret, err := v.GetSecret("rssh", "box")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
}

func TestGetSecret_NotFound(t *testing.T) {
	v := NewFileVault(t.TempDir())

	_, err := v.GetSecret("rssh", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSecret(t *testing.T) {
	v := NewFileVault(t.TempDir())

	require.NoError(t, v.SetSecret("rssh", "box", "s3cret"))
	require.NoError(t, v.DeleteSecret("rssh", "box"))

	_, err := v.GetSecret("rssh", "box")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSecret_AbsentEntrySucceeds(t *testing.T) {
	v := NewFileVault(t.TempDir())

	assert.NoError(t, v.DeleteSecret("rssh", "never-stored"))
}

func TestSecretsEncryptedAtRest(t *testing.T) {
	dir := t.TempDir()
	v := NewFileVault(dir)

	require.NoError(t, v.SetSecret("rssh", "box", "s3cret"))

	raw, err := os.ReadFile(filepath.Join(dir, DefaultVaultFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret")
}

func TestEntriesKeyedByServiceAndAlias(t *testing.T) {
	v := NewFileVault(t.TempDir())

	require.NoError(t, v.SetSecret("rssh", "box", "one"))
	require.NoError(t, v.SetSecret("other", "box", "two"))

	secret, err := v.GetSecret("rssh", "box")
	require.NoError(t, err)
	assert.Equal(t, "one", secret)

	secret, err = v.GetSecret("other", "box")
	require.NoError(t, err)
	assert.Equal(t, "two", secret)
}

func TestKeyFilePermissions(t *testing.T) {
	dir := t.TempDir()
	v := NewFileVault(dir)

	require.NoError(t, v.SetSecret("rssh", "box", "s3cret"))

	info, err := os.Stat(filepath.Join(dir, DefaultKeyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
