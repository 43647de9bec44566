package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	c, err := NewCipher(key)
	require.NoError(t, err)
	return c
}

func TestEncryptDecrypt(t *testing.T) {
	c := newTestCipher(t)

	sealed, err := c.Encrypt("s3cret")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "s3cret")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", plain)
}

func TestEncrypt_NonceVaries(t *testing.T) {
	c := newTestCipher(t)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_WrongKey(t *testing.T) {
	sealed, err := newTestCipher(t).Encrypt("s3cret")
	require.NoError(t, err)

	_, err = newTestCipher(t).Decrypt(sealed)
	assert.Error(t, err)
}

func TestDecrypt_Malformed(t *testing.T) {
	c := newTestCipher(t)

	_, err := c.Decrypt("not-hex")
	assert.Error(t, err)

	_, err = c.Decrypt("abcd")
	assert.Error(t, err)
}

func TestNewCipher_KeySize(t *testing.T) {
	_, err := NewCipher([]byte("short"))
	assert.Error(t, err)
}
