package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConnectionString(t *testing.T) {
	target, err := ParseConnectionString("root@10.0.0.1", 22)
	require.NoError(t, err)
	assert.Equal(t, "root", target.User)
	assert.Equal(t, "10.0.0.1", target.Host)
	assert.Equal(t, uint16(22), target.Port)
}

func TestParseConnectionString_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no separator", "roothost"},
		{"two separators", "root@host@extra"},
		{"empty user", "@host"},
		{"empty host", "root@"},
		{"only separator", "@"},
		{"empty string", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConnectionString(tc.in, 22)
			assert.Error(t, err)
		})
	}
}

func TestTargetAddr(t *testing.T) {
	target, err := ParseConnectionString("deploy@example.com", 2222)
	require.NoError(t, err)
	assert.Equal(t, "example.com:2222", target.Addr())
	assert.Equal(t, "deploy@example.com:2222", target.String())
}
