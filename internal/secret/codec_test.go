package secret

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/passkeep/passkeep-server/internal/apierrors"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testKey, bcrypt.MinCost)
	require.NoError(t, err)
	return c
}

func TestNewCodec_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "not hex", key: "zzzz"},
		{name: "too short", key: "6368616e6765"},
		{name: "empty", key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec(tt.key, 0)
			require.Error(t, err)
		})
	}
}

func TestCodec_HashPassword_Verify(t *testing.T) {
	c := newTestCodec(t)

	hash, err := c.HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	assert.True(t, c.VerifyPassword("s3cret", hash))
	assert.False(t, c.VerifyPassword("wrong", hash))
}

func TestCodec_HashPassword_DistinctSalts(t *testing.T) {
	c := newTestCodec(t)

	first, err := c.HashPassword("s3cret")
	require.NoError(t, err)
	second, err := c.HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCodec_Encrypt_Roundtrip(t *testing.T) {
	c := newTestCodec(t)

	ciphertext, err := c.Encrypt("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", ciphertext)

	plain, err := c.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)
}

func TestCodec_Encrypt_FreshNoncePerCall(t *testing.T) {
	c := newTestCodec(t)

	first, err := c.Encrypt("hunter2")
	require.NoError(t, err)
	second, err := c.Encrypt("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCodec_Decrypt_Garbage(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name  string
		input string
	}{
		{name: "not base64", input: "%%%"},
		{name: "too short", input: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "tampered", input: base64.StdEncoding.EncodeToString(make([]byte, 64))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.input)
			require.Error(t, err)

			apiErr, ok := apierrors.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, 500, apiErr.Status)
		})
	}
}

func TestCodec_Decrypt_WrongKey(t *testing.T) {
	c := newTestCodec(t)
	other, err := NewCodec("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f", bcrypt.MinCost)
	require.NoError(t, err)

	ciphertext, err := c.Encrypt("hunter2")
	require.NoError(t, err)

	_, err = other.Decrypt(ciphertext)
	require.Error(t, err)
}
