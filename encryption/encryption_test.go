package encryption

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNewWithKey(t *testing.T) {
	t.Run("valid_key", func(t *testing.T) {
		c, err := NewWithKey(testKey)
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("short_key", func(t *testing.T) {
		_, err := NewWithKey([]byte("too-short"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidKeyLength))
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Run("missing_key", func(t *testing.T) {
		t.Setenv(EnvKeyName, "")
		_, err := NewFromEnv()
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("valid_key", func(t *testing.T) {
		t.Setenv(EnvKeyName, string(testKey))
		c, err := NewFromEnv()
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

func TestEncryptDecrypt(t *testing.T) {
	c, err := NewWithKey(testKey)
	require.NoError(t, err)

	t.Run("round_trip", func(t *testing.T) {
		plaintext := `{"user_id":"u1","name":"Alice"}`
		encrypted, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encrypted)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("empty_plaintext", func(t *testing.T) {
		encrypted, err := c.Encrypt("")
		require.NoError(t, err)
		assert.Empty(t, encrypted)

		decrypted, err := c.Decrypt("")
		require.NoError(t, err)
		assert.Empty(t, decrypted)
	})

	t.Run("unique_nonces", func(t *testing.T) {
		first, err := c.Encrypt("same input")
		require.NoError(t, err)
		second, err := c.Encrypt("same input")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestDecryptErrors(t *testing.T) {
	c, err := NewWithKey(testKey)
	require.NoError(t, err)

	t.Run("invalid_base64", func(t *testing.T) {
		_, err := c.Decrypt("not base64!!!")
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("too_short", func(t *testing.T) {
		_, err := c.Decrypt("YWJj") // "abc", shorter than a GCM nonce
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	})

	t.Run("wrong_key", func(t *testing.T) {
		encrypted, err := c.Encrypt("secret")
		require.NoError(t, err)

		other, err := NewWithKey([]byte(strings.Repeat("x", MinKeyLength)))
		require.NoError(t, err)
		_, err = other.Decrypt(encrypted)
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})
}

func TestValidateKey(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv(EnvKeyName, "")
		assert.ErrorIs(t, ValidateKey(), ErrKeyNotFound)
	})

	t.Run("short", func(t *testing.T) {
		t.Setenv(EnvKeyName, "short")
		assert.ErrorIs(t, ValidateKey(), ErrInvalidKeyLength)
	})

	t.Run("ok", func(t *testing.T) {
		t.Setenv(EnvKeyName, string(testKey))
		assert.NoError(t, ValidateKey())
	})
}
