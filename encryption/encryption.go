// Package encryption provides AES-256-GCM encryption for exported backups.
// It includes key validation and environment variable management so the
// daemon can fail fast on a missing or weak key.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// MinKeyLength is the minimum required length for AES-256 keys (32 bytes).
	MinKeyLength = 32
	// EnvKeyName is the environment variable holding the backup key.
	EnvKeyName = "MOTIVATION_BACKUP_KEY"
)

var (
	// ErrInvalidKeyLength is returned when the key doesn't meet minimum length requirements.
	ErrInvalidKeyLength = errors.New("backup key must be at least 32 bytes for AES-256")
	// ErrKeyNotFound is returned when the key environment variable is not set.
	ErrKeyNotFound = errors.New("backup key not found in environment variable " + EnvKeyName)
	// ErrEncryptionFailed is returned when an encryption operation fails.
	ErrEncryptionFailed = errors.New("encryption operation failed")
	// ErrDecryptionFailed is returned when a decryption operation fails.
	ErrDecryptionFailed = errors.New("decryption operation failed")
	// ErrInvalidCiphertext is returned when the ciphertext is malformed or too short.
	ErrInvalidCiphertext = errors.New("invalid ciphertext: too short or malformed")
)

// Cipher handles AES-256-GCM encryption and decryption of backup entries.
// The key is validated during construction for fast-fail scenarios.
type Cipher struct {
	key []byte
}

// NewFromEnv creates a Cipher with the key from the environment variable.
// Returns an error if the key is missing or too short.
func NewFromEnv() (*Cipher, error) {
	keyStr := os.Getenv(EnvKeyName)
	if keyStr == "" {
		return nil, ErrKeyNotFound
	}
	return NewWithKey([]byte(keyStr))
}

// NewWithKey creates a Cipher with a provided key. Primarily used for
// testing; production use goes through NewFromEnv.
func NewWithKey(key []byte) (*Cipher, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidKeyLength, len(key), MinKeyLength)
	}
	return &Cipher{key: key}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM and returns base64-encoded
// ciphertext with the nonce prepended.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	aesGCM, err := c.gcm()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %v", ErrEncryptionFailed, err)
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts base64-encoded ciphertext produced by Encrypt.
func (c *Cipher) Decrypt(encodedCiphertext string) (string, error) {
	if encodedCiphertext == "" {
		return "", nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encodedCiphertext)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrDecryptionFailed, err)
	}

	aesGCM, err := c.gcm()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

func (c *Cipher) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// ValidateKey checks that the environment key meets security requirements.
// Call early in startup for fast-fail validation.
func ValidateKey() error {
	keyStr := os.Getenv(EnvKeyName)
	if keyStr == "" {
		return ErrKeyNotFound
	}
	if len(keyStr) < MinKeyLength {
		return fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidKeyLength, len(keyStr), MinKeyLength)
	}
	return nil
}
