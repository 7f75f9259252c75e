// Package secret implements the two credential primitives the service
// needs: one-way hashing for user passwords and reversible encryption
// for stored account passwords. The contracts are intentionally
// different and must not be conflated: a user password is only ever
// verified, an account password has to come back out in plaintext for
// its owner.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/passkeep/passkeep-server/internal/apierrors"
)

const nonceSize = 12

// Codec hashes user passwords and encrypts account passwords.
type Codec struct {
	aead       cipher.AEAD
	bcryptCost int
}

// NewCodec creates a Codec from a hex-encoded 32-byte AES key and a
// bcrypt cost. A zero cost falls back to bcrypt.DefaultCost.
func NewCodec(hexKey string, bcryptCost int) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("secret key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcm: %w", err)
	}

	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Codec{aead: aead, bcryptCost: bcryptCost}, nil
}

// HashPassword returns a salted one-way hash of plain. There is no
// decrypt counterpart.
func (c *Codec) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), c.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash.
func (c *Codec) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Encrypt seals plain with AES-GCM under a fresh nonce and returns
// base64(nonce || ciphertext).
func (c *Codec) Encrypt(plain string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plain), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Malformed input and authentication failures
// both surface as the same generic error so callers cannot distinguish
// a wrong key from corrupt data.
func (c *Codec) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", apierrors.NewErrDecryptionFailed()
	}
	if len(sealed) < nonceSize {
		return "", apierrors.NewErrDecryptionFailed()
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plain, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", apierrors.NewErrDecryptionFailed()
	}

	return string(plain), nil
}
