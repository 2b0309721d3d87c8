// Package password turns plaintext passwords into storable digests and
// verifies plaintexts against stored digests.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"

	"blogpost/internal/models"
)

const (
	iterations = 310_000
	keyLength  = 32
)

// Hasher derives digests with PBKDF2-SHA256 under a deployment-wide salt.
// Equal plaintexts produce equal digests, so the identity store can join
// email with an exact digest match during authentication.
type Hasher struct {
	salt []byte
}

// NewHasher creates a Hasher with the given salt from configuration.
func NewHasher(salt string) *Hasher {
	return &Hasher{salt: []byte(salt)}
}

// Hash derives a hex-encoded digest from plaintext. Empty or non-UTF-8
// input is rejected.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" || !utf8.ValidString(plaintext) {
		return "", models.NewValidationError("password must be non-empty text")
	}
	key := pbkdf2.Key([]byte(plaintext), h.salt, iterations, keyLength, sha256.New)
	return hex.EncodeToString(key), nil
}

// Verify recomputes the digest for plaintext and compares it against the
// stored digest in constant time.
func (h *Hasher) Verify(plaintext, digest string) bool {
	computed, err := h.Hash(plaintext)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
