package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize       = 16
	hashIterations = 100000
	hashKeySize    = sha256.Size
)

// HashPassword derives a storable credential hash from password using a
// fresh random salt. Both return values are Encode-formatted for
// persistence. An error means the secure randomness source failed; the
// caller must abort whatever credential operation is in flight.
func HashPassword(password string) (hash string, salt string, err error) {
	raw := make([]byte, saltSize)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	return HashPasswordWithSalt(password, raw), Encode(raw), nil
}

// HashPasswordWithSalt derives the hash for password under a caller-provided
// salt: PBKDF2-HMAC-SHA256 with a fixed iteration count. Deterministic, so
// equal inputs always produce equal hashes.
func HashPasswordWithSalt(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeySize, sha256.New)
	return Encode(key)
}

// VerifyPassword recomputes the hash for password under the stored salt and
// compares it with expected. A stored salt that fails to decode counts as a
// failed verification, not an error.
func VerifyPassword(password, salt, expected string) bool {
	raw, err := Decode(salt)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(HashPasswordWithSalt(password, raw)), []byte(expected))
}
