package auth

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Signer computes keyed MACs over token segments. The secret is fixed at
// construction and never mutated, so a single Signer may be shared across
// request handlers without locking.
type Signer struct {
	secret []byte
}

// NewSigner builds a Signer keyed with the process-wide secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the encoded HMAC-SHA256 digest of message. Equal messages
// under the same secret always produce equal signatures.
func (s *Signer) Sign(message string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(message))
	return Encode(mac.Sum(nil))
}

// Verify reports whether signature is the exact signature of message under
// the signer's key. The comparison is constant-time.
func (s *Signer) Verify(message, signature string) bool {
	return hmac.Equal([]byte(s.Sign(message)), []byte(signature))
}
