package auth

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// TokenLifetime is how long an issued token remains valid.
const TokenLifetime = 7 * 24 * time.Hour

// ErrInvalidToken is returned for every verification failure. Callers learn
// only that the token is unusable, never whether it was malformed, tampered
// with or expired.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated principal embedded in a token. It is
// rebuilt from the token payload on verification without a store lookup,
// so it may be stale relative to the credential store.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

type tokenClaims struct {
	Identity
	Exp int64 `json:"exp"`
}

// Tokens issues and verifies compact self-contained bearer tokens in the
// form "<header>.<payload>.<signature>", each segment unpadded URL-safe
// base64 and the signature an HMAC over the first two segments joined by a
// dot. A Tokens value is immutable after construction and safe for
// concurrent use; the server keeps no per-token state.
type Tokens struct {
	signer   *Signer
	lifetime time.Duration
	now      func() time.Time
}

// NewTokens builds a token service signing with secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{signer: NewSigner(secret), lifetime: TokenLifetime, now: time.Now}
}

// Issue mints a signed token carrying identity, expiring TokenLifetime from
// now.
func (t *Tokens) Issue(identity Identity) (string, error) {
	header, err := json.Marshal(tokenHeader{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(tokenClaims{
		Identity: identity,
		Exp:      t.now().Add(t.lifetime).Unix(),
	})
	if err != nil {
		return "", err
	}
	unsigned := Encode(header) + "." + Encode(payload)
	return unsigned + "." + t.signer.Sign(unsigned), nil
}

// Verify checks token and returns the identity it carries. The signature is
// recomputed over the encoded segments exactly as received, so re-encoding
// differences cannot break previously issued tokens. Every failure mode
// collapses to ErrInvalidToken.
func (t *Tokens) Verify(token string) (Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Identity{}, ErrInvalidToken
	}
	if !t.signer.Verify(parts[0]+"."+parts[1], parts[2]) {
		return Identity{}, ErrInvalidToken
	}
	raw, err := Decode(parts[1])
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	var claims tokenClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Identity{}, ErrInvalidToken
	}
	if claims.Exp == 0 || !t.now().Before(time.Unix(claims.Exp, 0)) {
		return Identity{}, ErrInvalidToken
	}
	if claims.ID == "" || claims.Name == "" || claims.Email == "" || claims.Role == "" {
		return Identity{}, ErrInvalidToken
	}
	return claims.Identity, nil
}
