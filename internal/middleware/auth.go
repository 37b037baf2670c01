package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trades-market/trades_market/internal/auth"
)

const identityLocal = "identity"

// Authenticated returns a middleware that verifies bearer tokens and makes
// the caller's identity available to downstream handlers. Tokens are
// self-contained, so no store lookup happens here.
func Authenticated(tokens *auth.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(authz[len("Bearer "):])
		identity, err := tokens.Verify(token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		c.Locals(identityLocal, identity)
		return c.Next()
	}
}

// IdentityFrom returns the verified caller identity stored by Authenticated.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityLocal).(auth.Identity)
	return identity, ok
}

// RequireRole rejects authenticated callers whose role differs from the
// given one.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		if identity.Role != role {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
