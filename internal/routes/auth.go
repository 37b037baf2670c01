package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trades-market/trades_market/internal/auth"
	"github.com/trades-market/trades_market/internal/identity"
	"github.com/trades-market/trades_market/internal/middleware"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RegisterAuthRoutes wires registration and login. Both issue a token so the
// client is signed in immediately.
func RegisterAuthRoutes(r fiber.Router, users *identity.Service, tokens *auth.Tokens, rateLimiter fiber.Handler, logger *slog.Logger) {
	group := r.Group("/auth")

	group.Post("/register", func(c *fiber.Ctx) error {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid request body")
		}
		user, err := users.Register(c.UserContext(), identity.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			if errors.Is(err, identity.ErrEmailTaken) {
				return fiber.NewError(http.StatusConflict, "email already registered")
			}
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		token, err := tokens.Issue(user.Identity())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "could not issue token")
		}
		if logger != nil {
			logger.Info("user registered",
				slog.String("user_id", user.ID),
				slog.String("role", user.Role),
			)
		}
		return c.Status(http.StatusCreated).JSON(authResponse{Token: token, User: toUserResponse(user)})
	})

	login := func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid request body")
		}
		user, err := users.Authenticate(c.UserContext(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
			}
			return fiber.NewError(http.StatusInternalServerError, "could not sign in")
		}
		token, err := tokens.Issue(user.Identity())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "could not issue token")
		}
		return c.JSON(authResponse{Token: token, User: toUserResponse(user)})
	}
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, login)
	} else {
		group.Post("/login", login)
	}
}

// RegisterAuthMeRoute exposes the verified caller's identity. Mount behind
// the Authenticated middleware.
func RegisterAuthMeRoute(r fiber.Router) {
	r.Get("/auth/me", func(c *fiber.Ctx) error {
		principal, ok := middleware.IdentityFrom(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		return c.JSON(userResponse{
			ID:    principal.ID,
			Name:  principal.Name,
			Email: principal.Email,
			Role:  principal.Role,
		})
	})
}
