package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trades-market/trades_market/internal/auth"
)

// ErrInvalidCredentials is returned for any failed login, whether the email
// is unknown or the password is wrong, so callers cannot probe which
// accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service manages account registration and credential checks.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates an account with a salted, iterated password hash. A
// randomness failure while hashing aborts the registration.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if name == "" {
		return User{}, errors.New("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return User{}, errors.New("a valid email is required")
	}
	if input.Password == "" {
		return User{}, errors.New("password is required")
	}
	if input.Role != RoleProvider && input.Role != RoleRequester {
		return User{}, fmt.Errorf("role must be %q or %q", RoleProvider, RoleRequester)
	}

	hash, salt, err := auth.HashPassword(input.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Role:         input.Role,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies an email/password pair against the stored
// credential record.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if !auth.VerifyPassword(password, user.Salt, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
