package identity

import (
	"time"

	"github.com/trades-market/trades_market/internal/auth"
)

// Roles a user can register under.
const (
	RoleProvider  = "provider"
	RoleRequester = "requester"
)

// User is a registered account. PasswordHash and Salt form the stored
// credential record; they never leave the server and are never embedded in
// tokens.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}

// Identity projects the user onto the principal embedded in tokens.
func (u User) Identity() auth.Identity {
	return auth.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}
