package service

import (
	"time"

	"aiproxy/internal/domain/entity"

	"github.com/google/uuid"
)

// Claims are the identity assertions carried by a bearer token.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedToken is a signed bearer token and the moment it stops being valid.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues and validates stateless bearer tokens.
// Validation is a signature and expiry check only; it never consults the user store.
type TokenService interface {
	// Issue signs a token for the given user.
	Issue(user *entity.User) (*IssuedToken, error)

	// Validate verifies the token and returns its claims.
	Validate(token string) (*Claims, error)

	// TTL returns the validity window of issued tokens.
	TTL() time.Duration
}
