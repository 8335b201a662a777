// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record of a registered account.
// It is created only through registration; LastLogin is its only mutable field.
type User struct {
	ID           uuid.UUID // Assigned at creation, immutable.
	FirstName    string    // Non-empty, at most 50 characters.
	LastName     string    // Non-empty, at most 50 characters.
	Email        string    // Unique across all users, compared exactly as stored.
	PasswordHash string    `json:"-"` // Digest produced by the PasswordHasher, never the plaintext.
	CreatedAt    time.Time // Set once at registration.
	LastLogin    time.Time // Set at registration and on every successful login.
}

// DisplayName is the "{first} {last}" form carried in token claims.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Public returns the view of the user that may leave the service.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// PublicUser is a User without its password digest.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}
