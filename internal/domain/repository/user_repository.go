// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"aiproxy/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Create when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository is the sole owner of user identity data.
// Implementations must make Create's existence check and insert a single step.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by exact email match.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create stores a new user, failing with ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// UpdateLastLogin records a successful login and returns the updated user.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) (*entity.User, error)

	// Count returns the number of stored users.
	Count(ctx context.Context) int

	// MarkSeeded returns true exactly once for the repository's lifetime.
	MarkSeeded() bool
}
