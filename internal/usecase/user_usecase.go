// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"aiproxy/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
// Password is the plaintext; it is hashed before anything stores it.
type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=50" label:"First name"`
	LastName  string `json:"lastName" validate:"required,max=50" label:"Last name"`
	Email     string `json:"email" validate:"required,max=100,email" label:"Email"`
	Password  string `json:"password" validate:"required,min=6,max=72" label:"Password"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's public information.
type RegisterOutput struct {
	User *entity.PublicUser `json:"user"`
}

// LoginOutput returns the bearer token issued after a successful login.
type LoginOutput struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      *entity.PublicUser `json:"user"`
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Me(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)
}
