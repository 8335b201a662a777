// Package memory contains the process-local implementation of the persistence layer.
// Contents live as long as the repository value and are lost on restart.
package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"aiproxy/internal/domain/entity"
	"aiproxy/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userRecord is the stored form of a user. Callers only ever see copies.
type userRecord struct {
	id           uuid.UUID
	firstName    string
	lastName     string
	email        string
	passwordHash string
	createdAt    time.Time
	lastLogin    time.Time
}

// userRepository implements repository.UserRepository behind a single RWMutex.
type userRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*userRecord
	byEmail map[string]uuid.UUID
	seeded  atomic.Bool
}

// NewUserRepository creates an empty store. The application builds exactly one
// and shares it with every handler.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]*userRecord),
		byEmail: make(map[string]uuid.UUID),
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	rec, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(rec), nil
}

// FindByEmail retrieves a single user by exact email match.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(repo.byID[id]), nil
}

// Create checks for a duplicate email and inserts under the same write lock.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if user.PasswordHash == "" {
		return errors.New("refusing to store a user without a password digest")
	}
	if user.LastLogin.Before(user.CreatedAt) {
		return errors.New("last login precedes creation time")
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.byEmail[user.Email]; taken {
		return repository.ErrEmailTaken
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if _, taken := repo.byID[user.ID]; taken {
		return errors.Errorf("user id %s already exists", user.ID)
	}

	rec := fromUserDomain(user)
	repo.byID[rec.id] = rec
	repo.byEmail[rec.email] = rec.id

	return nil
}

// UpdateLastLogin moves LastLogin forward to at. It never moves it backwards,
// so CreatedAt <= LastLogin keeps holding.
func (repo *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	rec, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if at.After(rec.lastLogin) {
		rec.lastLogin = at
	}

	return toUserDomain(rec), nil
}

// Count returns the number of stored users.
func (repo *userRepository) Count(_ context.Context) int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return len(repo.byID)
}

// MarkSeeded flips the seed flag and reports whether this call flipped it.
func (repo *userRepository) MarkSeeded() bool {
	return repo.seeded.CompareAndSwap(false, true)
}

func fromUserDomain(user *entity.User) *userRecord {
	return &userRecord{
		id:           user.ID,
		firstName:    user.FirstName,
		lastName:     user.LastName,
		email:        user.Email,
		passwordHash: user.PasswordHash,
		createdAt:    user.CreatedAt,
		lastLogin:    user.LastLogin,
	}
}

func toUserDomain(rec *userRecord) *entity.User {
	return &entity.User{
		ID:           rec.id,
		FirstName:    rec.firstName,
		LastName:     rec.lastName,
		Email:        rec.email,
		PasswordHash: rec.passwordHash,
		CreatedAt:    rec.createdAt,
		LastLogin:    rec.lastLogin,
	}
}
