package impl

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"aiproxy/config"
	"aiproxy/internal/domain/repository"
	"aiproxy/internal/domain/service"
	"aiproxy/internal/infra/auth"
	"aiproxy/internal/infra/persistence/memory"
	"aiproxy/internal/usecase"
	"aiproxy/internal/validation"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSigningKey = "usecase_test_signing_key_that_is_long_enough"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{PasswordScheme: auth.SchemeBcrypt, BcryptCost: bcrypt.MinCost},
		Seed: &config.SeedConfig{},
		AI:   &config.AIConfig{},
	}
	cfg.Env.Env = "test"
	cfg.JWT.Key = testSigningKey
	cfg.JWT.TTL = 2 * time.Hour

	return cfg
}

// steppingClock advances one second on every read so consecutive
// timestamps are strictly increasing.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func newSteppingClock() *steppingClock {
	return &steppingClock{now: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)

	return c.now
}

// authStack wires the user usecase to the real in-memory store, hasher and token service.
type authStack struct {
	service usecase.UserUsecase
	repo    repository.UserRepository
	tokens  service.TokenService
	hasher  service.PasswordHasher
	clock   *steppingClock
	cfg     *config.Config
}

func newAuthStack(t *testing.T) authStack {
	t.Helper()

	cfg := newTestConfig()
	clock := newSteppingClock()
	repo := memory.NewUserRepository()

	hasher, err := auth.NewPasswordHasher(cfg)
	require.NoError(t, err)
	tokens, err := auth.NewJWTService(cfg, clock.Now)
	require.NoError(t, err)

	svc, err := NewUserService(UserServiceParams{
		UserRepo:     repo,
		Hasher:       hasher,
		TokenService: tokens,
		Validator:    validation.New(),
		Clock:        clock.Now,
		Logger:       newDiscardLogger(),
	})
	require.NoError(t, err)

	return authStack{
		service: svc,
		repo:    repo,
		tokens:  tokens,
		hasher:  hasher,
		clock:   clock,
		cfg:     cfg,
	}
}
