package impl

import (
	"context"
	"log/slog"

	"aiproxy/config"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/repository"
	"aiproxy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SeederParams holds dependencies for the startup seeder, injected by Fx.
type SeederParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Users     usecase.UserUsecase
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// Seeder creates the configured well-known user through the normal registration path.
type Seeder struct {
	cfg      *config.SeedConfig
	users    usecase.UserUsecase
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewSeeder builds a Seeder without registering any hook.
func NewSeeder(cfg *config.SeedConfig, users usecase.UserUsecase, userRepo repository.UserRepository, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}

	return &Seeder{cfg: cfg, users: users, userRepo: userRepo, logger: logger}
}

// RegisterSeeder runs Seed once when the application starts.
func RegisterSeeder(params SeederParams) *Seeder {
	seeder := NewSeeder(params.Config.Seed, params.Users, params.UserRepo, params.Logger)
	params.Lifecycle.Append(fx.Hook{
		OnStart: seeder.Seed,
	})

	return seeder
}

// Seed registers the seed user the first time it is called on a store.
// Later calls, and a store that already holds the email, are no-ops.
func (s *Seeder) Seed(ctx context.Context) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return nil
	}
	if !s.userRepo.MarkSeeded() {
		s.logger.Debug("Seed already applied")

		return nil
	}

	_, err := s.users.RegisterUser(ctx, &usecase.RegisterUserInput{
		FirstName: s.cfg.FirstName,
		LastName:  s.cfg.LastName,
		Email:     s.cfg.Email,
		Password:  s.cfg.Password,
	})
	switch {
	case err == nil:
		s.logger.Info("Seed user created", slog.String("email", s.cfg.Email))
	case errors.Is(err, domainerrors.ErrUserAlreadyExists):
		s.logger.Info("Seed user already present", slog.String("email", s.cfg.Email))
	default:
		return errors.Wrap(err, "failed to seed user")
	}

	return nil
}
