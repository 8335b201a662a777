package impl

import (
	"context"
	"testing"

	"aiproxy/config"
	"aiproxy/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func seedConfig() *config.SeedConfig {
	return &config.SeedConfig{
		Enabled:   true,
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Password:  "ChangeMe123",
	}
}

func TestSeeder_SeedsOnce(t *testing.T) {
	stack := newAuthStack(t)
	ctx := context.Background()
	seeder := NewSeeder(seedConfig(), stack.service, stack.repo, newDiscardLogger())

	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, seeder.Seed(ctx))
	assert.Equal(t, 1, stack.repo.Count(ctx))

	out, err := stack.service.Login(ctx, &usecase.LoginInput{Email: "test@example.com", Password: "ChangeMe123"})
	require.NoError(t, err)
	assert.Equal(t, "Test", out.User.FirstName)
}

func TestSeeder_SecondSeederOnSameStoreIsNoop(t *testing.T) {
	stack := newAuthStack(t)
	ctx := context.Background()

	require.NoError(t, NewSeeder(seedConfig(), stack.service, stack.repo, nil).Seed(ctx))
	require.NoError(t, NewSeeder(seedConfig(), stack.service, stack.repo, nil).Seed(ctx))
	assert.Equal(t, 1, stack.repo.Count(ctx))
}

func TestSeeder_ToleratesExistingUser(t *testing.T) {
	stack := newAuthStack(t)
	ctx := context.Background()

	cfg := seedConfig()
	_, err := stack.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		FirstName: "Already",
		LastName:  "Here",
		Email:     cfg.Email,
		Password:  "another1",
	})
	require.NoError(t, err)

	require.NoError(t, NewSeeder(cfg, stack.service, stack.repo, nil).Seed(ctx))
	assert.Equal(t, 1, stack.repo.Count(ctx))
}

func TestSeeder_Disabled(t *testing.T) {
	stack := newAuthStack(t)
	ctx := context.Background()

	cfg := seedConfig()
	cfg.Enabled = false
	require.NoError(t, NewSeeder(cfg, stack.service, stack.repo, nil).Seed(ctx))
	require.NoError(t, NewSeeder(nil, stack.service, stack.repo, nil).Seed(ctx))
	assert.Equal(t, 0, stack.repo.Count(ctx))
	assert.True(t, stack.repo.MarkSeeded(), "a disabled seeder leaves the flag alone")
}

func TestSeeder_InvalidSeedUserFailsStartup(t *testing.T) {
	stack := newAuthStack(t)

	cfg := seedConfig()
	cfg.Email = "not-an-email"
	err := NewSeeder(cfg, stack.service, stack.repo, nil).Seed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed user")
}

func TestRegisterSeeder_RunsBeforeLaterStartHooks(t *testing.T) {
	stack := newAuthStack(t)
	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{Seed: seedConfig()}

	RegisterSeeder(SeederParams{
		Lifecycle: lc,
		Config:    cfg,
		Users:     stack.service,
		UserRepo:  stack.repo,
		Logger:    newDiscardLogger(),
	})

	countAtServerStart := -1
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			countAtServerStart = stack.repo.Count(ctx)

			return nil
		},
	})

	lc.RequireStart()
	defer lc.RequireStop()

	assert.Equal(t, 1, countAtServerStart)
}
