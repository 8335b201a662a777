// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "aiproxy/internal/delivery/context"
	"aiproxy/internal/domain/entity"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/repository"
	"aiproxy/internal/domain/service"
	"aiproxy/internal/usecase"
	"aiproxy/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// timingDummyPassword feeds the hasher when the email is unknown, so both
// login failures cost one password check.
const timingDummyPassword = "timing-equalisation-only"

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validator    *validation.Validator
	now          service.Clock
	dummyHash    string
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Validator    *validation.Validator
	Clock        service.Clock
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) (usecase.UserUsecase, error) {
	dummyHash, err := params.Hasher.Hash(timingDummyPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare login timing digest")
	}

	now := params.Clock
	if now == nil {
		now = service.SystemClock()
	}
	v := params.Validator
	if v == nil {
		v = validation.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		validator:    v,
		now:          now,
		dummyHash:    dummyHash,
		logger:       logger,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser validates the input, rejects duplicate emails and stores the new user.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	if input == nil {
		input = &usecase.RegisterUserInput{}
	}
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if err := srv.validator.Validate(input); err != nil {
		srv.log(ctx).Warn("Registration input rejected", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.WithStack(err)
	}

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.log(ctx).Warn("Email already registered", slog.String("email", input.Email))

		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("user registration failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	now := srv.now()
	newUser := &entity.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		LastLogin:    now,
	}

	// The store re-checks the email under its write lock; a concurrent
	// registration that won the race surfaces here.
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("user registration failed")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser.Public()}, nil
}

// Login verifies the credentials, records the login and issues a bearer token.
// An unknown email and a wrong password produce the same error.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil {
		input = &usecase.LoginInput{}
	}
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to look up email")
		}
		srv.hasher.Check(input.Password, srv.dummyHash)
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	user, err = srv.userRepo.UpdateLastLogin(ctx, user.ID, srv.now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to record login")
	}

	issued, err := srv.tokenService.Issue(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      user.Public(),
	}, nil
}

// Me returns the public profile of the token subject.
func (srv *userService) Me(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("token subject not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user.Public(), nil
}
