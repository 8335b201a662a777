package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"aiproxy/config"
	"aiproxy/internal/domain/entity"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/service"
	"aiproxy/internal/errors"
)

// DevPlaceholderKey is the signing key the legacy service fell back to.
// It is public knowledge and is refused outside local development.
const DevPlaceholderKey = "temporary-secret-key"

// DefaultTokenTTL is the validity window of issued tokens.
const DefaultTokenTTL = 2 * time.Hour

// tokenClaims is the wire form of service.Claims.
type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	key    []byte
	ttl    time.Duration
	now    service.Clock
	parser *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
// A missing key, or the placeholder key outside development, is a startup error.
func NewJWTService(cfg *config.Config, clock service.Clock) (service.TokenService, error) {
	if cfg == nil || cfg.JWT.Key == "" {
		return nil, domainerrors.NewConfigurationError("jwt.key", "a signing key must be provided")
	}
	if cfg.JWT.Key == DevPlaceholderKey && !cfg.IsDevelopment() {
		return nil, domainerrors.NewConfigurationError("jwt.key", "the development placeholder key is not allowed in "+cfg.Env.Env)
	}
	if clock == nil {
		clock = service.SystemClock()
	}

	ttl := cfg.JWT.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &jwtService{
		key: []byte(cfg.JWT.Key),
		ttl: ttl,
		now: clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(func() time.Time { return clock() }),
		),
	}, nil
}

// Issue signs the identity claims of user with an expiry of now + TTL.
func (s *jwtService) Issue(user *entity.User) (*service.IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := tokenClaims{
		Email: user.Email,
		Name:  user.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	return &service.IssuedToken{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// Validate checks the signature, algorithm and expiry of the token.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &tokenClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WithCause(err)
	}
	if !token.Valid {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token is not valid")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("subject is not a user id")
	}

	out := &service.Claims{
		UserID:    userID,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}

	return out, nil
}

// TTL returns the configured token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
