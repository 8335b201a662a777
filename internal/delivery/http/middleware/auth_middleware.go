package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "aiproxy/internal/delivery/context"
	"aiproxy/internal/delivery/http/response"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer token and stores its claims on the context.
// The store is not consulted; a token stays valid until it expires.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, domainerrors.ErrMissingToken)
		}

		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || strings.TrimSpace(tokenString) == "" {
			return unauthorized(c, domainerrors.ErrInvalidToken)
		}

		claims, err := m.tokenSvc.Validate(strings.TrimSpace(tokenString))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Bearer token rejected", slog.Any("error", err))

			return unauthorized(c, domainerrors.ErrInvalidToken)
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}

func unauthorized(c echo.Context, appErr *domainerrors.BaseError) error {
	return response.Unauthorized(c, appErr.ErrorCode(), appErr.Message())
}
