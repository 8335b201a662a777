package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "aiproxy/internal/delivery/context"
	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/domain/service"
	mockSvc "aiproxy/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveAuthenticated(t *testing.T, m *AuthMiddleware, header string) (*httptest.ResponseRecorder, *service.Claims) {
	t.Helper()

	var seen *service.Claims
	next := func(c echo.Context) error {
		claims, ok := deliverycontext.ClaimsFromContext(c)
		require.True(t, ok)
		seen = claims

		return c.NoContent(http.StatusNoContent)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, m.Authenticate(next)(e.NewContext(req, rec)))

	return rec, seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := mockSvc.NewMockTokenService(t)
	claims := &service.Claims{UserID: uuid.New(), Email: "ada@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	tokens.EXPECT().Validate("good-token").Return(claims, nil)

	rec, seen := serveAuthenticated(t, NewAuthMiddleware(tokens, nil), "Bearer good-token")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, claims, seen)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		code   string
	}{
		{name: "missing header", header: "", code: "MISSING_TOKEN"},
		{name: "basic scheme", header: "Basic abc", code: "INVALID_TOKEN"},
		{name: "lowercase bearer", header: "bearer abc", code: "INVALID_TOKEN"},
		{name: "blank token", header: "Bearer   ", code: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := mockSvc.NewMockTokenService(t)

			rec, seen := serveAuthenticated(t, NewAuthMiddleware(tokens, nil), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, seen)
			assert.Contains(t, rec.Body.String(), tt.code)
		})
	}
}

func TestAuthMiddleware_ValidationFailure(t *testing.T) {
	tokens := mockSvc.NewMockTokenService(t)
	tokens.EXPECT().Validate("expired").Return(nil, domainerrors.ErrInvalidToken.WrapMessage("expired"))

	rec, seen := serveAuthenticated(t, NewAuthMiddleware(tokens, nil), "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token.")
}
