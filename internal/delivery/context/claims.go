package context

import (
	"aiproxy/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyClaims is the key for storing the authenticated token claims in echo.Context.
const KeyClaims ContextKey = "claims"

// SetClaims stores the validated token claims on the request.
func SetClaims(c echo.Context, claims *service.Claims) {
	c.Set(string(KeyClaims), claims)
}

// ClaimsFromContext returns the claims set by the bearer middleware, if any.
func ClaimsFromContext(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(string(KeyClaims)).(*service.Claims)

	return claims, ok && claims != nil
}
