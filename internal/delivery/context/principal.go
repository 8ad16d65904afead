package context

import (
	"inventory/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the key for storing the authenticated identity.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal stores the authenticated identity on echo.Context.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(string(KeyPrincipal), principal)
}

// GetPrincipal returns the identity attached by the authorization filter, or nil for anonymous callers.
func GetPrincipal(c echo.Context) *entity.Principal {
	if principal, ok := c.Get(string(KeyPrincipal)).(*entity.Principal); ok {
		return principal
	}

	return nil
}
