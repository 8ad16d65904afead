package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates bearer tokens and enforces the access policy.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	policy   AccessPolicy
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, policy: DefaultAccessPolicy()}
}

// WithPolicy replaces the rule table.
func (m *AuthMiddleware) WithPolicy(policy AccessPolicy) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: m.tokenSvc, policy: policy}
}

// Authorize runs for every request. Failures are returned as typed errors
// and rendered by the HTTP error handler.
func (m *AuthMiddleware) Authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		rule := m.policy.Match(req.Method, req.URL.Path)

		tokenString, ok := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), bearerPrefix)
		ok = ok && strings.TrimSpace(tokenString) != ""

		if rule.Access == AccessPublic {
			// A valid token still identifies the caller; a bad one is ignored.
			if ok {
				if principal, err := m.principalFromToken(tokenString); err == nil {
					m.attach(c, principal)
				}
			}

			return next(c)
		}

		if !ok {
			return domainerrors.ErrAuthenticationRequired
		}

		principal, err := m.principalFromToken(tokenString)
		if err != nil {
			return domainerrors.ErrAuthenticationRequired
		}

		m.attach(c, principal)

		if rule.Access == AccessRoles && !principal.HasAnyRole(rule.Roles...) {
			return domainerrors.ErrAccessDenied
		}

		return next(c)
	}
}

func (m *AuthMiddleware) attach(c echo.Context, principal *entity.Principal) {
	deliverycontext.SetPrincipal(c, principal)
	deliverycontext.AddLogAttrs(c, slog.Int64("user_id", principal.UserID))
}

func (m *AuthMiddleware) principalFromToken(tokenString string) (*entity.Principal, error) {
	claims, err := m.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := service.UserIDFromSubject(claims.Subject)
	if err != nil {
		return nil, err
	}

	return &entity.Principal{UserID: userID, Roles: entity.RolesFromStrings(claims.Roles)}, nil
}
