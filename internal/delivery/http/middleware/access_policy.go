package middleware

import (
	"net/http"
	"strings"

	"inventory/internal/domain/entity"
)

// Access is the requirement a rule puts on the caller.
type Access int

const (
	// AccessAuthenticated requires any valid identity.
	AccessAuthenticated Access = iota
	// AccessPublic lets the request through without a token.
	AccessPublic
	// AccessRoles requires at least one of the rule's roles.
	AccessRoles
)

// AccessRule binds a method and path pattern to an access requirement.
// An empty Method matches every method. A Pattern ending in "/**" matches
// the prefix itself and everything below it.
type AccessRule struct {
	Method  string
	Pattern string
	Access  Access
	Roles   entity.Roles
}

// Matches reports whether the rule applies to the request.
func (r AccessRule) Matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}

	if prefix, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	return path == r.Pattern
}

// AccessPolicy is an ordered rule table; the first matching rule decides.
type AccessPolicy []AccessRule

// Match returns the first rule matching the request. Unmatched requests
// only need an authenticated identity.
func (p AccessPolicy) Match(method, path string) AccessRule {
	for _, rule := range p {
		if rule.Matches(method, path) {
			return rule
		}
	}

	return AccessRule{Access: AccessAuthenticated}
}

// DefaultAccessPolicy returns the rule table of the HTTP API.
func DefaultAccessPolicy() AccessPolicy {
	admin := entity.Roles{entity.RoleAdmin}

	return AccessPolicy{
		{Method: http.MethodPost, Pattern: "/api/users/register", Access: AccessPublic},
		{Method: http.MethodPost, Pattern: "/api/auth/login", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/health", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/metrics", Access: AccessPublic},

		{Pattern: "/api/products/**", Access: AccessRoles, Roles: entity.Roles{entity.RoleSupplier, entity.RoleAdmin}},

		{Pattern: "/api/users/delete/**", Access: AccessRoles, Roles: admin},
		{Pattern: "/api/users/update/**", Access: AccessRoles, Roles: admin},
		{Pattern: "/api/users/all", Access: AccessRoles, Roles: admin},
		{Pattern: "/api/users/username/**", Access: AccessRoles, Roles: admin},
		{Pattern: "/api/users/email/**", Access: AccessRoles, Roles: admin},
		{Pattern: "/api/users/activate/**", Access: AccessRoles, Roles: admin},
		{Pattern: "/api/users/deactivate/**", Access: AccessRoles, Roles: admin},
	}
}
