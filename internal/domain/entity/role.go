// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role is a named permission group assigned to users.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSupplier Role = "SUPPLIER"
	RoleCustomer Role = "CUSTOMER"
)

// AllRoles lists every role seeded at startup.
var AllRoles = Roles{RoleAdmin, RoleSupplier, RoleCustomer}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleCustomer:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ContainsAny reports whether at least one of the given roles is present.
func (rs Roles) ContainsAny(roles ...Role) bool {
	for _, role := range roles {
		if rs.Contains(role) {
			return true
		}
	}

	return false
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() && !result.Contains(role) {
			result = append(result, role)
		}
	}

	return result
}
