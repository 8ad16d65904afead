package entity

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID int64
	Roles  Roles
}

// IsAdmin reports whether the principal carries the ADMIN role.
// A nil principal is anonymous.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Roles.Contains(RoleAdmin)
}

// HasAnyRole reports whether the principal carries at least one of the roles.
func (p *Principal) HasAnyRole(roles ...Role) bool {
	return p != nil && p.Roles.ContainsAny(roles...)
}
