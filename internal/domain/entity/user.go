package entity

import "time"

// User is an account able to authenticate against the system.
type User struct {
	ID           int64
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	FullName     string
	DateOfBirth  *time.Time
	Address      string
	IsActive     bool
	Roles        Roles

	// SupplierProfile is set for users holding the SUPPLIER role.
	SupplierProfile *SupplierProfile

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	return u.Roles.Contains(role)
}

// EnsureSupplierProfile attaches a supplier profile built from the user's own
// details when the user is a supplier without one.
func (u *User) EnsureSupplierProfile() {
	if !u.HasRole(RoleSupplier) || u.SupplierProfile != nil {
		return
	}

	name := u.FullName
	if name == "" {
		name = u.Username
	}

	u.SupplierProfile = &SupplierProfile{
		Name:          name,
		ContactNumber: u.PhoneNumber,
		Address:       u.Address,
	}
}
