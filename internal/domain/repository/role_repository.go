package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/entity"
)

// ErrRoleNotFound is returned when a role name is not stored.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository gives access to the stored role set.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (entity.Role, error)

	// EnsureExists inserts the roles that are not stored yet.
	EnsureExists(ctx context.Context, roles ...entity.Role) error
}
