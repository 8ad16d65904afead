// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user, with roles and supplier profile, by id.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByIdentifier matches the identifier against username, email and phone number in one lookup.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	FindAll(ctx context.Context) ([]*entity.User, error)

	// Create persists the user, its role links and its supplier profile when present.
	// Generated ids are written back to the entity.
	Create(ctx context.Context, user *entity.User) error

	// Update writes the user's columns and replaces its role links.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user row and its role links only.
	Delete(ctx context.Context, id int64) error
}
