package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/entity"
)

// ErrSupplierNotFound is returned when a supplier profile does not exist.
var ErrSupplierNotFound = errors.New("supplier not found")

type SupplierRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.SupplierProfile, error)

	FindByUserID(ctx context.Context, userID int64) (*entity.SupplierProfile, error)

	FindAll(ctx context.Context) ([]*entity.SupplierProfile, error)

	Create(ctx context.Context, supplier *entity.SupplierProfile) error

	// Delete removes the profile row only; products must be removed first.
	Delete(ctx context.Context, id int64) error
}
