package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/entity"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Product, error)

	// FindByIDs returns the products that exist, in the order of ids. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error)

	FindAll(ctx context.Context) ([]*entity.Product, error)

	FindBySupplierID(ctx context.Context, supplierID int64) ([]*entity.Product, error)

	Create(ctx context.Context, product *entity.Product) error

	Update(ctx context.Context, product *entity.Product) error

	// Delete removes the product row only; order links must be removed first.
	Delete(ctx context.Context, id int64) error

	DeleteBySupplierID(ctx context.Context, supplierID int64) error
}
