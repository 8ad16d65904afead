package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/entity"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	// FindByID loads the order together with its products.
	FindByID(ctx context.Context, id int64) (*entity.Order, error)

	FindAll(ctx context.Context) ([]*entity.Order, error)

	// Create persists the order and its product links.
	Create(ctx context.Context, order *entity.Order) error

	// Update writes the order's columns and replaces its product links.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes the order and its product links. Products are untouched.
	Delete(ctx context.Context, id int64) error

	// DeleteByUserID removes every order placed by the user, with their product links.
	DeleteByUserID(ctx context.Context, userID int64) error

	// RemoveProductLinks detaches the given products from every order.
	RemoveProductLinks(ctx context.Context, productIDs []int64) error
}
