package usecase

import "context"

type SupplierResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	ContactNumber string  `json:"contactNumber"`
	Address       string  `json:"address"`
	UserID        *int64  `json:"userId,omitempty"`
	ProductIDs    []int64 `json:"productIds"`
}

type SupplierUsecase interface {
	GetAllSuppliers(ctx context.Context) ([]*SupplierResponse, error)
	GetSupplierByID(ctx context.Context, id int64) (*SupplierResponse, error)
	// DeleteSupplier removes the profile, its products and the owning user account.
	DeleteSupplier(ctx context.Context, id int64) error
}
