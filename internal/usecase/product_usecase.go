package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description" validate:"max=500"`
	Price         decimal.Decimal `json:"price" validate:"required,gt=0,money"`
	StockQuantity int             `json:"stockQuantity" validate:"min=0"`
	SupplierID    int64           `json:"supplierId" validate:"required"`
}

type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	SupplierID    int64           `json:"supplierId"`
}

// ProductUsecase manages products. Create and update require an existing supplier.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, req *ProductRequest) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, id int64, req *ProductRequest) (*ProductResponse, error)
	GetProductByID(ctx context.Context, id int64) (*ProductResponse, error)
	GetAllProducts(ctx context.Context) ([]*ProductResponse, error)
	DeleteProduct(ctx context.Context, id int64) error
}
