package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderDateLayout is the wire format of order dates.
const OrderDateLayout = "2006-01-02 15:04:05"

// OrderRequest lists the ordered products. OrderDate and TotalAmount are accepted
// but ignored: the server stamps the date and computes the total.
type OrderRequest struct {
	ProductIDs  []int64          `json:"productIds" validate:"required,min=1"`
	UserID      int64            `json:"userId" validate:"required"`
	OrderDate   string           `json:"orderDate,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
}

type OrderResponse struct {
	ID          int64           `json:"id"`
	OrderDate   string          `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ProductIDs  []int64         `json:"productIds"`
	UserID      int64           `json:"userId"`
}

type OrderUsecase interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResponse, error)
	UpdateOrder(ctx context.Context, id int64, req *OrderRequest) (*OrderResponse, error)
	GetOrderByID(ctx context.Context, id int64) (*OrderResponse, error)
	GetAllOrders(ctx context.Context) ([]*OrderResponse, error)
	DeleteOrder(ctx context.Context, id int64) error
}
