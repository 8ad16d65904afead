package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a purchase placed by a user for a set of products.
type Order struct {
	ID          int64
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	UserID      int64
	Products    []*Product
}

// RecalculateTotal sets TotalAmount to the sum of the current product prices.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, product := range o.Products {
		total = total.Add(product.Price)
	}
	o.TotalAmount = total
}

// TotalExceedsLimit reports whether TotalAmount no longer fits the money column.
func (o *Order) TotalExceedsLimit() bool {
	return o.TotalAmount.GreaterThanOrEqual(MaxOrderTotal)
}

// ProductIDs returns the ids of the ordered products in order.
func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Products))
	for _, product := range o.Products {
		ids = append(ids, product.ID)
	}

	return ids
}
