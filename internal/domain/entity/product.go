package entity

import "github.com/shopspring/decimal"

// Money columns are numeric(19,2).
const PriceScale = 2

var (
	// MaxPrice is the exclusive upper bound of a product price.
	MaxPrice = decimal.New(1, 12)

	// MaxOrderTotal is the exclusive upper bound of an order total.
	MaxOrderTotal = decimal.New(1, 17)
)

// Product is an item offered by a supplier.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	SupplierID    int64
}
