package model

import "github.com/shopspring/decimal"

// ProductModel mirrors the 'products' table. SupplierID references suppliers.id.
type ProductModel struct {
	ID            int64           `gorm:"primaryKey"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"type:varchar(500)"`
	Price         decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	StockQuantity int             `gorm:"not null"`
	SupplierID    int64           `gorm:"index;not null"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
