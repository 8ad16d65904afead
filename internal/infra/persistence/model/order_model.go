package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. UserID references users.id.
type OrderModel struct {
	ID          int64           `gorm:"primaryKey"`
	OrderDate   time.Time       `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	UserID      int64           `gorm:"index;not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderProductModel mirrors the 'order_products' join table.
type OrderProductModel struct {
	OrderID   int64 `gorm:"primaryKey"`
	ProductID int64 `gorm:"primaryKey;index"`

	Order   *OrderModel   `gorm:"foreignKey:OrderID"`
	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderProductModel) TableName() string {
	return "order_products"
}

// All lists every model in dependency order for schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&RoleModel{},
		&UserRoleModel{},
		&SupplierModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderProductModel{},
	}
}
