package model

// SupplierModel mirrors the 'suppliers' table. UserID references users.id.
type SupplierModel struct {
	ID            int64          `gorm:"primaryKey"`
	Name          string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	ContactNumber string         `gorm:"type:varchar(20)"`
	Address       string         `gorm:"type:varchar(255)"`
	UserID        *int64         `gorm:"uniqueIndex"`
	Products      []ProductModel `gorm:"foreignKey:SupplierID"`
}

// TableName explicitly sets the table name for GORM.
func (SupplierModel) TableName() string {
	return "suppliers"
}
