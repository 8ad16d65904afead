// Package model holds the GORM persistence models. They are kept apart from the
// domain entities and converted by mapper functions in the repositories.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           int64      `gorm:"primaryKey"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PhoneNumber  *string    `gorm:"type:varchar(15);uniqueIndex"`
	PasswordHash string     `gorm:"column:password;type:varchar(255);not null"`
	FullName     string     `gorm:"type:varchar(100)"`
	DateOfBirth  *time.Time `gorm:"type:date"`
	Address      string     `gorm:"type:varchar(255)"`
	IsActive     bool       `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	SupplierProfile *SupplierModel `gorm:"foreignKey:UserID"`
	Orders          []OrderModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// RoleModel mirrors the 'roles' table.
type RoleModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(20);uniqueIndex;not null"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// UserRoleModel mirrors the 'user_roles' join table.
type UserRoleModel struct {
	UserID int64 `gorm:"primaryKey"`
	RoleID int64 `gorm:"primaryKey"`

	User *UserModel `gorm:"foreignKey:UserID"`
	Role *RoleModel `gorm:"foreignKey:RoleID"`
}

// TableName explicitly sets the table name for GORM.
func (UserRoleModel) TableName() string {
	return "user_roles"
}
