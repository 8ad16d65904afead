// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"inventory/internal/domain/entity"
)

// --- Request DTOs ---

// UserRequest carries the fields accepted on registration and update.
type UserRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=20"`
	Password    string   `json:"password" validate:"required_if=Registering true,omitempty,min=8,max=50"`
	Email       string   `json:"email" validate:"required,email"`
	FullName    string   `json:"fullName" validate:"max=100"`
	Roles       []string `json:"roles" validate:"required,min=1"`
	DateOfBirth string   `json:"dateOfBirth" validate:"omitempty,past_date"`
	PhoneNumber string   `json:"phoneNumber" validate:"omitempty,phone"`
	Address     string   `json:"address" validate:"max=255"`

	// Registering makes the password mandatory. It is set by the register handler, never decoded.
	Registering bool `json:"-"`
}

// --- Response DTOs ---

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FullName          string    `json:"fullName"`
	Roles             []string  `json:"roles"`
	DateOfBirth       string    `json:"dateOfBirth,omitempty"`
	PhoneNumber       string    `json:"phoneNumber,omitempty"`
	Address           string    `json:"address,omitempty"`
	IsActive          bool      `json:"isActive"`
	SupplierProfileID *int64    `json:"supplierProfileId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// MessageResponse is returned by operations without a resource body.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// RegisterUser creates an account. principal is nil for anonymous callers.
	RegisterUser(ctx context.Context, principal *entity.Principal, req *UserRequest) (*UserResponse, error)
	UpdateUser(ctx context.Context, principal *entity.Principal, id int64, req *UserRequest) (*UserResponse, error)
	GetUserByID(ctx context.Context, id int64) (*UserResponse, error)
	GetUserByUsername(ctx context.Context, username string) (*UserResponse, error)
	GetUserByEmail(ctx context.Context, email string) (*UserResponse, error)
	GetAllUsers(ctx context.Context) ([]*UserResponse, error)
	ActivateUser(ctx context.Context, id int64) (*UserResponse, error)
	DeactivateUser(ctx context.Context, id int64) (*UserResponse, error)
	// DeleteUser removes the user with their orders and supplier profile.
	DeleteUser(ctx context.Context, id int64) error
}
