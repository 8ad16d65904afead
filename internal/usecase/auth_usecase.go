package usecase

import "context"

// LoginRequest identifies the account by username, email or phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse returns the signed access token.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// AuthUsecase verifies credentials and issues tokens.
type AuthUsecase interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}
