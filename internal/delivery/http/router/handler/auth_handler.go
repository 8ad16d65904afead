package handler

import (
	"inventory/internal/delivery/http/response"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	req := new(usecase.LoginRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}
