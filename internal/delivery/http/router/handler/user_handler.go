package handler

import (
	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/delivery/http/response"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterUser handles the user registration request.
func (h *UserHandler) RegisterUser(c echo.Context) error {
	req := &usecase.UserRequest{Registering: true}
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.RegisterUser(c.Request().Context(), deliverycontext.GetPrincipal(c), req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, output)
}

// UpdateUser replaces the editable fields and roles of a user.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req := new(usecase.UserRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.UpdateUser(c.Request().Context(), deliverycontext.GetPrincipal(c), id, req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	output, err := h.uc.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	output, err := h.uc.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	output, err := h.uc.GetAllUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *UserHandler) ActivateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.ActivateUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *UserHandler) DeactivateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.DeactivateUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// DeleteUser removes the user together with their orders and supplier profile.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "User deleted successfully")
}
