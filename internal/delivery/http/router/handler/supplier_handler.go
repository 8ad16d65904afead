package handler

import (
	"inventory/internal/delivery/http/response"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type SupplierHandler struct {
	uc usecase.SupplierUsecase
}

func NewSupplierHandler(uc usecase.SupplierUsecase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

func (h *SupplierHandler) GetAllSuppliers(c echo.Context) error {
	output, err := h.uc.GetAllSuppliers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *SupplierHandler) GetSupplierByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetSupplierByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// DeleteSupplier removes the supplier, its products and the owning user account.
func (h *SupplierHandler) DeleteSupplier(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteSupplier(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Supplier deleted successfully")
}
