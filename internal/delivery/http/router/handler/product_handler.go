package handler

import (
	"inventory/internal/delivery/http/response"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type ProductHandler struct {
	uc usecase.ProductUsecase
}

func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	req := new(usecase.ProductRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, output)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req := new(usecase.ProductRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.UpdateProduct(c.Request().Context(), id, req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetProductByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	output, err := h.uc.GetAllProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Product deleted successfully")
}
