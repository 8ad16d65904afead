package handler

import (
	"inventory/internal/delivery/http/response"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves /api/orders. Dates and totals are always set by the server.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	req := new(usecase.OrderRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, output)
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req := new(usecase.OrderRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	output, err := h.uc.UpdateOrder(c.Request().Context(), id, req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetOrderByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	output, err := h.uc.GetAllOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Order deleted successfully")
}
