package impl

import (
	"context"
	"testing"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_UnknownSupplier(t *testing.T) {
	f := newServiceFixtures(t)
	ctx := context.Background()

	req := &usecase.ProductRequest{Name: "Widget", Price: decimal.NewFromInt(3), SupplierID: 404}

	_, err := f.products.CreateProduct(ctx, req)
	require.True(t, errors.Is(err, domainerrors.ErrSupplierNotFound))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Supplier not found with id: 404", appErr.Message())

	_, supplierID := f.createSupplier(t, "sam")
	product := f.createProduct(t, supplierID, "Widget", "3.00")

	_, err = f.products.UpdateProduct(ctx, product.ID, req)
	assert.True(t, errors.Is(err, domainerrors.ErrSupplierNotFound))
}

func TestProductService_CRUD(t *testing.T) {
	f := newServiceFixtures(t)
	ctx := context.Background()

	_, supplierID := f.createSupplier(t, "sam")
	created := f.createProduct(t, supplierID, "Widget", "3.00")
	assert.NotZero(t, created.ID)
	assert.Equal(t, supplierID, created.SupplierID)

	updated, err := f.products.UpdateProduct(ctx, created.ID, &usecase.ProductRequest{
		Name:          "Widget XL",
		Description:   "Bigger",
		Price:         decimal.RequireFromString("4.25"),
		StockQuantity: 7,
		SupplierID:    supplierID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget XL", updated.Name)
	assert.Equal(t, "4.25", updated.Price.StringFixed(2))
	assert.Equal(t, 7, updated.StockQuantity)

	all, err := f.products.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Widget XL", all[0].Name)

	_, err = f.products.UpdateProduct(ctx, 404, &usecase.ProductRequest{Name: "x", Price: decimal.NewFromInt(1), SupplierID: supplierID})
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.EntityOperationsTotal.WithLabelValues(entityProduct, "update")), 0)
}

func TestProductService_DeleteProduct_UnlinksOrders(t *testing.T) {
	f := newServiceFixtures(t)
	ctx := context.Background()

	_, supplierID := f.createSupplier(t, "sam")
	p1 := f.createProduct(t, supplierID, "P1", "10.00")
	p2 := f.createProduct(t, supplierID, "P2", "5.00")
	customer := f.register(t, nil, newUserRequest("carol", entity.RoleCustomer))

	order, err := f.orders.CreateOrder(ctx, &usecase.OrderRequest{UserID: customer.ID, ProductIDs: []int64{p1.ID, p2.ID}})
	require.NoError(t, err)

	require.NoError(t, f.products.DeleteProduct(ctx, p2.ID))

	_, err = f.products.GetProductByID(ctx, p2.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	found, err := f.orders.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{p1.ID}, found.ProductIDs)

	err = f.products.DeleteProduct(ctx, p2.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}
