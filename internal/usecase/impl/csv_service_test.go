package impl

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVService_ProductRoundTrip(t *testing.T) {
	f := newServiceFixtures(t)
	ctx := context.Background()

	_, supplierID := f.createSupplier(t, "sam")

	input := fmt.Sprintf(`ID,Name,Description,Price,Stock Quantity,Supplier ID
99,Widget,Small,2.50,4,%d
,Gadget,,10,1,%d
,Orphan,,1.00,1,404
,Broken,,not-a-price,1,%d
`, supplierID, supplierID, supplierID)

	imported, err := f.csv.ImportProducts(ctx, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, "Widget", imported[0].Name)
	assert.NotEqual(t, int64(99), imported[0].ID)
	assert.Equal(t, "Gadget", imported[1].Name)

	var out bytes.Buffer
	require.NoError(t, f.csv.ExportProducts(ctx, &out))

	want := fmt.Sprintf(`ID,Name,Description,Price,Stock Quantity,Supplier ID
%d,Widget,Small,2.50,4,%d
%d,Gadget,,10.00,1,%d
`, imported[0].ID, supplierID, imported[1].ID, supplierID)
	assert.Equal(t, want, out.String())
}

func TestCSVService_EmptyInput(t *testing.T) {
	f := newServiceFixtures(t)
	ctx := context.Background()

	_, err := f.csv.ImportProducts(ctx, strings.NewReader(""))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCSV))

	_, err = f.csv.ImportOrders(ctx, strings.NewReader(""))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCSV))
}

func TestCSVService_ImportOrders(t *testing.T) {
	f := newServiceFixtures(t)
	ctx := context.Background()

	_, supplierID := f.createSupplier(t, "sam")
	p1 := f.createProduct(t, supplierID, "P1", "10.00")
	p2 := f.createProduct(t, supplierID, "P2", "5.00")
	customer := f.register(t, nil, newUserRequest("carol", entity.RoleCustomer))

	input := fmt.Sprintf(`Order ID,Order Date,Total Amount,User ID,Product IDs
7,2024-01-02 03:04:05,999.99,%[1]d,"%[2]d,%[3]d,404"
8,,0,%[1]d,%[2]d
9,2024-01-02 03:04:05,1,404,%[2]d
10,yesterday,1,%[1]d,%[2]d
`, customer.ID, p1.ID, p2.ID)

	imported, err := f.csv.ImportOrders(ctx, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, imported, 2)

	first := imported[0]
	assert.Equal(t, "2024-01-02 03:04:05", first.OrderDate)
	assert.Equal(t, "15.00", first.TotalAmount.StringFixed(2))
	assert.ElementsMatch(t, []int64{p1.ID, p2.ID}, first.ProductIDs)
	assert.Equal(t, customer.ID, first.UserID)

	second := imported[1]
	assert.Equal(t, fixedNow.Format(usecase.OrderDateLayout), second.OrderDate)
	assert.Equal(t, "10.00", second.TotalAmount.StringFixed(2))

	all, err := f.orders.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCSVService_ExportOrders(t *testing.T) {
	f := newServiceFixtures(t)
	ctx := context.Background()

	_, supplierID := f.createSupplier(t, "sam")
	p1 := f.createProduct(t, supplierID, "P1", "10.00")
	customer := f.register(t, nil, newUserRequest("carol", entity.RoleCustomer))

	order, err := f.orders.CreateOrder(ctx, &usecase.OrderRequest{UserID: customer.ID, ProductIDs: []int64{p1.ID}})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, f.csv.ExportOrders(ctx, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Order ID,Order Date,Total Amount,User ID,Product IDs", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], fmt.Sprintf("%d,", order.ID)))
	assert.True(t, strings.HasSuffix(lines[1], fmt.Sprintf(",10.00,%d,%d", customer.ID, p1.ID)))
}
