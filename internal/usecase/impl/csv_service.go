package impl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/usecase"
	"inventory/internal/validation"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// isoLocalDateTime is accepted on import next to usecase.OrderDateLayout.
const isoLocalDateTime = "2006-01-02T15:04:05"

type productRow struct {
	ID            string `csv:"ID"`
	Name          string `csv:"Name"`
	Description   string `csv:"Description"`
	Price         string `csv:"Price"`
	StockQuantity string `csv:"Stock Quantity"`
	SupplierID    string `csv:"Supplier ID"`
}

type orderRow struct {
	OrderID     string `csv:"Order ID"`
	OrderDate   string `csv:"Order Date"`
	TotalAmount string `csv:"Total Amount"`
	UserID      string `csv:"User ID"`
	ProductIDs  string `csv:"Product IDs"`
}

type csvService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	validator   *validation.Validator
	metrics     service.MetricsRecorder
	now         func() time.Time
	logger      *slog.Logger
}

// CSVServiceParams holds dependencies for CSVService, injected by Fx.
type CSVServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Validator   *validation.Validator
	Metrics     service.MetricsRecorder
	Logger      *slog.Logger
}

func NewCSVService(params CSVServiceParams) usecase.CSVUsecase {
	return &csvService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		validator:   params.Validator,
		metrics:     params.Metrics,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *csvService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *csvService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list products for export")
	}

	rows := make([]*productRow, 0, len(products))
	for _, product := range products {
		rows = append(rows, &productRow{
			ID:            strconv.FormatInt(product.ID, 10),
			Name:          product.Name,
			Description:   product.Description,
			Price:         product.Price.StringFixed(2),
			StockQuantity: strconv.Itoa(product.StockQuantity),
			SupplierID:    strconv.FormatInt(product.SupplierID, 10),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, "failed to write products csv")
	}

	srv.log(ctx).Info("Exported products to CSV", slog.Int("count", len(rows)))

	return nil
}

func (srv *csvService) ImportProducts(ctx context.Context, r io.Reader) ([]*usecase.ProductResponse, error) {
	var rows []*productRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, domainerrors.ErrInvalidCSV.WrapMessage(err.Error())
	}

	imported := make([]*usecase.ProductResponse, 0, len(rows))
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		supplierRepo := repoFactory.NewSupplierRepository()
		productRepo := repoFactory.NewProductRepository()

		for i, row := range rows {
			if err := ctx.Err(); err != nil {
				return errors.WithStack(err)
			}

			req, err := srv.parseProductRow(row)
			if err != nil {
				srv.log(ctx).Warn("Skipping malformed product row", slog.Int("row", i+1), slog.Any("error", err))

				continue
			}

			_, err = supplierRepo.FindByID(ctx, req.SupplierID)
			if errors.Is(err, repository.ErrSupplierNotFound) {
				srv.log(ctx).Warn("Supplier not found, skipping product",
					slog.Int64("supplierID", req.SupplierID),
					slog.String("name", req.Name),
				)

				continue
			}
			if err != nil {
				return errors.Wrap(err, "failed to find supplier")
			}

			product := fromProductRequest(req)
			if err := productRepo.Create(ctx, product); err != nil {
				return err
			}
			imported = append(imported, toProductResponse(product))
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to import products")
	}

	srv.metrics.RecordEntityOperation(entityProduct, "import")
	srv.log(ctx).Info("Imported products from CSV", slog.Int("rows", len(rows)), slog.Int("imported", len(imported)))

	return imported, nil
}

func (srv *csvService) parseProductRow(row *productRow) (*usecase.ProductRequest, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
	if err != nil {
		return nil, errors.Wrap(err, "price")
	}

	stock, err := strconv.Atoi(strings.TrimSpace(row.StockQuantity))
	if err != nil {
		return nil, errors.Wrap(err, "stock quantity")
	}

	supplierID, err := strconv.ParseInt(strings.TrimSpace(row.SupplierID), 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "supplier id")
	}

	req := &usecase.ProductRequest{
		Name:          row.Name,
		Description:   row.Description,
		Price:         price,
		StockQuantity: stock,
		SupplierID:    supplierID,
	}
	if err := srv.validator.Validate(req); err != nil {
		return nil, err
	}

	return req, nil
}

func (srv *csvService) ExportOrders(ctx context.Context, w io.Writer) error {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list orders for export")
	}

	rows := make([]*orderRow, 0, len(orders))
	for _, order := range orders {
		orderDate := order.OrderDate
		if orderDate.IsZero() {
			orderDate = srv.now()
		}

		rows = append(rows, &orderRow{
			OrderID:     strconv.FormatInt(order.ID, 10),
			OrderDate:   orderDate.Format(usecase.OrderDateLayout),
			TotalAmount: order.TotalAmount.StringFixed(2),
			UserID:      strconv.FormatInt(order.UserID, 10),
			ProductIDs:  joinIDs(order.ProductIDs()),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, "failed to write orders csv")
	}

	srv.log(ctx).Info("Exported orders to CSV", slog.Int("count", len(rows)))

	return nil
}

func (srv *csvService) ImportOrders(ctx context.Context, r io.Reader) ([]*usecase.OrderResponse, error) {
	var rows []*orderRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, domainerrors.ErrInvalidCSV.WrapMessage(err.Error())
	}

	imported := make([]*usecase.OrderResponse, 0, len(rows))
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		productRepo := repoFactory.NewProductRepository()
		orderRepo := repoFactory.NewOrderRepository()

		for i, row := range rows {
			if err := ctx.Err(); err != nil {
				return errors.WithStack(err)
			}

			order, productIDs, err := srv.parseOrderRow(row)
			if err != nil {
				srv.log(ctx).Warn("Skipping malformed order row", slog.Int("row", i+1), slog.Any("error", err))

				continue
			}

			_, err = userRepo.FindByID(ctx, order.UserID)
			if errors.Is(err, repository.ErrUserNotFound) {
				srv.log(ctx).Warn("User not found, skipping order", slog.Int64("userID", order.UserID))

				continue
			}
			if err != nil {
				return errors.Wrap(err, "failed to find user")
			}

			products, err := productRepo.FindByIDs(ctx, productIDs)
			if err != nil {
				return errors.Wrap(err, "failed to load order products")
			}
			order.Products = products
			order.RecalculateTotal()
			if order.TotalExceedsLimit() {
				srv.log(ctx).Warn("Order total too large, skipping order", slog.Int("row", i+1))

				continue
			}

			if err := orderRepo.Create(ctx, order); err != nil {
				return err
			}
			imported = append(imported, toOrderResponse(order))
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to import orders")
	}

	srv.metrics.RecordEntityOperation(entityOrder, "import")
	srv.log(ctx).Info("Imported orders from CSV", slog.Int("rows", len(rows)), slog.Int("imported", len(imported)))

	return imported, nil
}

// parseOrderRow ignores the order id and total columns; ids are generated and totals recomputed.
func (srv *csvService) parseOrderRow(row *orderRow) (*entity.Order, []int64, error) {
	userID, err := strconv.ParseInt(strings.TrimSpace(row.UserID), 10, 64)
	if err != nil {
		return nil, nil, errors.Wrap(err, "user id")
	}

	orderDate, err := srv.parseOrderDate(row.OrderDate)
	if err != nil {
		return nil, nil, err
	}

	var productIDs []int64
	for _, field := range strings.Split(row.ProductIDs, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, nil, errors.Wrap(err, "product ids")
		}
		productIDs = append(productIDs, id)
	}

	return &entity.Order{UserID: userID, OrderDate: orderDate}, uniqueIDs(productIDs), nil
}

func (srv *csvService) parseOrderDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return srv.now(), nil
	}

	for _, layout := range []string{usecase.OrderDateLayout, isoLocalDateTime, time.RFC3339} {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, errors.Errorf("order date %q has an unknown format", value)
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}

	return strings.Join(parts, ",")
}
