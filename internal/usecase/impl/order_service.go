package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const entityOrder = "order"

type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	metrics   service.MetricsRecorder
	now       func() time.Time
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Metrics   service.MetricsRecorder
	Logger    *slog.Logger
}

func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		metrics:   params.Metrics,
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder stamps the current time and sums the current product prices.
// Client-supplied date and total are ignored.
func (srv *orderService) CreateOrder(ctx context.Context, req *usecase.OrderRequest) (*usecase.OrderResponse, error) {
	order := &entity.Order{UserID: req.UserID}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.prepareOrder(ctx, repoFactory, order, req.ProductIDs); err != nil {
			return err
		}

		return repoFactory.NewOrderRepository().Create(ctx, order)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.metrics.RecordEntityOperation(entityOrder, "create")
	srv.log(ctx).Info("Order created", slog.Int64("orderID", order.ID), slog.String("total", order.TotalAmount.StringFixed(2)))

	return toOrderResponse(order), nil
}

func (srv *orderService) UpdateOrder(ctx context.Context, id int64, req *usecase.OrderRequest) (*usecase.OrderResponse, error) {
	var updated *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			return orderLookupError(err, id)
		}

		order.UserID = req.UserID
		if err := srv.prepareOrder(ctx, repoFactory, order, req.ProductIDs); err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		updated = order

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	srv.metrics.RecordEntityOperation(entityOrder, "update")

	return toOrderResponse(updated), nil
}

// prepareOrder checks the user, loads every product and recomputes date and total.
func (srv *orderService) prepareOrder(ctx context.Context, repoFactory repository.RepositoryFactory, order *entity.Order, productIDs []int64) error {
	if _, err := repoFactory.NewUserRepository().FindByID(ctx, order.UserID); err != nil {
		return userLookupError(err, "id", order.UserID)
	}

	ids := uniqueIDs(productIDs)
	products, err := repoFactory.NewProductRepository().FindByIDs(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "failed to load order products")
	}
	if missing, ok := firstMissingID(ids, products); ok {
		return domainerrors.ErrProductNotFound.WithMessagef("Product not found with id: %d", missing)
	}

	order.Products = products
	order.OrderDate = srv.now()
	order.RecalculateTotal()
	if order.TotalExceedsLimit() {
		return domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   "productIds",
			Message: "order total must be less than " + entity.MaxOrderTotal.String(),
		})
	}

	return nil
}

func (srv *orderService) GetOrderByID(ctx context.Context, id int64) (*usecase.OrderResponse, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, orderLookupError(err, id)
	}

	return toOrderResponse(order), nil
}

func (srv *orderService) GetAllOrders(ctx context.Context) ([]*usecase.OrderResponse, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderResponses(orders), nil
}

// DeleteOrder removes the order and its product links. Products are untouched.
func (srv *orderService) DeleteOrder(ctx context.Context, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewOrderRepository().Delete(ctx, id); err != nil {
			return orderLookupError(err, id)
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	srv.metrics.RecordEntityOperation(entityOrder, "delete")

	return nil
}

func orderLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		return domainerrors.ErrOrderNotFound.WithMessagef("Order not found with id: %d", id)
	}

	return errors.Wrap(err, "failed to find order")
}

// uniqueIDs keeps the first occurrence of every id.
func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}

func firstMissingID(ids []int64, products []*entity.Product) (int64, bool) {
	found := make(map[int64]struct{}, len(products))
	for _, product := range products {
		found[product.ID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return id, true
		}
	}

	return 0, false
}
