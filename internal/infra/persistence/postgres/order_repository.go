package postgres

import (
	"context"

	"inventory/internal/domain/entity"
	"inventory/internal/domain/repository"
	"inventory/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const orderConflictMessage = "Order already exists"

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).First(&orderM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	products, err := repo.loadProducts(ctx, orderM.ID)
	if err != nil {
		return nil, err
	}

	return toOrderDomain(&orderM, products[orderM.ID]), nil
}

func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	ids := make([]int64, 0, len(orderMs))
	for _, orderM := range orderMs {
		ids = append(ids, orderM.ID)
	}

	products, err := repo.loadProducts(ctx, ids...)
	if err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM, products[orderM.ID]))
	}

	return orders, nil
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return translateWriteError(err, orderConflictMessage, "failed to create order")
	}

	order.ID = orderM.ID

	return repo.linkProducts(ctx, order.ID, order.ProductIDs())
}

func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{ID: order.ID}).
		Select("OrderDate", "TotalAmount", "UserID").
		Updates(orderM)
	if result.Error != nil {
		return translateWriteError(result.Error, orderConflictMessage, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	if err := repo.unlinkOrders(ctx, "order_id = ?", order.ID); err != nil {
		return err
	}

	return repo.linkProducts(ctx, order.ID, order.ProductIDs())
}

func (repo *orderRepository) Delete(ctx context.Context, id int64) error {
	if err := repo.unlinkOrders(ctx, "order_id = ?", id); err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, orderConflictMessage, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (repo *orderRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	db := repo.db.WithContext(ctx)

	placed := db.Model(&model.OrderModel{}).Select("id").Where("user_id = ?", userID)
	if err := repo.unlinkOrders(ctx, "order_id IN (?)", placed); err != nil {
		return err
	}

	if err := db.Where("user_id = ?", userID).Delete(&model.OrderModel{}).Error; err != nil {
		return translateWriteError(err, orderConflictMessage, "failed to delete user orders")
	}

	return nil
}

func (repo *orderRepository) RemoveProductLinks(ctx context.Context, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}

	return repo.unlinkOrders(ctx, "product_id IN ?", productIDs)
}

func (repo *orderRepository) unlinkOrders(ctx context.Context, query string, args ...any) error {
	if err := repo.db.WithContext(ctx).Where(query, args...).Delete(&model.OrderProductModel{}).Error; err != nil {
		return translateWriteError(err, orderConflictMessage, "failed to remove order product links")
	}

	return nil
}

func (repo *orderRepository) linkProducts(ctx context.Context, orderID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}

	links := make([]model.OrderProductModel, 0, len(productIDs))
	for _, productID := range productIDs {
		links = append(links, model.OrderProductModel{OrderID: orderID, ProductID: productID})
	}

	if err := repo.db.WithContext(ctx).Create(&links).Error; err != nil {
		return translateWriteError(err, "Product listed twice in order", "failed to link order products")
	}

	return nil
}

// loadProducts returns the products of each order id, ordered by product id.
func (repo *orderRepository) loadProducts(ctx context.Context, orderIDs ...int64) (map[int64][]*model.ProductModel, error) {
	result := make(map[int64][]*model.ProductModel, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	var links []model.OrderProductModel
	if err := repo.db.WithContext(ctx).
		Preload("Product").
		Where("order_id IN ?", orderIDs).
		Order("order_id, product_id").
		Find(&links).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load order products")
	}

	for _, link := range links {
		if link.Product != nil {
			result[link.OrderID] = append(result[link.OrderID], link.Product)
		}
	}

	return result, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel, products []*model.ProductModel) *entity.Order {
	if data == nil {
		return nil
	}

	order := &entity.Order{
		ID:          data.ID,
		OrderDate:   data.OrderDate,
		TotalAmount: data.TotalAmount,
		UserID:      data.UserID,
		Products:    make([]*entity.Product, 0, len(products)),
	}
	for _, productM := range products {
		order.Products = append(order.Products, toProductDomain(productM))
	}

	return order
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:          data.ID,
		OrderDate:   data.OrderDate,
		TotalAmount: data.TotalAmount,
		UserID:      data.UserID,
	}
}
