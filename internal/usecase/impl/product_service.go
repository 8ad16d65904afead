package impl

import (
	"context"
	"log/slog"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const entityProduct = "product"

type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	metrics     service.MetricsRecorder
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Metrics     service.MetricsRecorder
	Logger      *slog.Logger
}

func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct fails with a not-found error when the supplier does not exist.
func (srv *productService) CreateProduct(ctx context.Context, req *usecase.ProductRequest) (*usecase.ProductResponse, error) {
	product := fromProductRequest(req)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := ensureSupplierExists(ctx, repoFactory.NewSupplierRepository(), req.SupplierID); err != nil {
			return err
		}

		return repoFactory.NewProductRepository().Create(ctx, product)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.metrics.RecordEntityOperation(entityProduct, "create")
	srv.log(ctx).Info("Product created", slog.Int64("productID", product.ID), slog.Int64("supplierID", product.SupplierID))

	return toProductResponse(product), nil
}

func (srv *productService) UpdateProduct(ctx context.Context, id int64, req *usecase.ProductRequest) (*usecase.ProductResponse, error) {
	var updated *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return productLookupError(err, id)
		}

		if err := ensureSupplierExists(ctx, repoFactory.NewSupplierRepository(), req.SupplierID); err != nil {
			return err
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Price = req.Price
		product.StockQuantity = req.StockQuantity
		product.SupplierID = req.SupplierID

		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.metrics.RecordEntityOperation(entityProduct, "update")

	return toProductResponse(updated), nil
}

func (srv *productService) GetProductByID(ctx context.Context, id int64) (*usecase.ProductResponse, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err, id)
	}

	return toProductResponse(product), nil
}

func (srv *productService) GetAllProducts(ctx context.Context) ([]*usecase.ProductResponse, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return toProductResponses(products), nil
}

// DeleteProduct detaches the product from every order before removing it.
// Totals of those orders keep their stored value until the order is next updated.
func (srv *productService) DeleteProduct(ctx context.Context, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		if _, err := productRepo.FindByID(ctx, id); err != nil {
			return productLookupError(err, id)
		}

		if err := repoFactory.NewOrderRepository().RemoveProductLinks(ctx, []int64{id}); err != nil {
			return err
		}

		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.metrics.RecordEntityOperation(entityProduct, "delete")

	return nil
}

func ensureSupplierExists(ctx context.Context, supplierRepo repository.SupplierRepository, id int64) error {
	if _, err := supplierRepo.FindByID(ctx, id); err != nil {
		return supplierLookupError(err, id)
	}

	return nil
}

func productLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.ErrProductNotFound.WithMessagef("Product not found with id: %d", id)
	}

	return errors.Wrap(err, "failed to find product")
}
