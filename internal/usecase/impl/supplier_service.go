package impl

import (
	"context"
	"log/slog"

	deliverycontext "inventory/internal/delivery/context"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const entitySupplier = "supplier"

type supplierService struct {
	txManager    repository.TransactionManager
	supplierRepo repository.SupplierRepository
	metrics      service.MetricsRecorder
	logger       *slog.Logger
}

// SupplierServiceParams holds dependencies for SupplierService, injected by Fx.
type SupplierServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	SupplierRepo repository.SupplierRepository
	Metrics      service.MetricsRecorder
	Logger       *slog.Logger
}

func NewSupplierService(params SupplierServiceParams) usecase.SupplierUsecase {
	return &supplierService{
		txManager:    params.TxManager,
		supplierRepo: params.SupplierRepo,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

func (srv *supplierService) GetAllSuppliers(ctx context.Context) ([]*usecase.SupplierResponse, error) {
	suppliers, err := srv.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list suppliers")
	}

	return toSupplierResponses(suppliers), nil
}

func (srv *supplierService) GetSupplierByID(ctx context.Context, id int64) (*usecase.SupplierResponse, error) {
	supplier, err := srv.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, supplierLookupError(err, id)
	}

	return toSupplierResponse(supplier), nil
}

// DeleteSupplier removes the supplier's products with their order links, the profile
// and, when the profile belongs to a user, that user's orders and account.
func (srv *supplierService) DeleteSupplier(ctx context.Context, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		supplier, err := repoFactory.NewSupplierRepository().FindByID(ctx, id)
		if err != nil {
			return supplierLookupError(err, id)
		}

		if err := deleteSupplierProfile(ctx, repoFactory, supplier); err != nil {
			return err
		}

		if supplier.UserID == nil {
			return nil
		}

		if err := repoFactory.NewOrderRepository().DeleteByUserID(ctx, *supplier.UserID); err != nil {
			return err
		}

		return repoFactory.NewUserRepository().Delete(ctx, *supplier.UserID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete supplier")
	}

	srv.metrics.RecordEntityOperation(entitySupplier, "delete")
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Deleted supplier", slog.Int64("supplierID", id))

	return nil
}

func supplierLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrSupplierNotFound) {
		return domainerrors.ErrSupplierNotFound.WithMessagef("Supplier not found with id: %d", id)
	}

	return errors.Wrap(err, "failed to find supplier")
}
