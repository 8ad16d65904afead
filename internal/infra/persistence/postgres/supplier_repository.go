package postgres

import (
	"context"

	"inventory/internal/domain/entity"
	"inventory/internal/domain/repository"
	"inventory/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const supplierConflictMessage = "Supplier name already exists"

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func (repo *supplierRepository) FindByID(ctx context.Context, id int64) (*entity.SupplierProfile, error) {
	return repo.findOne(ctx, "failed to find supplier by id", "id = ?", id)
}

func (repo *supplierRepository) FindByUserID(ctx context.Context, userID int64) (*entity.SupplierProfile, error) {
	return repo.findOne(ctx, "failed to find supplier by user id", "user_id = ?", userID)
}

func (repo *supplierRepository) FindAll(ctx context.Context) ([]*entity.SupplierProfile, error) {
	var supplierMs []*model.SupplierModel
	if err := repo.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Select("id", "supplier_id").Order("id") }).
		Order("id").
		Find(&supplierMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list suppliers")
	}

	suppliers := make([]*entity.SupplierProfile, 0, len(supplierMs))
	for _, supplierM := range supplierMs {
		suppliers = append(suppliers, toSupplierDomain(supplierM))
	}

	return suppliers, nil
}

func (repo *supplierRepository) Create(ctx context.Context, supplier *entity.SupplierProfile) error {
	supplierM := fromSupplierDomain(supplier)

	if err := repo.db.WithContext(ctx).Omit("Products").Create(supplierM).Error; err != nil {
		return translateWriteError(err, supplierConflictMessage, "failed to create supplier")
	}

	supplier.ID = supplierM.ID

	return nil
}

func (repo *supplierRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.SupplierModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, supplierConflictMessage, "failed to delete supplier")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSupplierNotFound
	}

	return nil
}

func (repo *supplierRepository) findOne(ctx context.Context, op string, query string, args ...any) (*entity.SupplierProfile, error) {
	var supplierM model.SupplierModel
	err := repo.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Select("id", "supplier_id").Order("id") }).
		Where(query, args...).
		First(&supplierM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSupplierNotFound
		}

		return nil, errors.Wrap(err, op)
	}

	return toSupplierDomain(&supplierM), nil
}

// --- Mapper Functions ---

func toSupplierDomain(data *model.SupplierModel) *entity.SupplierProfile {
	if data == nil {
		return nil
	}

	productIDs := make([]int64, 0, len(data.Products))
	for _, productM := range data.Products {
		productIDs = append(productIDs, productM.ID)
	}

	return &entity.SupplierProfile{
		ID:            data.ID,
		Name:          data.Name,
		ContactNumber: data.ContactNumber,
		Address:       data.Address,
		UserID:        data.UserID,
		ProductIDs:    productIDs,
	}
}

func fromSupplierDomain(data *entity.SupplierProfile) *model.SupplierModel {
	if data == nil {
		return nil
	}

	return &model.SupplierModel{
		ID:            data.ID,
		Name:          data.Name,
		ContactNumber: data.ContactNumber,
		Address:       data.Address,
		UserID:        data.UserID,
	}
}
