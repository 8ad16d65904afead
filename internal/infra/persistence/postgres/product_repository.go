package postgres

import (
	"context"

	"inventory/internal/domain/entity"
	"inventory/internal/domain/repository"
	"inventory/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const productConflictMessage = "Product already exists"

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).First(&productM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	var productMs []*model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	byID := make(map[int64]*model.ProductModel, len(productMs))
	for _, productM := range productMs {
		byID[productM.ID] = productM
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, id := range ids {
		if productM, ok := byID[id]; ok {
			products = append(products, toProductDomain(productM))
			delete(byID, id)
		}
	}

	return products, nil
}

func (repo *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	return repo.findMany(ctx, "failed to list products")
}

func (repo *productRepository) FindBySupplierID(ctx context.Context, supplierID int64) ([]*entity.Product, error) {
	return repo.findMany(ctx, "failed to list supplier products", "supplier_id = ?", supplierID)
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return translateWriteError(err, productConflictMessage, "failed to create product")
	}

	product.ID = productM.ID

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{ID: product.ID}).
		Select("Name", "Description", "Price", "StockQuantity", "SupplierID").
		Updates(productM)
	if result.Error != nil {
		return translateWriteError(result.Error, productConflictMessage, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, productConflictMessage, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) DeleteBySupplierID(ctx context.Context, supplierID int64) error {
	if err := repo.db.WithContext(ctx).Where("supplier_id = ?", supplierID).Delete(&model.ProductModel{}).Error; err != nil {
		return translateWriteError(err, productConflictMessage, "failed to delete supplier products")
	}

	return nil
}

func (repo *productRepository) findMany(ctx context.Context, op string, conds ...any) ([]*entity.Product, error) {
	db := repo.db.WithContext(ctx).Order("id")
	if len(conds) > 0 {
		db = db.Where(conds[0], conds[1:]...)
	}

	var productMs []*model.ProductModel
	if err := db.Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, op)
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:            data.ID,
		Name:          data.Name,
		Description:   data.Description,
		Price:         data.Price,
		StockQuantity: data.StockQuantity,
		SupplierID:    data.SupplierID,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:            data.ID,
		Name:          data.Name,
		Description:   data.Description,
		Price:         data.Price,
		StockQuantity: data.StockQuantity,
		SupplierID:    data.SupplierID,
	}
}
