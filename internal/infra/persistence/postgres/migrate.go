package postgres

import (
	"context"

	"inventory/internal/domain/entity"
	"inventory/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persistence model.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

// SeedRoles inserts the fixed role set when absent.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	return NewRoleRepository(db).EnsureExists(ctx, entity.AllRoles...)
}
