package postgres

import (
	"context"

	"inventory/internal/domain/entity"
	"inventory/internal/domain/repository"
	"inventory/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (repo *roleRepository) FindByName(ctx context.Context, name string) (entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).Where("name = ?", name).First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrRoleNotFound
		}

		return "", errors.Wrap(err, "failed to find role by name")
	}

	return entity.Role(roleM.Name), nil
}

// EnsureExists inserts missing roles and leaves existing ones untouched.
func (repo *roleRepository) EnsureExists(ctx context.Context, roles ...entity.Role) error {
	if len(roles) == 0 {
		return nil
	}

	roleMs := make([]model.RoleModel, 0, len(roles))
	for _, role := range roles {
		roleMs = append(roleMs, model.RoleModel{Name: role.String()})
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&roleMs).Error; err != nil {
		return translateWriteError(err, "Role already exists", "failed to seed roles")
	}

	return nil
}
