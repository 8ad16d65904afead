// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"inventory/internal/domain/entity"
	"inventory/internal/domain/repository"
	"inventory/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

const userConflictMessage = "Username, email or phone number already exists"

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return repo.findOne(ctx, repo.db, "failed to find user by id", "id = ?", id)
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, repo.db, "failed to find user by username", "username = ?", username)
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, repo.db, "failed to find user by email", "email = ?", email)
}

// FindByIdentifier always reads from the primary. When the identifier matches
// different users, a username match wins over email, and email over phone.
func (repo *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	query := repo.db.Clauses(dbresolver.Write).
		Where("username = ? OR email = ? OR phone_number = ?", identifier, identifier, identifier).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "CASE WHEN username = ? THEN 0 WHEN email = ? THEN 1 ELSE 2 END",
			Vars: []any{identifier, identifier},
		}})

	return repo.take(ctx, query, "failed to find user by identifier")
}

func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).
		Preload("SupplierProfile").
		Order("id").
		Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	ids := make([]int64, 0, len(userMs))
	for _, userM := range userMs {
		ids = append(ids, userM.ID)
	}

	roles, err := repo.loadRoles(ctx, ids...)
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM, roles[userM.ID]))
	}

	return users, nil
}

// Create inserts the user row, its role links and, when present, its supplier profile.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	db := repo.db.WithContext(ctx)

	if err := db.Omit("SupplierProfile", "Orders").Create(userM).Error; err != nil {
		return translateWriteError(err, userConflictMessage, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	if err := repo.replaceRoles(ctx, user.ID, user.Roles); err != nil {
		return err
	}

	if user.SupplierProfile != nil {
		userID := user.ID
		user.SupplierProfile.UserID = &userID
		if err := NewSupplierRepository(repo.db).Create(ctx, user.SupplierProfile); err != nil {
			return err
		}
	}

	return nil
}

// Update writes every column, including zero values, and replaces the role links.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	userM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{ID: user.ID}).
		Select("Username", "Email", "PhoneNumber", "PasswordHash", "FullName", "DateOfBirth", "Address", "IsActive", "UpdatedAt").
		Updates(userM)
	if result.Error != nil {
		return translateWriteError(result.Error, userConflictMessage, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = userM.UpdatedAt

	if err := repo.replaceRoles(ctx, user.ID, user.Roles); err != nil {
		return err
	}

	if user.SupplierProfile != nil && user.SupplierProfile.ID == 0 {
		userID := user.ID
		user.SupplierProfile.UserID = &userID
		if err := NewSupplierRepository(repo.db).Create(ctx, user.SupplierProfile); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes the role links and the user row.
func (repo *userRepository) Delete(ctx context.Context, id int64) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("user_id = ?", id).Delete(&model.UserRoleModel{}).Error; err != nil {
		return translateWriteError(err, userConflictMessage, "failed to delete user roles")
	}

	result := db.Delete(&model.UserModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, userConflictMessage, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) findOne(ctx context.Context, db *gorm.DB, op string, query string, args ...any) (*entity.User, error) {
	return repo.take(ctx, db.Where(query, args...).Order("id"), op)
}

// take loads the first row of an already filtered and ordered query.
func (repo *userRepository) take(ctx context.Context, query *gorm.DB, op string) (*entity.User, error) {
	var userM model.UserModel
	err := query.WithContext(ctx).
		Preload("SupplierProfile").
		Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, op)
	}

	roles, err := repo.loadRoles(ctx, userM.ID)
	if err != nil {
		return nil, err
	}

	return toUserDomain(&userM, roles[userM.ID]), nil
}

// loadRoles returns the role names of each user id.
func (repo *userRepository) loadRoles(ctx context.Context, userIDs ...int64) (map[int64]entity.Roles, error) {
	result := make(map[int64]entity.Roles, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		UserID int64
		Name   string
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.UserRoleModel{}).
		Select("user_roles.user_id, roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id IN ?", userIDs).
		Order("roles.id").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load user roles")
	}

	for _, row := range rows {
		result[row.UserID] = append(result[row.UserID], entity.Role(row.Name))
	}

	return result, nil
}

func (repo *userRepository) replaceRoles(ctx context.Context, userID int64, roles entity.Roles) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("user_id = ?", userID).Delete(&model.UserRoleModel{}).Error; err != nil {
		return translateWriteError(err, userConflictMessage, "failed to clear user roles")
	}
	if len(roles) == 0 {
		return nil
	}

	var roleMs []model.RoleModel
	if err := db.Where("name IN ?", roles.ToStrings()).Find(&roleMs).Error; err != nil {
		return errors.Wrap(err, "failed to resolve roles")
	}
	if len(roleMs) != len(roles) {
		return repository.ErrRoleNotFound
	}

	links := make([]model.UserRoleModel, 0, len(roleMs))
	for _, roleM := range roleMs {
		links = append(links, model.UserRoleModel{UserID: userID, RoleID: roleM.ID})
	}

	if err := db.Create(&links).Error; err != nil {
		return translateWriteError(err, userConflictMessage, "failed to link user roles")
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel, roles entity.Roles) *entity.User {
	if data == nil {
		return nil
	}

	user := &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		FullName:     data.FullName,
		DateOfBirth:  data.DateOfBirth,
		Address:      data.Address,
		IsActive:     data.IsActive,
		Roles:        roles,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.PhoneNumber != nil {
		user.PhoneNumber = *data.PhoneNumber
	}
	if data.SupplierProfile != nil {
		user.SupplierProfile = toSupplierDomain(data.SupplierProfile)
	}

	return user
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		FullName:     data.FullName,
		DateOfBirth:  data.DateOfBirth,
		Address:      data.Address,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.PhoneNumber != "" {
		phone := data.PhoneNumber
		userM.PhoneNumber = &phone
	}

	return userM
}
