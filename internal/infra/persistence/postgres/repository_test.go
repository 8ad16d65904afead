package postgres_test

import (
	"context"
	"testing"
	"time"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/infra/persistence/postgres"
	"inventory/internal/testutil"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, username string, roles ...entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PhoneNumber:  "+1555000" + username[:1] + "000",
		PasswordHash: "hash",
		FullName:     "Full " + username,
		Address:      "1 Main St",
		IsActive:     true,
		Roles:        roles,
	}
	user.EnsureSupplierProfile()

	require.NoError(t, postgres.NewUserRepository(db).Create(context.Background(), user))

	return user
}

func createProduct(t *testing.T, db *gorm.DB, supplierID int64, name, price string) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		SupplierID:    supplierID,
	}
	require.NoError(t, postgres.NewProductRepository(db).Create(context.Background(), product))

	return product
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	dob := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	user := &entity.User{
		Username:     "sam",
		Email:        "sam@example.com",
		PhoneNumber:  "+15550001111",
		PasswordHash: "hash",
		FullName:     "Sam Supplier",
		DateOfBirth:  &dob,
		IsActive:     true,
		Roles:        entity.Roles{entity.RoleSupplier},
	}
	user.EnsureSupplierProfile()
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)
	require.NotZero(t, user.SupplierProfile.ID)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam", found.Username)
	assert.Equal(t, entity.Roles{entity.RoleSupplier}, found.Roles)
	require.NotNil(t, found.SupplierProfile)
	assert.Equal(t, "Sam Supplier", found.SupplierProfile.Name)
	assert.Equal(t, "+15550001111", found.SupplierProfile.ContactNumber)
	require.NotNil(t, found.DateOfBirth)
	assert.Equal(t, dob.Format("2006-01-02"), found.DateOfBirth.Format("2006-01-02"))

	for _, identifier := range []string{"sam", "sam@example.com", "+15550001111"} {
		byIdentifier, err := repo.FindByIdentifier(ctx, identifier)
		require.NoError(t, err, identifier)
		assert.Equal(t, user.ID, byIdentifier.ID)
	}

	_, err = repo.FindByIdentifier(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_FindByIdentifierPrefersUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	byEmail := &entity.User{
		Username:     "bob",
		Email:        "shared@example.co",
		PhoneNumber:  "+15550002222",
		PasswordHash: "hash",
		IsActive:     true,
		Roles:        entity.Roles{entity.RoleCustomer},
	}
	require.NoError(t, repo.Create(ctx, byEmail))

	byUsername := &entity.User{
		Username:     "shared@example.co",
		Email:        "other@example.co",
		PhoneNumber:  "+15550003333",
		PasswordHash: "hash",
		IsActive:     true,
		Roles:        entity.Roles{entity.RoleCustomer},
	}
	require.NoError(t, repo.Create(ctx, byUsername))
	require.Less(t, byEmail.ID, byUsername.ID)

	found, err := repo.FindByIdentifier(ctx, "shared@example.co")
	require.NoError(t, err)
	assert.Equal(t, byUsername.ID, found.ID)

	byPhone := &entity.User{
		Username:     "carl",
		Email:        "carl@example.co",
		PhoneNumber:  "+15550004444",
		PasswordHash: "hash",
		IsActive:     true,
		Roles:        entity.Roles{entity.RoleCustomer},
	}
	require.NoError(t, repo.Create(ctx, byPhone))

	phoneAsEmail := &entity.User{
		Username:     "dana",
		Email:        "+15550004444",
		PhoneNumber:  "+15550005555",
		PasswordHash: "hash",
		IsActive:     true,
		Roles:        entity.Roles{entity.RoleCustomer},
	}
	require.NoError(t, repo.Create(ctx, phoneAsEmail))

	found, err = repo.FindByIdentifier(ctx, "+15550004444")
	require.NoError(t, err)
	assert.Equal(t, phoneAsEmail.ID, found.ID)
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)

	createUser(t, db, "alice", entity.RoleCustomer)

	duplicate := &entity.User{
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "hash",
		IsActive:     true,
		Roles:        entity.Roles{entity.RoleCustomer},
	}
	err := repo.Create(context.Background(), duplicate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}

func TestUserRepository_UpdateReplacesRoles(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "bob", entity.RoleCustomer)
	user.Roles = entity.Roles{entity.RoleAdmin, entity.RoleCustomer}
	user.IsActive = false
	user.FullName = "Robert"
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.Roles{entity.RoleAdmin, entity.RoleCustomer}, found.Roles)
	assert.False(t, found.IsActive)
	assert.Equal(t, "Robert", found.FullName)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.ElementsMatch(t, entity.Roles{entity.RoleAdmin, entity.RoleCustomer}, all[0].Roles)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	db := testutil.NewTestDB(t)

	err := postgres.NewUserRepository(db).Update(context.Background(), &entity.User{
		ID:       999,
		Username: "ghost",
		Email:    "ghost@example.com",
	})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestRoleRepository_SeedIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, postgres.SeedRoles(ctx, db))

	repo := postgres.NewRoleRepository(db)
	for _, role := range entity.AllRoles {
		found, err := repo.FindByName(ctx, role.String())
		require.NoError(t, err)
		assert.Equal(t, role, found)
	}

	_, err := repo.FindByName(ctx, "AUDITOR")
	assert.ErrorIs(t, err, repository.ErrRoleNotFound)
}

func TestOrderRepository_LifeCycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := postgres.NewOrderRepository(db)

	supplier := createUser(t, db, "sue", entity.RoleSupplier)
	customer := createUser(t, db, "carl", entity.RoleCustomer)
	p1 := createProduct(t, db, supplier.SupplierProfile.ID, "P1", "10.00")
	p2 := createProduct(t, db, supplier.SupplierProfile.ID, "P2", "5.00")

	order := &entity.Order{
		OrderDate: time.Now(),
		UserID:    customer.ID,
		Products:  []*entity.Product{p1, p2},
	}
	order.RecalculateTotal()
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{p1.ID, p2.ID}, found.ProductIDs())
	assert.True(t, decimal.RequireFromString("15.00").Equal(found.TotalAmount))

	found.Products = []*entity.Product{p1}
	found.RecalculateTotal()
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{p1.ID}, updated.ProductIDs())
	assert.True(t, decimal.RequireFromString("10.00").Equal(updated.TotalAmount))

	require.NoError(t, repo.RemoveProductLinks(ctx, []int64{p1.ID}))
	unlinked, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, unlinked.Products)

	require.NoError(t, repo.DeleteByUserID(ctx, customer.ID))
	_, err = repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	// Products survive the removal of orders referencing them.
	_, err = postgres.NewProductRepository(db).FindByID(ctx, p1.ID)
	assert.NoError(t, err)
}

func TestProductRepository_FindByIDsKeepsRequestOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	supplier := createUser(t, db, "sid", entity.RoleSupplier)
	p1 := createProduct(t, db, supplier.SupplierProfile.ID, "P1", "1.00")
	p2 := createProduct(t, db, supplier.SupplierProfile.ID, "P2", "2.00")

	products, err := postgres.NewProductRepository(db).FindByIDs(ctx, []int64{p2.ID, 404, p1.ID})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, p2.ID, products[0].ID)
	assert.Equal(t, p1.ID, products[1].ID)
}

func TestSupplierRepository_DeleteWithProductsFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	supplier := createUser(t, db, "sal", entity.RoleSupplier)
	createProduct(t, db, supplier.SupplierProfile.ID, "P1", "1.00")

	found, err := postgres.NewSupplierRepository(db).FindByUserID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Len(t, found.ProductIDs, 1)

	// The foreign key keeps products from being orphaned.
	assert.Error(t, postgres.NewSupplierRepository(db).Delete(ctx, found.ID))
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	txManager := postgres.NewTransactionManager(db)

	boom := errors.New("boom")
	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		user := &entity.User{
			Username:     "temp",
			Email:        "temp@example.com",
			PasswordHash: "hash",
			IsActive:     true,
			Roles:        entity.Roles{entity.RoleCustomer},
		}
		if err := factory.NewUserRepository().Create(ctx, user); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = postgres.NewUserRepository(db).FindByUsername(ctx, "temp")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
