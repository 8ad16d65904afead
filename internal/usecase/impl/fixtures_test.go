package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"inventory/config"
	"inventory/internal/domain/entity"
	"inventory/internal/domain/service"
	"inventory/internal/infra/auth"
	"inventory/internal/infra/metrics"
	"inventory/internal/infra/persistence/postgres"
	mockSvc "inventory/internal/mocks/service"
	"inventory/internal/testutil"
	"inventory/internal/usecase"
	"inventory/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "s3cret-pass"

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// serviceFixtures wires every service to one in-memory database.
type serviceFixtures struct {
	db      *gorm.DB
	cfg     *config.Config
	metrics *metrics.Metrics
	emails  *mockSvc.MockEmailSender
	hasher  service.PasswordHasher
	tokens  service.TokenService

	auth      usecase.AuthUsecase
	users     usecase.UserUsecase
	products  usecase.ProductUsecase
	orders    usecase.OrderUsecase
	suppliers usecase.SupplierUsecase
	csv       usecase.CSVUsecase
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServiceFixtures(t *testing.T) *serviceFixtures {
	t.Helper()

	cfg := &config.Config{
		Auth:    &config.AuthConfig{BcryptCost: bcrypt.MinCost, TokenTTL: time.Hour},
		Metrics: &config.MetricsConfig{Enabled: true},
	}
	cfg.SecretKey.Access = "test_secret_key_that_is_long_enough"

	db := testutil.NewTestDB(t)
	logger := newDiscardLogger()
	txManager := postgres.NewTransactionManager(db)
	m := metrics.New(cfg)
	emails := mockSvc.NewMockEmailSender(t)
	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	orders := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: postgres.NewOrderRepository(db),
		Metrics:   m,
		Logger:    logger,
	})
	orders.(*orderService).now = func() time.Time { return fixedNow }

	csv := NewCSVService(CSVServiceParams{
		TxManager:   txManager,
		ProductRepo: postgres.NewProductRepository(db),
		OrderRepo:   postgres.NewOrderRepository(db),
		Validator:   validation.New(),
		Metrics:     m,
		Logger:      logger,
	})
	csv.(*csvService).now = func() time.Time { return fixedNow }

	return &serviceFixtures{
		db:      db,
		cfg:     cfg,
		metrics: m,
		emails:  emails,
		hasher:  hasher,
		tokens:  tokens,
		auth: NewAuthService(AuthServiceParams{
			UserRepo:     postgres.NewUserRepository(db),
			Hasher:       hasher,
			TokenService: tokens,
			Metrics:      m,
			Logger:       logger,
		}),
		users: NewUserService(UserServiceParams{
			TxManager:   txManager,
			UserRepo:    postgres.NewUserRepository(db),
			Hasher:      hasher,
			EmailSender: emails,
			Metrics:     m,
			Logger:      logger,
		}),
		products: NewProductService(ProductServiceParams{
			TxManager:   txManager,
			ProductRepo: postgres.NewProductRepository(db),
			Metrics:     m,
			Logger:      logger,
		}),
		orders: orders,
		suppliers: NewSupplierService(SupplierServiceParams{
			TxManager:    txManager,
			SupplierRepo: postgres.NewSupplierRepository(db),
			Metrics:      m,
			Logger:       logger,
		}),
		csv: csv,
	}
}

func adminPrincipal() *entity.Principal {
	return &entity.Principal{UserID: 1, Roles: entity.Roles{entity.RoleAdmin}}
}

func newUserRequest(username string, roles ...entity.Role) *usecase.UserRequest {
	return &usecase.UserRequest{
		Username:    username,
		Password:    testPassword,
		Email:       username + "@example.com",
		FullName:    "Full " + username,
		Roles:       entity.Roles(roles).ToStrings(),
		PhoneNumber: "",
		Address:     "1 Main St",
		Registering: true,
	}
}

// register creates a user through the service, accepting the welcome email.
func (f *serviceFixtures) register(t *testing.T, principal *entity.Principal, req *usecase.UserRequest) *usecase.UserResponse {
	t.Helper()

	f.emails.EXPECT().Send(mock.Anything, mock.AnythingOfType("service.EmailMessage")).Return(nil).Once()

	resp, err := f.users.RegisterUser(context.Background(), principal, req)
	require.NoError(t, err)

	return resp
}

// createSupplier registers a SUPPLIER and returns the user and supplier profile ids.
func (f *serviceFixtures) createSupplier(t *testing.T, username string) (userID, supplierID int64) {
	t.Helper()

	resp := f.register(t, nil, newUserRequest(username, entity.RoleSupplier))
	require.NotNil(t, resp.SupplierProfileID)

	return resp.ID, *resp.SupplierProfileID
}

func (f *serviceFixtures) createProduct(t *testing.T, supplierID int64, name, price string) *usecase.ProductResponse {
	t.Helper()

	resp, err := f.products.CreateProduct(context.Background(), &usecase.ProductRequest{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		SupplierID:    supplierID,
	})
	require.NoError(t, err)

	return resp
}
