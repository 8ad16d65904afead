package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"inventory/config"
	deliverymiddleware "inventory/internal/delivery/middleware"
	httpmiddleware "inventory/internal/delivery/http/middleware"
	"inventory/internal/delivery/http/router"
	"inventory/internal/delivery/http/router/handler"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/infra/auth"
	"inventory/internal/infra/metrics"
	"inventory/internal/infra/persistence/postgres"
	mockSvc "inventory/internal/mocks/service"
	"inventory/internal/testutil"
	"inventory/internal/usecase"
	"inventory/internal/usecase/impl"
	"inventory/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPassword  = "s3cret-pass"
	testAdminName = "root"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Auth:    &config.AuthConfig{BcryptCost: bcrypt.MinCost, TokenTTL: time.Hour},
		Metrics: &config.MetricsConfig{Enabled: true, Namespace: "inventory"},
		CSV:     &config.CSVConfig{MaxUploadSize: 1 << 20},
	}
	cfg.HTTP.MaxRequestBodySize = "1MB"
	cfg.SecretKey.Access = "test_secret_key_that_is_long_enough"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := testutil.NewTestDB(t)
	txManager := postgres.NewTransactionManager(db)
	m := metrics.New(cfg)
	validator := validation.New()
	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	require.NoError(t, impl.SeedAdmin(context.Background(), txManager, hasher, &config.SeedAdminConfig{
		Username: testAdminName,
		Email:    testAdminName + "@example.com",
		Password: testPassword,
	}, logger))

	emails := mockSvc.NewMockEmailSender(t)
	emails.EXPECT().Send(mock.Anything, mock.Anything).Return(nil).Maybe()

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	return NewEcho(HTTPParams{
		Config:            cfg,
		Logger:            logger,
		Validator:         validator,
		ErrorMiddleware:   httpmiddleware.NewErrorMiddleware(logger),
		MetricsMiddleware: httpmiddleware.NewMetricsMiddleware(m),
		RequestID:         deliverymiddleware.NewRequestIDMiddleware(logger),
		RequestLogger:     deliverymiddleware.NewLoggerMiddleware(logger, cfg),
		RouterParams: router.RouterParams{
			Config: cfg,
			AuthHandler: handler.NewAuthHandler(impl.NewAuthService(impl.AuthServiceParams{
				UserRepo:     userRepo,
				Hasher:       hasher,
				TokenService: tokens,
				Metrics:      m,
				Logger:       logger,
			})),
			UserHandler: handler.NewUserHandler(impl.NewUserService(impl.UserServiceParams{
				TxManager:   txManager,
				UserRepo:    userRepo,
				Hasher:      hasher,
				EmailSender: emails,
				Metrics:     m,
				Logger:      logger,
			})),
			ProductHandler: handler.NewProductHandler(impl.NewProductService(impl.ProductServiceParams{
				TxManager:   txManager,
				ProductRepo: productRepo,
				Metrics:     m,
				Logger:      logger,
			})),
			OrderHandler: handler.NewOrderHandler(impl.NewOrderService(impl.OrderServiceParams{
				TxManager: txManager,
				OrderRepo: orderRepo,
				Metrics:   m,
				Logger:    logger,
			})),
			SupplierHandler: handler.NewSupplierHandler(impl.NewSupplierService(impl.SupplierServiceParams{
				TxManager:    txManager,
				SupplierRepo: postgres.NewSupplierRepository(db),
				Metrics:      m,
				Logger:       logger,
			})),
			CSVHandler: handler.NewCSVHandler(impl.NewCSVService(impl.CSVServiceParams{
				TxManager:   txManager,
				ProductRepo: productRepo,
				OrderRepo:   orderRepo,
				Validator:   validator,
				Metrics:     m,
				Logger:      logger,
			}), cfg),
			AuthMiddleware: httpmiddleware.NewAuthMiddleware(tokens),
			Metrics:        m,
		},
	})
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func registerAndLogin(t *testing.T, e *echo.Echo, username string, roles ...string) (usecase.UserResponse, string) {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/users/register", "", map[string]any{
		"username": username,
		"password": testPassword,
		"email":    username + "@example.com",
		"fullName": "Full " + username,
		"roles":    roles,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	user := decode[usecase.UserResponse](t, rec)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", "", usecase.LoginRequest{Identifier: username, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[usecase.LoginResponse](t, rec)
	require.NotEmpty(t, login.Token)

	return user, login.Token
}

func TestServer_PublicEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = doJSON(t, e, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inventory_http_requests_total")
}

func TestServer_AuthenticationRequired(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set(echo.HeaderXRequestID, "client-req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "client-req-1", rec.Header().Get(echo.HeaderXRequestID))

	envelope := decode[domainerrors.ErrorEnvelope](t, rec)
	assert.Equal(t, http.StatusUnauthorized, envelope.Status)
	assert.Equal(t, "Unauthorized", envelope.Error)
	assert.Equal(t, "Authentication is required to access this resource.", envelope.Message)
	assert.Equal(t, "client-req-1", envelope.RequestID)
}

func TestServer_RegisterLoginAndRoles(t *testing.T) {
	e := newTestServer(t)

	customer, customerToken := registerAndLogin(t, e, "alice", "CUSTOMER")
	assert.Equal(t, []string{"CUSTOMER"}, customer.Roles)
	assert.True(t, customer.IsActive)

	rec := doJSON(t, e, http.MethodGet, "/api/users/all", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ACCESS_DENIED", decode[domainerrors.ErrorEnvelope](t, rec).Code)

	rec = doJSON(t, e, http.MethodGet, "/api/products/all", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", "", usecase.LoginRequest{Identifier: "alice", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode[domainerrors.ErrorEnvelope](t, rec).Message)

	rec = doJSON(t, e, http.MethodPost, "/api/users/register", "", map[string]any{
		"username": "mallory",
		"password": testPassword,
		"email":    "mallory@example.com",
		"roles":    []string{"ADMIN"},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ROLE_ASSIGNMENT_DENIED", decode[domainerrors.ErrorEnvelope](t, rec).Code)
}

func TestServer_AdminTokenOnRegisterAssignsAdmin(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "", usecase.LoginRequest{Identifier: testAdminName, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	adminToken := decode[usecase.LoginResponse](t, rec).Token

	rec = doJSON(t, e, http.MethodPost, "/api/users/register", adminToken, map[string]any{
		"username": "deputy",
		"password": testPassword,
		"email":    "deputy@example.com",
		"roles":    []string{"ADMIN"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"ADMIN"}, decode[usecase.UserResponse](t, rec).Roles)

	// An unusable token on a public route is treated as anonymous.
	rec = doJSON(t, e, http.MethodPost, "/api/users/register", "garbage", map[string]any{
		"username": "intruder",
		"password": testPassword,
		"email":    "intruder@example.com",
		"roles":    []string{"ADMIN"},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ROLE_ASSIGNMENT_DENIED", decode[domainerrors.ErrorEnvelope](t, rec).Code)
}

func TestServer_ValidationAndMalformedBodies(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/users/register", "", map[string]any{"username": "al"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decode[domainerrors.ErrorEnvelope](t, rec)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Code)
	assert.Contains(t, envelope.Message, "username: must be at least 3 characters long")
	assert.NotEmpty(t, envelope.Errors)

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(`{"username":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Malformed JSON request", decode[domainerrors.ErrorEnvelope](t, rec).Message)

	_, token := registerAndLogin(t, e, "carol", "CUSTOMER")
	rec = doJSON(t, e, http.MethodGet, "/api/orders/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/orders/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found with id: 999", decode[domainerrors.ErrorEnvelope](t, rec).Message)
}

func TestServer_SupplierProductsAndCSV(t *testing.T) {
	e := newTestServer(t)

	supplier, token := registerAndLogin(t, e, "sam", "SUPPLIER")
	require.NotNil(t, supplier.SupplierProfileID)

	rec := doJSON(t, e, http.MethodPost, "/api/products/create", token, map[string]any{
		"name":          "Widget",
		"price":         "2.50",
		"stockQuantity": 3,
		"supplierId":    *supplier.SupplierProfileID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[usecase.ProductResponse](t, rec)

	rec = doJSON(t, e, http.MethodPost, "/api/orders", token, map[string]any{
		"userId":     supplier.ID,
		"productIds": []int64{product.ID, product.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[usecase.OrderResponse](t, rec)
	assert.Equal(t, "2.50", order.TotalAmount.StringFixed(2))

	rec = doJSON(t, e, http.MethodGet, "/api/csv/export/products", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "products.csv")
	assert.Contains(t, rec.Body.String(), "Widget,,2.50,3,")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, "Name,Description,Price,Stock Quantity,Supplier ID\nGadget,New,4.00,1,"+
		strconv.FormatInt(*supplier.SupplierProfileID, 10)+"\n")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/csv/import/products", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	imported := decode[[]usecase.ProductResponse](t, rec)
	require.Len(t, imported, 1)
	assert.Equal(t, "Gadget", imported[0].Name)

	req = httptest.NewRequest(http.MethodPost, "/api/csv/import/orders", strings.NewReader("no file"))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_CSV", decode[domainerrors.ErrorEnvelope](t, rec).Code)

	rec = doJSON(t, e, http.MethodDelete, "/api/products/delete/"+strconv.FormatInt(product.ID, 10), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())
}
