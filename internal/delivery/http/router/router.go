// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"inventory/config"
	"inventory/internal/delivery/http/middleware"
	"inventory/internal/delivery/http/router/handler"
	"inventory/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config *config.Config

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	ProductHandler  *handler.ProductHandler
	OrderHandler    *handler.OrderHandler
	SupplierHandler *handler.SupplierHandler
	CSVHandler      *handler.CSVHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Metrics         *metrics.Metrics
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	productHandler  *handler.ProductHandler
	orderHandler    *handler.OrderHandler
	supplierHandler *handler.SupplierHandler
	csvHandler      *handler.CSVHandler
	authMiddleware  *middleware.AuthMiddleware
	metrics         *metrics.Metrics
	exposeMetrics   bool
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		productHandler:  params.ProductHandler,
		orderHandler:    params.OrderHandler,
		supplierHandler: params.SupplierHandler,
		csvHandler:      params.CSVHandler,
		authMiddleware:  params.AuthMiddleware,
		metrics:         params.Metrics,
		exposeMetrics:   params.Config.Metrics.Enabled,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// The authorization filter wraps every route; its policy table decides what is public.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.authMiddleware.Authorize)

	e.GET("/health", handler.HealthCheck)
	if r.exposeMetrics {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	api := e.Group("/api")

	api.POST("/auth/login", r.authHandler.Login)

	users := api.Group("/users")
	{
		users.POST("/register", r.userHandler.RegisterUser)
		users.PUT("/update/:id", r.userHandler.UpdateUser)
		users.GET("/all", r.userHandler.GetAllUsers)
		users.GET("/username/:username", r.userHandler.GetUserByUsername)
		users.GET("/email/:email", r.userHandler.GetUserByEmail)
		users.PUT("/activate/:id", r.userHandler.ActivateUser)
		users.PUT("/deactivate/:id", r.userHandler.DeactivateUser)
		users.DELETE("/delete/:id", r.userHandler.DeleteUser)
		users.GET("/:id", r.userHandler.GetUserByID)
	}

	products := api.Group("/products")
	{
		products.POST("/create", r.productHandler.CreateProduct)
		products.PUT("/update/:id", r.productHandler.UpdateProduct)
		products.GET("/all", r.productHandler.GetAllProducts)
		products.DELETE("/delete/:id", r.productHandler.DeleteProduct)
		products.GET("/:id", r.productHandler.GetProductByID)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", r.orderHandler.CreateOrder)
		orders.GET("", r.orderHandler.GetAllOrders)
		orders.GET("/:id", r.orderHandler.GetOrderByID)
		orders.PUT("/:id", r.orderHandler.UpdateOrder)
		orders.DELETE("/:id", r.orderHandler.DeleteOrder)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("", r.supplierHandler.GetAllSuppliers)
		suppliers.GET("/:id", r.supplierHandler.GetSupplierByID)
		suppliers.DELETE("/:id", r.supplierHandler.DeleteSupplier)
	}

	csv := api.Group("/csv")
	{
		csv.GET("/export/products", r.csvHandler.ExportProducts)
		csv.POST("/import/products", r.csvHandler.ImportProducts)
		csv.GET("/export/orders", r.csvHandler.ExportOrders)
		csv.POST("/import/orders", r.csvHandler.ImportOrders)
	}
}
