package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	PurchaseOrderUC  *usecase.PurchaseOrderUseCase
	PurchaseOrderPDF *usecase.PurchaseOrderPDFUseCase
	DashboardUC      *usecase.DashboardUseCase
	AdjustStockUC    *appstock.AdjustStockUseCase
	LowStockUC       *appstock.LowStockUseCase
	MovementQueryUC  *appstock.MovementQueryUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.AdjustStockUC, deps.LowStockUC, deps.MovementQueryUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Get("/:id/movements", stockHandler.ListProductMovements)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Stock: ajustes, umbrales, movimientos, alertas (protegido)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/adjustments", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), stockHandler.Adjust)
	stockGroup.Put("/thresholds/:productID", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), stockHandler.UpdateThresholds)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/low", stockHandler.LowStock)

	// Purchase orders (protegido)
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, deps.PurchaseOrderPDF)
	orders.Post("/", RequireRole(entity.RoleAdmin, entity.RoleComprador), orderHandler.Create)
	orders.Get("/", orderHandler.List)
	// antes de /:id para que "next-number" no se capture como id
	orders.Get("/next-number", RequireRole(entity.RoleAdmin, entity.RoleComprador), orderHandler.NextNumber)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/receive", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), orderHandler.Receive)
	orders.Post("/:id/cancel", RequireRole(entity.RoleAdmin, entity.RoleComprador), orderHandler.Cancel)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
