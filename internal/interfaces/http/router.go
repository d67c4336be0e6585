package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/auth"
	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	SupplierUC *usecase.SupplierUseCase
	ReportUC   *usecase.ReportUseCase
	PurchaseUC *orders.PurchaseOrderUseCase
	SalesUC    *orders.SalesOrderUseCase
	DocumentUC *orders.DocumentUseCase
	MovementUC *inventory.OrderMovementUseCase
	LedgerUC   *inventory.LedgerUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// RBAC: las escrituras de catálogo son de admin; recepción y despacho son de
// bodega (admin o bodeguero); creación y aprobación de ventas son del área
// comercial (admin o vendedor). Las lecturas solo piden token válido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sales := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Bitácoras por producto (protegido)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	products.Get("/:id/inventory-log", inventoryHandler.InventoryLog)
	products.Get("/:id/cost-log", inventoryHandler.CostLog)
	products.Get("/:id/stock-reconciliation", inventoryHandler.StockReconciliation)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", adminOnly, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", adminOnly, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Purchase orders (protegido)
	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseUC, deps.MovementUC)
	purchases.Post("/", warehouse, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/receive", warehouse, purchaseHandler.Receive)

	// Sales orders (protegido)
	salesOrders := protected.Group("/sales-orders")
	salesHandler := NewSalesOrderHandler(deps.SalesUC, deps.MovementUC, deps.DocumentUC)
	salesOrders.Post("/", sales, salesHandler.Create)
	salesOrders.Get("/", salesHandler.List)
	salesOrders.Get("/:id", salesHandler.GetByID)
	salesOrders.Post("/:id/approve", sales, salesHandler.Approve)
	salesOrders.Post("/:id/ship", warehouse, salesHandler.Ship)
	salesOrders.Get("/:id/pdf", salesHandler.PDF)
	salesOrders.Get("/:id/xml", salesHandler.XML)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/gross-margin", adminOnly, reportHandler.GrossMargin)
}
