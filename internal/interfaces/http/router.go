package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	ReportUC         *usecase.ReportUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	CommitSale       *sales.CommitSaleUseCase
	AuthUC           *auth.AuthUseCase
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

	canSell := RequireRoles(entity.RoleAdministrator, entity.RoleCashier)
	canManageInventory := RequireRoles(entity.RoleAdministrator, entity.RoleInventoryManager)

	// Products (protegido; escrituras solo admin/inventario)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", canManageInventory, productHandler.Create)
	products.Put("/:id", canManageInventory, productHandler.Update)
	products.Delete("/:id", canManageInventory, productHandler.Deactivate)

	// Inventory movements (protegido; solo admin/inventario)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/movements", canManageInventory, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements/:product_id", inventoryHandler.ListByProduct)

	// Sales (protegido; el commit solo admin/cajero)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CommitSale)
	salesGroup.Post("/", canSell, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Reports y dashboard (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports", reportHandler.Reports)
	protected.Get("/reports/low-stock", reportHandler.LowStock)
	protected.Get("/dashboard", reportHandler.Dashboard)
}
