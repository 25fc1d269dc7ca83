package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/taller-api/internal/application/finance"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/notify"
	"github.com/jhoicas/taller-api/internal/application/sales"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/pkg/jwt"
	"github.com/jhoicas/taller-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC      *usecase.TenantUseCase
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	CustomerUC    *usecase.CustomerUseCase
	WebhookUC     *usecase.WebhookUseCase
	Ledger        *inventory.LedgerUseCase
	ServiceOrders *serviceorder.UseCase
	Sales         *sales.UseCase
	Finance       *finance.UseCase
	Notifications *notify.NotificationUseCase
	JWTSecret     string
	ServiceName   string
	EnableMetrics bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.EnableMetrics {
		app.Use(metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	tenantHandler := NewTenantHandler(deps.TenantUC)
	// Alta de taller (público)
	api.Post("/tenants", tenantHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(staffRoles...)
	admin := RequireRole(jwt.RoleAdmin)
	cashier := RequireRole(jwt.RoleAdmin, jwt.RoleCashier)
	workshop := RequireRole(jwt.RoleAdmin, jwt.RoleTechnician)

	protected.Get("/tenants/me", staff, tenantHandler.Me)
	protected.Put("/tenants/me", admin, tenantHandler.Update)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC, deps.CategoryUC)
	products := protected.Group("/products", staff)
	products.Get("/", productHandler.List)
	products.Get("/:id", ValidateIDParams, productHandler.GetByID)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, ValidateIDParams, productHandler.Update)
	products.Delete("/:id", admin, ValidateIDParams, productHandler.Delete)

	categories := protected.Group("/categories", staff)
	categories.Get("/", productHandler.ListCategories)
	categories.Post("/", admin, productHandler.CreateCategory)
	categories.Put("/:id", admin, ValidateIDParams, productHandler.UpdateCategory)
	categories.Delete("/:id", admin, ValidateIDParams, productHandler.DeleteCategory)

	// Clientes y equipos
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers", staff)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", ValidateIDParams, customerHandler.GetByID)
	customers.Put("/:id", ValidateIDParams, customerHandler.Update)
	customers.Delete("/:id", admin, ValidateIDParams, customerHandler.Delete)
	customers.Get("/:id/assets", ValidateIDParams, customerHandler.ListAssets)

	assets := protected.Group("/assets", staff)
	assets.Post("/", customerHandler.CreateAsset)
	assets.Get("/:id", ValidateIDParams, customerHandler.GetAsset)
	assets.Put("/:id", ValidateIDParams, customerHandler.UpdateAsset)

	// Libro de inventario
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inv := protected.Group("/inventory", staff)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/stock/:productId", ValidateIDParams, inventoryHandler.GetStock)
	inv.Post("/movements", workshop, inventoryHandler.RecordMovement)
	inv.Post("/adjust", admin, inventoryHandler.AdjustStock)
	inv.Post("/reconcile/:productId", admin, ValidateIDParams, inventoryHandler.Reconcile)

	// Órdenes de servicio
	orderHandler := NewServiceOrderHandler(deps.ServiceOrders)
	orders := protected.Group("/service-orders", staff)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", ValidateIDParams, orderHandler.Get)
	orders.Patch("/:id/status", workshop, ValidateIDParams, orderHandler.ChangeStatus)
	orders.Post("/:id/items", workshop, ValidateIDParams, orderHandler.AddItem)
	orders.Delete("/:id/items/:itemId", workshop, ValidateIDParams, orderHandler.RemoveItem)
	orders.Post("/:id/payments", cashier, ValidateIDParams, orderHandler.RegisterPayment)
	orders.Get("/:id/timeline", ValidateIDParams, orderHandler.Timeline)
	orders.Post("/:id/comments", ValidateIDParams, orderHandler.AddComment)
	orders.Post("/:id/evidence", workshop, ValidateIDParams, orderHandler.UploadEvidence)
	orders.Get("/:id/receipt", ValidateIDParams, orderHandler.Receipt)

	// Ventas
	salesHandler := NewSalesHandler(deps.Sales)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/checkout", cashier, salesHandler.Checkout)
	salesGroup.Post("/online", RequireRole(jwt.RoleAdmin, jwt.RoleCashier, jwt.RoleCustomer), salesHandler.CreateOnline)
	salesGroup.Get("/", staff, salesHandler.List)
	salesGroup.Get("/:id", staff, ValidateIDParams, salesHandler.Get)
	salesGroup.Patch("/:id/status", cashier, ValidateIDParams, salesHandler.ChangeStatus)

	// Finanzas
	financeHandler := NewFinanceHandler(deps.Finance)
	fin := protected.Group("/finance", admin)
	fin.Get("/daily-income", financeHandler.DailyIncome)
	fin.Get("/revenue-chart", financeHandler.RevenueChart)

	// Webhooks (admin)
	webhookHandler := NewWebhookHandler(deps.WebhookUC)
	hooks := protected.Group("/webhooks", admin)
	hooks.Post("/", webhookHandler.Create)
	hooks.Get("/", webhookHandler.List)
	hooks.Patch("/:id", ValidateIDParams, webhookHandler.Update)
	hooks.Delete("/:id", ValidateIDParams, webhookHandler.Delete)
	hooks.Get("/:id/logs", ValidateIDParams, webhookHandler.Logs)

	// Notificaciones del usuario autenticado
	notificationHandler := NewNotificationHandler(deps.Notifications)
	notes := protected.Group("/notifications")
	notes.Get("/", notificationHandler.List)
	notes.Post("/read-all", notificationHandler.MarkAllRead)
	notes.Post("/:id/read", ValidateIDParams, notificationHandler.MarkRead)
}
