package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/taller-api/internal/application/finance"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/notify"
	"github.com/jhoicas/taller-api/internal/application/sales"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	infracache "github.com/jhoicas/taller-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	infrastorage "github.com/jhoicas/taller-api/internal/infrastructure/storage"
	infrawebhook "github.com/jhoicas/taller-api/internal/infrastructure/webhook"
	httpRouter "github.com/jhoicas/taller-api/internal/interfaces/http"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
	"github.com/jhoicas/taller-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// loc ya fue validada por config.Validate.
	loc, _ := time.LoadLocation(cfg.App.Timezone)

	tenantRepo := postgres.NewTenantRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	orderRepo := postgres.NewServiceOrderRepository(pool)
	eventRepo := postgres.NewOrderEventRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	salesRepo := postgres.NewSalesOrderRepository(pool)
	webhookRepo := postgres.NewWebhookRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	financeRepo := postgres.NewFinanceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Webhooks y avisos: de mejor esfuerzo, fuera del camino de la petición.
	dispatcher := notify.NewDispatcher(webhookRepo, infrawebhook.NewHTTPSender(cfg.Webhook.Timeout),
		cfg.Webhook.Timeout, cfg.Webhook.MaxBodyLog, log.Component("webhooks"))
	dispatcher.OnDelivery(func(event string, success bool) {
		metrics.WebhookDeliveries.WithLabelValues(event, metrics.WebhookResult(success)).Inc()
	})
	notificationUC := notify.NewNotificationUseCase(notificationRepo, log.Component("notifications"))

	ledgerUC := inventory.NewLedgerUseCase(txRunner, productRepo, movementRepo)

	orderDeps := serviceorder.Deps{
		TxRunner:  txRunner,
		Orders:    orderRepo,
		Events:    eventRepo,
		Payments:  paymentRepo,
		Customers: customerRepo,
		Assets:    assetRepo,
		Tenants:   tenantRepo,
		Ledger:    ledgerUC,
		Publisher: dispatcher,
		Notifier:  notificationUC,
		Receipts:  infrapdf.NewMarotoReceiptGenerator(),
		Log:       log.Component("service_orders"),
	}
	if cfg.Storage.EvidenceBucket != "" {
		store, err := infrastorage.NewGCSEvidenceStore(ctx, cfg.Storage.EvidenceBucket, cfg.Storage.CredentialsJSON, cfg.Storage.SignedURLTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento de evidencias")
		}
		defer store.Close()
		orderDeps.Storage = store
	} else {
		log.Warn().Msg("GCS_EVIDENCE_BUCKET vacío: subida de evidencias deshabilitada")
	}
	serviceOrderUC := serviceorder.New(orderDeps)

	salesUC := sales.NewUseCase(txRunner, salesRepo, ledgerUC, dispatcher)

	var financeCache finance.Cache
	if cfg.Redis.Addr != "" {
		rc, err := infracache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.App.Name+":")
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, reportes sin caché")
		} else {
			defer rc.Close()
			financeCache = rc
		}
	}
	financeUC := finance.NewUseCase(financeRepo, loc, financeCache, cfg.Redis.CacheTTL, log.Component("finance"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyMB << 20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:      usecase.NewTenantUseCase(tenantRepo),
		ProductUC:     usecase.NewProductUseCase(txRunner, productRepo, categoryRepo, ledgerUC),
		CategoryUC:    usecase.NewCategoryUseCase(categoryRepo),
		CustomerUC:    usecase.NewCustomerUseCase(customerRepo, assetRepo),
		WebhookUC:     usecase.NewWebhookUseCase(webhookRepo),
		Ledger:        ledgerUC,
		ServiceOrders: serviceOrderUC,
		Sales:         salesUC,
		Finance:       financeUC,
		Notifications: notificationUC,
		JWTSecret:     cfg.JWT.Secret,
		ServiceName:   cfg.App.Name,
		EnableMetrics: true,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Shutdown)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Entregas de webhooks en curso antes de cerrar el pool.
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}
