package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	catalogapp "github.com/poslite/backend/internal/application/catalog"
	partnerapp "github.com/poslite/backend/internal/application/partner"
	reportapp "github.com/poslite/backend/internal/application/report"
	tradeapp "github.com/poslite/backend/internal/application/trade"
	"github.com/poslite/backend/internal/domain/inventory"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/ai"
	"github.com/poslite/backend/internal/infrastructure/cache"
	"github.com/poslite/backend/internal/infrastructure/config"
	"github.com/poslite/backend/internal/infrastructure/event"
	"github.com/poslite/backend/internal/infrastructure/logger"
	"github.com/poslite/backend/internal/infrastructure/persistence"
	"github.com/poslite/backend/internal/interfaces/http/handler"
	"github.com/poslite/backend/internal/interfaces/http/middleware"
	"github.com/poslite/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present; real environment variables still win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS ledger backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database with a GORM logger that routes through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Postgres deployments run SQL migrations via cmd/migrate. The sqlite
	// driver targets single-machine installs with no migration step, so the
	// schema is created in-process.
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	uowFactory := persistence.NewGormUnitOfWorkFactory(db.DB)

	// Idempotency store: Redis when configured, in-memory otherwise
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = store
		log.Info("Using Redis idempotency store",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Info("Using in-memory idempotency store")
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Failed to close idempotency store", zap.Error(err))
		}
	}()
	idempotencyCfg := shared.IdempotencyConfig{
		TTL:     cfg.Ledger.IdempotencyTTL,
		Enabled: cfg.Ledger.IdempotencyEnabled,
	}

	auditPublisher := event.NewAuditLogPublisher(log)

	// Application services
	productService := catalogapp.NewProductService(productRepo, entryRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, entryRepo, cfg.Ledger.PaymentTermsDays)
	supplierService := partnerapp.NewSupplierService(supplierRepo, entryRepo, cfg.Ledger.PaymentTermsDays)

	checkoutService := tradeapp.NewCheckoutService(productRepo, customerRepo, uowFactory)
	checkoutService.SetIdempotencyStore(idempotencyStore, idempotencyCfg)
	checkoutService.SetEventPublisher(auditPublisher)

	defaultPolicy := inventory.CostingPolicy(cfg.Ledger.CostingPolicy)
	purchaseService := tradeapp.NewPurchaseService(productRepo, supplierRepo, uowFactory, defaultPolicy)
	purchaseService.SetEventPublisher(auditPublisher)

	entryService := tradeapp.NewEntryQueryService(entryRepo)

	var summarizer reportapp.Summarizer
	if cfg.OpenAI.Enabled {
		summarizer = ai.NewOpenAISummarizer(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		log.Info("Report narratives enabled", zap.String("model", cfg.OpenAI.Model))
	}
	summaryService := reportapp.NewSummaryService(entryRepo, summarizer, log)

	// HTTP layer
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine := router.New(log, router.Config{
		Env:        cfg.App.Env,
		CORS:       corsCfg,
		ReadyCheck: db.Ping,
	}, router.Handlers{
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Entry:    handler.NewEntryHandler(entryService),
		Report:   handler.NewReportHandler(summaryService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + strings.TrimPrefix(cfg.App.Port, ":"),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
