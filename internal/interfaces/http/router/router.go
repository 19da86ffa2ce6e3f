package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poslite/backend/internal/infrastructure/logger"
	"github.com/poslite/backend/internal/interfaces/http/handler"
	"github.com/poslite/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Supplier *handler.SupplierHandler
	Checkout *handler.CheckoutHandler
	Purchase *handler.PurchaseHandler
	Entry    *handler.EntryHandler
	Report   *handler.ReportHandler
}

// Config holds router configuration
type Config struct {
	Env  string
	CORS middleware.CORSConfig
	// ReadyCheck reports whether downstream dependencies are reachable
	ReadyCheck func() error
}

// New builds the gin engine with the full middleware chain and all routes
func New(log *zap.Logger, cfg Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/ready", func(c *gin.Context) {
		if cfg.ReadyCheck != nil {
			if err := cfg.ReadyCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Tenant(middleware.DefaultTenantConfig()))

	catalog := api.Group("/catalog")
	{
		catalog.POST("/products", h.Product.Create)
		catalog.GET("/products", h.Product.List)
		catalog.GET("/products/low-stock", h.Product.ListLowStock)
		catalog.GET("/products/:id", h.Product.GetByID)
		catalog.PUT("/products/:id", h.Product.Update)
		catalog.DELETE("/products/:id", h.Product.Delete)
	}

	partners := api.Group("/partners")
	{
		partners.POST("/customers", h.Customer.Create)
		partners.GET("/customers", h.Customer.List)
		partners.GET("/customers/debt-alerts", h.Customer.DebtAlerts)
		partners.GET("/customers/:id", h.Customer.GetByID)
		partners.PUT("/customers/:id", h.Customer.Update)
		partners.DELETE("/customers/:id", h.Customer.Delete)
		partners.GET("/customers/:id/statement", h.Customer.Statement)
		partners.POST("/customers/:id/payments", h.Checkout.CustomerPayment)

		partners.POST("/suppliers", h.Supplier.Create)
		partners.GET("/suppliers", h.Supplier.List)
		partners.GET("/suppliers/debt-alerts", h.Supplier.DebtAlerts)
		partners.GET("/suppliers/:id", h.Supplier.GetByID)
		partners.PUT("/suppliers/:id", h.Supplier.Update)
		partners.DELETE("/suppliers/:id", h.Supplier.Delete)
		partners.GET("/suppliers/:id/statement", h.Supplier.Statement)
		partners.POST("/suppliers/:id/invoices", h.Purchase.Invoice)
		partners.POST("/suppliers/:id/payments", h.Purchase.Payment)
	}

	trade := api.Group("/trade")
	{
		trade.POST("/checkout", h.Checkout.Checkout)
	}

	ledger := api.Group("/ledger")
	{
		ledger.GET("/entries", h.Entry.List)
		ledger.GET("/entries/:id", h.Entry.GetByID)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/summary", h.Report.PeriodSummary)
	}

	return engine
}
