package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/ims/backend/internal/application/catalog"
	financeapp "github.com/ims/backend/internal/application/finance"
	"github.com/ims/backend/internal/application/ledger"
	partnerapp "github.com/ims/backend/internal/application/partner"
	tradeapp "github.com/ims/backend/internal/application/trade"
	"github.com/ims/backend/internal/domain/pricing"
	"github.com/ims/backend/internal/infrastructure/cache"
	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/ims/backend/internal/infrastructure/logger"
	"github.com/ims/backend/internal/infrastructure/persistence"
	"github.com/ims/backend/internal/interfaces/http/handler"
	"github.com/ims/backend/internal/interfaces/http/router"
)

func main() {
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
		_ = log.Sync()
	}()

	log.Info("Starting IMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Item cache, Redis when enabled and reachable
	var itemCache catalogapp.ItemCache = cache.NewNoopItemCache()
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(context.Background(), &cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, item cache disabled", zap.Error(err))
		} else {
			defer func() {
				_ = client.Close()
			}()
			itemCache = cache.NewRedisItemCache(client, cfg.Cache.ItemTTL)
			log.Info("Redis item cache enabled", zap.Duration("ttl", cfg.Cache.ItemTTL))
		}
	}

	// Repositories and the shared transaction scope
	repos := persistence.NewGormRepositories(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Domain services
	resolver := pricing.NewResolver()
	dueLedger := ledger.NewDueLedger()

	// Application services
	itemService := catalogapp.NewItemService(repos, scope, resolver, itemCache, log)
	discountService := catalogapp.NewDiscountService(repos, scope, resolver, itemCache, log)
	customerService := partnerapp.NewCustomerService(repos, scope, log)
	vendorService := partnerapp.NewVendorService(repos, scope, log)
	salesOrderService := tradeapp.NewSalesOrderService(repos, scope, dueLedger, log)
	salesOrderService.SetItemCache(itemCache)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(repos, scope, log)
	purchaseOrderService.SetItemCache(itemCache)
	paymentService := financeapp.NewPaymentService(scope, dueLedger, log)

	// HTTP layer
	engine := router.New(cfg, log, router.Handlers{
		Items:          handler.NewItemHandler(itemService),
		Discounts:      handler.NewDiscountHandler(discountService),
		Customers:      handler.NewCustomerHandler(customerService, salesOrderService, paymentService),
		Vendors:        handler.NewVendorHandler(vendorService, purchaseOrderService, itemService, paymentService),
		Orders:         handler.NewSalesOrderHandler(salesOrderService),
		PurchaseOrders: handler.NewPurchaseOrderHandler(purchaseOrderService),
		Health:         healthHandler(db),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
