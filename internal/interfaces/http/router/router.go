// Package router wires the HTTP routes to their handlers
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/ims/backend/internal/interfaces/http/handler"
	"github.com/ims/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every route handler
type Handlers struct {
	Items          *handler.ItemHandler
	Discounts      *handler.DiscountHandler
	Customers      *handler.CustomerHandler
	Vendors        *handler.VendorHandler
	Orders         *handler.SalesOrderHandler
	PurchaseOrders *handler.PurchaseOrderHandler

	// Health is mounted at /health; a static ok response is used when nil
	Health gin.HandlerFunc
}

// New builds the gin engine with middleware and all routes registered
func New(cfg *config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(&cfg.HTTP),
	)

	health := h.Health
	if health == nil {
		health = func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		}
	}
	engine.GET("/health", health)

	v1 := engine.Group("/api/v1")

	items := v1.Group("/items")
	{
		items.POST("", h.Items.Create)
		items.GET("", h.Items.List)
		items.GET("/:id", h.Items.Get)
		items.PUT("/:id", h.Items.Update)
		items.DELETE("/:id", h.Items.Delete)
	}

	discounts := v1.Group("/discounts")
	{
		discounts.POST("", h.Discounts.Create)
		discounts.GET("", h.Discounts.List)
		discounts.GET("/:id", h.Discounts.Get)
		discounts.PUT("/:id", h.Discounts.Update)
		discounts.DELETE("/:id", h.Discounts.Delete)
	}

	customers := v1.Group("/customers")
	{
		customers.POST("", h.Customers.Create)
		customers.GET("", h.Customers.List)
		customers.GET("/:id", h.Customers.Get)
		customers.PUT("/:id", h.Customers.Update)
		customers.DELETE("/:id", h.Customers.Delete)
		customers.GET("/:id/summary", h.Customers.Summary)
		customers.GET("/:id/orders", h.Customers.Orders)
		customers.POST("/:id/pay-due", h.Customers.PayDue)
	}

	vendors := v1.Group("/vendors")
	{
		vendors.POST("", h.Vendors.Create)
		vendors.GET("", h.Vendors.List)
		vendors.GET("/:id", h.Vendors.Get)
		vendors.PUT("/:id", h.Vendors.Update)
		vendors.DELETE("/:id", h.Vendors.Delete)
		vendors.GET("/:id/purchase-orders", h.Vendors.Orders)
		vendors.GET("/:id/items", h.Vendors.Items)
		vendors.POST("/:id/pay-due", h.Vendors.PayDue)
	}

	orders := v1.Group("/orders")
	{
		orders.POST("", h.Orders.Create)
		orders.GET("", h.Orders.List)
		orders.GET("/:id", h.Orders.Get)
		orders.PUT("/:id", h.Orders.Update)
		orders.DELETE("/:id", h.Orders.Delete)
	}

	purchaseOrders := v1.Group("/purchase-orders")
	{
		purchaseOrders.POST("", h.PurchaseOrders.Create)
		purchaseOrders.GET("", h.PurchaseOrders.List)
		purchaseOrders.GET("/:id", h.PurchaseOrders.Get)
		purchaseOrders.PUT("/:id", h.PurchaseOrders.Update)
		purchaseOrders.DELETE("/:id", h.PurchaseOrders.Delete)
	}

	return engine
}
