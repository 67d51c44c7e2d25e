package handler

import (
	"github.com/gin-gonic/gin"

	apptrade "github.com/ims/backend/internal/application/trade"
)

// SalesOrderHandler serves the sales order endpoints
type SalesOrderHandler struct {
	BaseHandler
	service *apptrade.SalesOrderService
}

// NewSalesOrderHandler creates a sales order handler
func NewSalesOrderHandler(service *apptrade.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{service: service}
}

// Create handles POST /api/v1/orders
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req apptrade.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get handles GET /api/v1/orders/:id
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /api/v1/orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Update handles PUT /api/v1/orders/:id
func (h *SalesOrderHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req apptrade.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /api/v1/orders/:id
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PurchaseOrderHandler serves the purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	service *apptrade.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a purchase order handler
func NewPurchaseOrderHandler(service *apptrade.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: service}
}

// Create handles POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req apptrade.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get handles GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Update handles PUT /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req apptrade.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
