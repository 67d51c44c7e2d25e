package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/ims/backend/internal/application/catalog"
	"github.com/ims/backend/internal/application/finance"
	apppartner "github.com/ims/backend/internal/application/partner"
	apptrade "github.com/ims/backend/internal/application/trade"
)

// CustomerHandler serves the customer endpoints, including due payment
type CustomerHandler struct {
	BaseHandler
	service  *apppartner.CustomerService
	orders   *apptrade.SalesOrderService
	payments *finance.PaymentService
}

// NewCustomerHandler creates a customer handler
func NewCustomerHandler(service *apppartner.CustomerService, orders *apptrade.SalesOrderService, payments *finance.PaymentService) *CustomerHandler {
	return &CustomerHandler{service: service, orders: orders, payments: payments}
}

// Create handles POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req apppartner.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.service.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// Get handles GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List handles GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// Update handles PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req apppartner.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.service.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary handles GET /api/v1/customers/:id/summary
func (h *CustomerHandler) Summary(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.service.GetCustomerSummary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Orders handles GET /api/v1/customers/:id/orders
func (h *CustomerHandler) Orders(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orders, err := h.orders.ListCustomerOrders(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// PayDue handles POST /api/v1/customers/:id/pay-due
func (h *CustomerHandler) PayDue(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req finance.PayDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.payments.PayCustomerDue(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// VendorHandler serves the vendor endpoints, including due payment
type VendorHandler struct {
	BaseHandler
	service  *apppartner.VendorService
	orders   *apptrade.PurchaseOrderService
	items    *appcatalog.ItemService
	payments *finance.PaymentService
}

// NewVendorHandler creates a vendor handler
func NewVendorHandler(service *apppartner.VendorService, orders *apptrade.PurchaseOrderService, items *appcatalog.ItemService, payments *finance.PaymentService) *VendorHandler {
	return &VendorHandler{service: service, orders: orders, items: items, payments: payments}
}

// Create handles POST /api/v1/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var req apppartner.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.service.CreateVendor(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// Get handles GET /api/v1/vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	vendor, err := h.service.GetVendor(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// List handles GET /api/v1/vendors
func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := h.service.ListVendors(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendors)
}

// Update handles PUT /api/v1/vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req apppartner.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.service.UpdateVendor(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Delete handles DELETE /api/v1/vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.service.DeleteVendor(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Orders handles GET /api/v1/vendors/:id/purchase-orders
func (h *VendorHandler) Orders(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orders, err := h.orders.ListVendorOrders(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Items handles GET /api/v1/vendors/:id/items
func (h *VendorHandler) Items(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items, err := h.items.ListVendorItems(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// PayDue handles POST /api/v1/vendors/:id/pay-due
func (h *VendorHandler) PayDue(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req finance.PayDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.payments.PayVendorDue(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
