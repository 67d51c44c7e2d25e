package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/ims/backend/internal/application/catalog"
)

// DiscountHandler serves the discount endpoints
type DiscountHandler struct {
	BaseHandler
	service *appcatalog.DiscountService
}

// NewDiscountHandler creates a discount handler
func NewDiscountHandler(service *appcatalog.DiscountService) *DiscountHandler {
	return &DiscountHandler{service: service}
}

// Create handles POST /api/v1/discounts
func (h *DiscountHandler) Create(c *gin.Context) {
	var req appcatalog.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	discount, err := h.service.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, discount)
}

// Get handles GET /api/v1/discounts/:id
func (h *DiscountHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	discount, err := h.service.GetDiscount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, discount)
}

// List handles GET /api/v1/discounts
func (h *DiscountHandler) List(c *gin.Context) {
	discounts, err := h.service.ListDiscounts(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, discounts)
}

// Update handles PUT /api/v1/discounts/:id
func (h *DiscountHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req appcatalog.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	discount, err := h.service.UpdateDiscount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, discount)
}

// Delete handles DELETE /api/v1/discounts/:id
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.service.DeleteDiscount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
