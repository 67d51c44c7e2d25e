package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/ims/backend/internal/application/catalog"
)

// ItemHandler serves the item endpoints
type ItemHandler struct {
	BaseHandler
	service *appcatalog.ItemService
}

// NewItemHandler creates an item handler
func NewItemHandler(service *appcatalog.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// Create handles POST /api/v1/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req appcatalog.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Get handles GET /api/v1/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// List handles GET /api/v1/items
func (h *ItemHandler) List(c *gin.Context) {
	page, err := h.service.ListItems(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /api/v1/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req appcatalog.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete handles DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
