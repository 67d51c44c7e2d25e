package catalog

import (
	"time"

	"github.com/ims/backend/internal/domain/catalog"
)

// CreateItemRequest carries the fields for a new item
type CreateItemRequest struct {
	Name            string  `json:"name" binding:"required"`
	Stock           float64 `json:"stock" binding:"gte=0"`
	VendorID        *string `json:"vendorId"`
	BuyingPrice     float64 `json:"buyingPrice" binding:"gte=0"`
	SellingPrice    float64 `json:"sellingPrice" binding:"gte=0"`
	OriginalPrice   float64 `json:"originalPrice" binding:"gte=0"`
	MeasurementType string  `json:"measurementType"`
}

// UpdateItemRequest carries a partial item update; nil fields are untouched
type UpdateItemRequest struct {
	Name            *string  `json:"name"`
	Stock           *float64 `json:"stock"`
	VendorID        *string  `json:"vendorId"`
	BuyingPrice     *float64 `json:"buyingPrice"`
	SellingPrice    *float64 `json:"sellingPrice"`
	OriginalPrice   *float64 `json:"originalPrice"`
	MeasurementType *string  `json:"measurementType"`
}

// ItemResponse is the outward representation of an item
type ItemResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Stock           float64   `json:"stock"`
	VendorID        *string   `json:"vendorId,omitempty"`
	BuyingPrice     float64   `json:"buyingPrice"`
	SellingPrice    float64   `json:"sellingPrice"`
	OriginalPrice   float64   `json:"originalPrice"`
	MeasurementType string    `json:"measurementType"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toItemResponse(item *catalog.Item) *ItemResponse {
	resp := &ItemResponse{
		ID:              item.ID.String(),
		Name:            item.Name,
		Stock:           item.Stock,
		BuyingPrice:     item.BuyingPrice,
		SellingPrice:    item.SellingPrice,
		OriginalPrice:   item.OriginalPrice,
		MeasurementType: item.MeasurementType,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
	if item.VendorID != nil {
		id := item.VendorID.String()
		resp.VendorID = &id
	}
	return resp
}

// CreateDiscountRequest carries the fields for a new discount rule
type CreateDiscountRequest struct {
	Name       string     `json:"name" binding:"required"`
	Type       string     `json:"type" binding:"required,oneof=percent amount"`
	Value      float64    `json:"value" binding:"gte=0"`
	Scope      []string   `json:"applicableProducts" binding:"required,min=1"`
	ValidFrom  *time.Time `json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`
}

// UpdateDiscountRequest carries a discount update
type UpdateDiscountRequest struct {
	Name       string     `json:"name" binding:"required"`
	Type       string     `json:"type" binding:"required,oneof=percent amount"`
	Value      float64    `json:"value" binding:"gte=0"`
	Scope      []string   `json:"applicableProducts" binding:"required,min=1"`
	Active     *bool      `json:"active"`
	ValidFrom  *time.Time `json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`
}

// DiscountResponse is the outward representation of a discount
type DiscountResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Value      float64    `json:"value"`
	Scope      []string   `json:"applicableProducts"`
	Active     bool       `json:"active"`
	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func toDiscountResponse(d *catalog.Discount) *DiscountResponse {
	return &DiscountResponse{
		ID:         d.ID.String(),
		Name:       d.Name,
		Type:       string(d.Type),
		Value:      d.Value,
		Scope:      d.Scope,
		Active:     d.Active,
		ValidFrom:  d.ValidFrom,
		ValidUntil: d.ValidUntil,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
