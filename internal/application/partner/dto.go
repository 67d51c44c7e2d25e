package partner

import (
	"time"

	"github.com/ims/backend/internal/domain/partner"
)

// CreateCustomerRequest carries the fields for a new customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerRequest carries a customer update. Due is an admin-style
// override; the ledger resums it on the next order mutation.
type UpdateCustomerRequest struct {
	Name    string   `json:"name" binding:"required"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Due     *float64 `json:"due" binding:"omitempty,gte=0"`
}

// CustomerResponse is the outward representation of a customer
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Due       float64   `json:"due"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Due:       c.Due,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CustomerSummaryResponse adds lifetime sales totals to the customer view
type CustomerSummaryResponse struct {
	CustomerResponse
	TotalBuy   float64 `json:"totalBuy"`
	TotalPaid  float64 `json:"totalPaid"`
	OrderCount int     `json:"orderCount"`
}

// CreateVendorRequest carries the fields for a new vendor
type CreateVendorRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateVendorRequest carries a vendor update
type UpdateVendorRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// VendorResponse is the outward representation of a vendor
type VendorResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	DueAmount     float64   `json:"dueAmount"`
	TotalPurchase float64   `json:"totalPurchase"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toVendorResponse(v *partner.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:            v.ID.String(),
		Name:          v.Name,
		Phone:         v.Phone,
		Address:       v.Address,
		DueAmount:     v.DueAmount,
		TotalPurchase: v.TotalPurchase,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
