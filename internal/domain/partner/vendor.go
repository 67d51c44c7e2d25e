package partner

import (
	"time"

	"github.com/ims/backend/internal/domain/shared"
)

// Vendor is a supplier. Unlike customer dues, vendor balances are maintained
// incrementally: each purchase order mutation adjusts the running due and
// total purchase figures rather than recomputing them from scratch.
type Vendor struct {
	shared.BaseEntity
	Name          string
	Phone         string
	Address       string
	DueAmount     float64
	TotalPurchase float64
}

// NewVendor creates a new vendor
func NewVendor(name, phone, address string) (*Vendor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Vendor name cannot be empty")
	}

	return &Vendor{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Address:    address,
	}, nil
}

// UpdateDetails updates the vendor's contact fields
func (v *Vendor) UpdateDetails(name, phone, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Vendor name cannot be empty")
	}
	v.Name = name
	v.Phone = phone
	v.Address = address
	v.UpdatedAt = time.Now()
	return nil
}

// ApplyPurchase adds a purchase order's totals to the running balances
func (v *Vendor) ApplyPurchase(totalAmount, dueAmount float64) {
	v.TotalPurchase += totalAmount
	v.DueAmount += dueAmount
	v.UpdatedAt = time.Now()
}

// RevertPurchase removes a purchase order's totals from the running balances
func (v *Vendor) RevertPurchase(totalAmount, dueAmount float64) {
	v.TotalPurchase -= totalAmount
	v.DueAmount -= dueAmount
	v.UpdatedAt = time.Now()
}

// SetDueAmount replaces the due balance after a payment allocation resum
func (v *Vendor) SetDueAmount(due float64) {
	v.DueAmount = due
	v.UpdatedAt = time.Now()
}

// EnsureDeletable returns an error if the vendor has a nonzero due balance
func (v *Vendor) EnsureDeletable() error {
	if v.DueAmount != 0 {
		return shared.NewDomainError("BUSINESS_RULE_VIOLATION", "Cannot delete vendor with outstanding due")
	}
	return nil
}
