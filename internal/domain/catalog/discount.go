package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// DiscountType enumerates how a discount value is interpreted
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeAmount  DiscountType = "amount"
)

// ScopeAll is the sentinel product scope meaning the discount applies to
// every item.
const ScopeAll = "all"

// ProductScope is the set of item ids a discount applies to, or the single
// sentinel ScopeAll. Stored as a JSON array.
type ProductScope []string

// Value implements driver.Valuer for database storage
func (s ProductScope) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product scope: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *ProductScope) Scan(value interface{}) error {
	if value == nil {
		*s = ProductScope{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ProductScope", value)
	}

	return json.Unmarshal(data, s)
}

// AppliesToAll returns true if the scope covers every item
func (s ProductScope) AppliesToAll() bool {
	for _, id := range s {
		if id == ScopeAll {
			return true
		}
	}
	return false
}

// Contains returns true if the scope names the given item
func (s ProductScope) Contains(itemID uuid.UUID) bool {
	want := itemID.String()
	for _, id := range s {
		if id == want {
			return true
		}
	}
	return false
}

// Discount is a pricing rule applied to a set of items. Multiple discounts
// may target the same item; the pricing resolver picks the single most
// valuable one.
type Discount struct {
	shared.BaseEntity
	Name       string
	Type       DiscountType
	Value      float64
	Scope      ProductScope
	Active     bool
	ValidFrom  *time.Time
	ValidUntil *time.Time
}

// NewDiscount creates a new discount rule
func NewDiscount(name string, discountType DiscountType, value float64, scope ProductScope) (*Discount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount name cannot be empty")
	}
	if discountType != DiscountTypePercent && discountType != DiscountTypeAmount {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount type must be percent or amount")
	}
	if value < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount value cannot be negative")
	}
	if discountType == DiscountTypePercent && value > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Percentage discount cannot exceed 100")
	}
	if len(scope) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount must target at least one product")
	}

	return &Discount{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       discountType,
		Value:      value,
		Scope:      scope,
		Active:     true,
	}, nil
}

// Update replaces the discount's rule fields
func (d *Discount) Update(name string, discountType DiscountType, value float64, scope ProductScope) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Discount name cannot be empty")
	}
	if discountType != DiscountTypePercent && discountType != DiscountTypeAmount {
		return shared.NewDomainError("INVALID_INPUT", "Discount type must be percent or amount")
	}
	if value < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Discount value cannot be negative")
	}
	if discountType == DiscountTypePercent && value > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Percentage discount cannot exceed 100")
	}
	if len(scope) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Discount must target at least one product")
	}

	d.Name = name
	d.Type = discountType
	d.Value = value
	d.Scope = scope
	d.UpdatedAt = time.Now()
	return nil
}

// SetValidity sets the optional validity window
func (d *Discount) SetValidity(from, until *time.Time) error {
	if from != nil && until != nil && until.Before(*from) {
		return shared.NewDomainError("INVALID_INPUT", "Discount validity window is inverted")
	}
	d.ValidFrom = from
	d.ValidUntil = until
	d.UpdatedAt = time.Now()
	return nil
}

// Activate enables the discount
func (d *Discount) Activate() {
	d.Active = true
	d.UpdatedAt = time.Now()
}

// Deactivate disables the discount without deleting it
func (d *Discount) Deactivate() {
	d.Active = false
	d.UpdatedAt = time.Now()
}

// IsEffective returns true if the discount is active and within its validity
// window at the given time.
func (d *Discount) IsEffective(at time.Time) bool {
	if !d.Active {
		return false
	}
	if d.ValidFrom != nil && at.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && at.After(*d.ValidUntil) {
		return false
	}
	return true
}

// AppliesTo returns true if the discount's scope covers the given item
func (d *Discount) AppliesTo(itemID uuid.UUID) bool {
	return d.Scope.AppliesToAll() || d.Scope.Contains(itemID)
}
