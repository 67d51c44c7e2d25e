package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// DefaultMeasurementType is used when an item is created without a unit label.
const DefaultMeasurementType = "pcs"

// Item represents a stocked product. It is the aggregate root for stock
// operations: the stock field is owned by the stock ledger and must only be
// changed through ledger application (see StockLedger) or an explicit
// administrative stock set.
type Item struct {
	shared.BaseEntity
	Name            string
	Stock           float64
	VendorID        *uuid.UUID
	BuyingPrice     float64
	SellingPrice    float64
	OriginalPrice   float64
	MeasurementType string
}

// NewItem creates a new item with required fields
func NewItem(name string, stock float64, vendorID *uuid.UUID) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item stock cannot be negative")
	}

	return &Item{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Stock:           stock,
		VendorID:        vendorID,
		MeasurementType: DefaultMeasurementType,
	}, nil
}

// Rename updates the item name
func (i *Item) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}
	i.Name = name
	i.UpdatedAt = time.Now()
	return nil
}

// SetPrices updates the buying, selling and original prices
func (i *Item) SetPrices(buying, selling, original float64) error {
	if buying < 0 || selling < 0 || original < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Prices cannot be negative")
	}
	i.BuyingPrice = buying
	i.SellingPrice = selling
	i.OriginalPrice = original
	i.UpdatedAt = time.Now()
	return nil
}

// SetMeasurementType updates the unit label
func (i *Item) SetMeasurementType(unit string) {
	if unit == "" {
		unit = DefaultMeasurementType
	}
	i.MeasurementType = unit
	i.UpdatedAt = time.Now()
}

// SetVendor updates the supplying vendor reference (nil clears it)
func (i *Item) SetVendor(vendorID *uuid.UUID) {
	i.VendorID = vendorID
	i.UpdatedAt = time.Now()
}

// SetStock sets the stock level directly (administrative correction, not a
// ledger movement)
func (i *Item) SetStock(stock float64) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Item stock cannot be negative")
	}
	i.Stock = stock
	i.UpdatedAt = time.Now()
	return nil
}

// PriceBase returns the price a discount is computed against: the original
// list price, falling back to the current selling price when no list price
// is recorded.
func (i *Item) PriceBase() float64 {
	if i.OriginalPrice > 0 {
		return i.OriginalPrice
	}
	return i.SellingPrice
}

// ApplySellingPrice persists a resolver-computed selling price onto the item.
// Returns true if the price actually changed.
func (i *Item) ApplySellingPrice(price float64) bool {
	if i.SellingPrice == price {
		return false
	}
	i.SellingPrice = price
	i.UpdatedAt = time.Now()
	return true
}

// CanFulfill returns true if the available stock covers the requested quantity
func (i *Item) CanFulfill(quantity float64) bool {
	return i.Stock >= quantity
}
