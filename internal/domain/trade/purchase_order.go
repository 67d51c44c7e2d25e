package trade

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/shared"
)

// PurchaseLine is one replenished item within a purchase order
type PurchaseLine struct {
	ItemID      uuid.UUID `json:"itemId"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	BuyingPrice float64   `json:"buyingPrice"`
}

// PurchaseLines is the JSON-stored line collection of a purchase order
type PurchaseLines []PurchaseLine

// Value implements driver.Valuer for database storage
func (l PurchaseLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal purchase lines: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (l *PurchaseLines) Scan(value interface{}) error {
	if value == nil {
		*l = PurchaseLines{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PurchaseLines", value)
	}

	return json.Unmarshal(data, l)
}

// StockLines converts the purchase lines to ledger movements
func (l PurchaseLines) StockLines() []catalog.StockLine {
	lines := make([]catalog.StockLine, 0, len(l))
	for _, line := range l {
		lines = append(lines, catalog.StockLine{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	return lines
}

// Subtotal sums quantity times buying price over all lines
func (l PurchaseLines) Subtotal() float64 {
	var total float64
	for _, line := range l {
		total += line.Quantity * line.BuyingPrice
	}
	return total
}

// PurchaseOrder records a stock replenishment from a vendor
type PurchaseOrder struct {
	shared.BaseEntity
	VendorID       uuid.UUID
	Lines          PurchaseLines
	Subtotal       float64
	Discount       float64
	DiscountType   OrderDiscountType
	TotalBuyAmount float64
	PayAmount      float64
	Date           time.Time
}

// NewPurchaseOrder creates a purchase order against a vendor
func NewPurchaseOrder(vendorID uuid.UUID, lines PurchaseLines, discount float64, discountType OrderDiscountType, payAmount float64, date time.Time) (*PurchaseOrder, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase order must name a vendor")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase order must contain at least one line")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Purchase line quantity must be positive")
		}
		if line.BuyingPrice < 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Purchase line price cannot be negative")
		}
	}
	if discount < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase discount cannot be negative")
	}
	if discountType == "" {
		discountType = OrderDiscountAmount
	}
	if discountType != OrderDiscountPercent && discountType != OrderDiscountAmount {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase discount type must be percent or amount")
	}
	if payAmount < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Pay amount cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	order := &PurchaseOrder{
		BaseEntity:   shared.NewBaseEntity(),
		VendorID:     vendorID,
		Lines:        lines,
		Discount:     discount,
		DiscountType: discountType,
		PayAmount:    payAmount,
		Date:         date,
	}
	order.Subtotal = lines.Subtotal()
	order.TotalBuyAmount = order.computeTotal()

	if payAmount > order.TotalBuyAmount {
		return nil, shared.NewDomainError("INVALID_INPUT", "Pay amount cannot exceed the order total")
	}
	return order, nil
}

func (o *PurchaseOrder) computeTotal() float64 {
	if o.DiscountType == OrderDiscountPercent {
		return o.Subtotal - math.Round(o.Subtotal*o.Discount/100)
	}
	return o.Subtotal - o.Discount
}

// DueAmount returns the unpaid remainder owed to the vendor
func (o *PurchaseOrder) DueAmount() float64 {
	due := o.TotalBuyAmount - o.PayAmount
	if due < 0 {
		return 0
	}
	return due
}

// ApplyPayment records a payment against the order and returns the amount
// actually absorbed, capped at the outstanding due. A full settlement sets
// PayAmount to TotalBuyAmount by assignment so the due lands on exactly zero.
func (o *PurchaseOrder) ApplyPayment(amount float64) float64 {
	due := o.DueAmount()
	if due <= 0 || amount <= 0 {
		return 0
	}
	if amount >= due {
		o.PayAmount = o.TotalBuyAmount
		o.UpdatedAt = time.Now()
		return due
	}
	o.PayAmount += amount
	o.UpdatedAt = time.Now()
	return amount
}
