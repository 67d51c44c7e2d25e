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

// OrderDiscountType enumerates how an order-level discount is interpreted
type OrderDiscountType string

const (
	OrderDiscountPercent OrderDiscountType = "percent"
	OrderDiscountAmount  OrderDiscountType = "amount"
)

// OrderLine is one sold item within a sales order. Name and Unit are
// snapshots taken at order time so the order stays readable after the item
// changes or disappears.
type OrderLine struct {
	ItemID   uuid.UUID `json:"itemId"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price"`
	Unit     string    `json:"unit"`
}

// OrderLines is the JSON-stored line collection of an order
type OrderLines []OrderLine

// Value implements driver.Valuer for database storage
func (l OrderLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order lines: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (l *OrderLines) Scan(value interface{}) error {
	if value == nil {
		*l = OrderLines{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderLines", value)
	}

	return json.Unmarshal(data, l)
}

// StockLines converts the order lines to ledger movements
func (l OrderLines) StockLines() []catalog.StockLine {
	lines := make([]catalog.StockLine, 0, len(l))
	for _, line := range l {
		lines = append(lines, catalog.StockLine{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	return lines
}

// Subtotal sums quantity times price over all lines
func (l OrderLines) Subtotal() float64 {
	var total float64
	for _, line := range l {
		total += line.Quantity * line.Price
	}
	return total
}

// TempCustomer is the walk-in buyer snapshot kept on an order that names no
// registered customer. Mobile is optional.
type TempCustomer struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// IsZero reports whether the snapshot identifies anyone
func (t TempCustomer) IsZero() bool {
	return t.Name == ""
}

// SalesOrder records a sale to either a registered customer or a one-off
// walk-in identified only by TempCustomer.
type SalesOrder struct {
	shared.BaseEntity
	CustomerID   *uuid.UUID
	TempCustomer TempCustomer
	Lines        OrderLines
	Discount     float64
	DiscountType OrderDiscountType
	Total        float64
	Paid         float64
	Date         time.Time
}

// NewSalesOrder creates a sales order. Exactly one of customerID and
// tempCustomer identifies the buyer. The total is derived from the lines and
// the order-level discount; a percent discount is rounded to the nearest
// whole currency unit before subtraction.
func NewSalesOrder(customerID *uuid.UUID, tempCustomer TempCustomer, lines OrderLines, discount float64, discountType OrderDiscountType, paid float64, date time.Time) (*SalesOrder, error) {
	if customerID == nil && tempCustomer.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must name a customer or a temp customer")
	}
	if customerID != nil && !tempCustomer.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order cannot name both a customer and a temp customer")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one line")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Order line quantity must be positive")
		}
		if line.Price < 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Order line price cannot be negative")
		}
	}
	if discount < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order discount cannot be negative")
	}
	if discountType == "" {
		discountType = OrderDiscountAmount
	}
	if discountType != OrderDiscountPercent && discountType != OrderDiscountAmount {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order discount type must be percent or amount")
	}
	if paid < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Paid amount cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	order := &SalesOrder{
		BaseEntity:   shared.NewBaseEntity(),
		CustomerID:   customerID,
		TempCustomer: tempCustomer,
		Lines:        lines,
		Discount:     discount,
		DiscountType: discountType,
		Paid:         paid,
		Date:         date,
	}
	order.Total = order.computeTotal()
	return order, nil
}

func (o *SalesOrder) computeTotal() float64 {
	subtotal := o.Lines.Subtotal()
	if o.DiscountType == OrderDiscountPercent {
		return subtotal - math.Round(subtotal*o.Discount/100)
	}
	return subtotal - o.Discount
}

// Due returns the unpaid remainder of the order
func (o *SalesOrder) Due() float64 {
	due := o.Total - o.Paid
	if due < 0 {
		return 0
	}
	return due
}

// IsTempSale reports whether the order belongs to a walk-in buyer rather
// than a registered customer.
func (o *SalesOrder) IsTempSale() bool {
	return o.CustomerID == nil
}

// ApplyPayment records a payment against the order and returns the amount
// actually absorbed, capped at the outstanding due. A full settlement sets
// Paid to Total by assignment; accumulating float increments can leave a
// residual due that keeps the order in the unpaid set.
func (o *SalesOrder) ApplyPayment(amount float64) float64 {
	due := o.Due()
	if due <= 0 || amount <= 0 {
		return 0
	}
	if amount >= due {
		o.Paid = o.Total
		o.UpdatedAt = time.Now()
		return due
	}
	o.Paid += amount
	o.UpdatedAt = time.Now()
	return amount
}
