package catalog

import (
	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// StockLine is one movement against a single item
type StockLine struct {
	ItemID   uuid.UUID
	Quantity float64
}

// StockDirection is the sign of a ledger application
type StockDirection int

const (
	// StockOut consumes stock (sales)
	StockOut StockDirection = -1
	// StockIn replenishes stock (purchases, sale reversals)
	StockIn StockDirection = 1
)

// StockLedger applies batches of stock movements against a set of loaded
// items. All lines are validated before any item is mutated, so a failing
// batch leaves every item untouched.
type StockLedger struct {
	items map[uuid.UUID]*Item
}

// NewStockLedger builds a ledger over the given items
func NewStockLedger(items []*Item) *StockLedger {
	byID := make(map[uuid.UUID]*Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &StockLedger{items: byID}
}

// Item returns the loaded item for an id, if present
func (l *StockLedger) Item(id uuid.UUID) (*Item, bool) {
	item, ok := l.items[id]
	return item, ok
}

// Apply validates every line against the loaded items and, only if all pass,
// adjusts stock by direction*quantity. For StockOut the check is existence
// plus sufficient stock; for StockIn only existence.
func (l *StockLedger) Apply(lines []StockLine, direction StockDirection) error {
	for _, line := range lines {
		item, ok := l.items[line.ItemID]
		if !ok {
			return shared.NewDomainError("NOT_FOUND", "Item "+line.ItemID.String()+" not found")
		}
		if direction == StockOut && !item.CanFulfill(line.Quantity) {
			return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for item "+item.Name)
		}
	}

	for _, line := range lines {
		item := l.items[line.ItemID]
		item.Stock += float64(direction) * line.Quantity
	}
	return nil
}

// Revert applies the inverse of a previous application. Lines whose item no
// longer exists are skipped, so reverting an old order tolerates items that
// were deleted in the meantime.
func (l *StockLedger) Revert(lines []StockLine, direction StockDirection) {
	for _, line := range lines {
		item, ok := l.items[line.ItemID]
		if !ok {
			continue
		}
		item.Stock -= float64(direction) * line.Quantity
	}
}

// Touched returns the items referenced by the given lines, for persistence
// of a completed application.
func (l *StockLedger) Touched(lines []StockLine) []*Item {
	seen := make(map[uuid.UUID]bool, len(lines))
	touched := make([]*Item, 0, len(lines))
	for _, line := range lines {
		if seen[line.ItemID] {
			continue
		}
		seen[line.ItemID] = true
		if item, ok := l.items[line.ItemID]; ok {
			touched = append(touched, item)
		}
	}
	return touched
}
