// Package pricing resolves the effective selling price of catalog items from
// the set of active discount rules.
package pricing

import (
	"time"

	"github.com/ims/backend/internal/domain/catalog"
)

// Resolver computes item selling prices from discount rules. Overlapping
// discounts do not stack: only the single largest discount amount is taken.
type Resolver struct {
	now func() time.Time
}

// NewResolver creates a resolver using wall-clock time
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// NewResolverAt creates a resolver with a fixed clock, for tests
func NewResolverAt(now func() time.Time) *Resolver {
	return &Resolver{now: now}
}

// BestDiscount returns the largest discount amount any effective rule grants
// the item. Each candidate is computed against the item's price base and
// capped at that base, so a discount can never push the price negative on
// its own.
func (r *Resolver) BestDiscount(item *catalog.Item, discounts []*catalog.Discount) float64 {
	at := r.now()
	base := item.PriceBase()

	best := 0.0
	for _, d := range discounts {
		if !d.IsEffective(at) || !d.AppliesTo(item.ID) {
			continue
		}

		var amount float64
		switch d.Type {
		case catalog.DiscountTypePercent:
			amount = base * d.Value / 100
		case catalog.DiscountTypeAmount:
			amount = d.Value
		default:
			continue
		}
		if amount > base {
			amount = base
		}
		if amount > best {
			best = amount
		}
	}
	return best
}

// ResolveSellingPrice returns the selling price the item should carry given
// the discount set: the price base less the best discount, floored at zero.
func (r *Resolver) ResolveSellingPrice(item *catalog.Item, discounts []*catalog.Discount) float64 {
	price := item.PriceBase() - r.BestDiscount(item, discounts)
	if price < 0 {
		return 0
	}
	return price
}

// Recompute resolves every item's selling price against the discount set and
// applies it, returning only the items whose price actually changed.
func (r *Resolver) Recompute(items []*catalog.Item, discounts []*catalog.Discount) []*catalog.Item {
	changed := make([]*catalog.Item, 0, len(items))
	for _, item := range items {
		if item.ApplySellingPrice(r.ResolveSellingPrice(item, discounts)) {
			changed = append(changed, item)
		}
	}
	return changed
}
