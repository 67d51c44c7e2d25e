package trade

import (
	"sort"
	"time"
)

// PaymentTarget is anything a bulk due payment can be allocated against.
// Both sales orders and purchase orders satisfy it.
type PaymentTarget interface {
	Outstanding() float64
	OccurredAt() time.Time
	ApplyPayment(amount float64) float64
}

// Outstanding returns the order's unpaid due
func (o *SalesOrder) Outstanding() float64 { return o.Due() }

// OccurredAt returns the order date
func (o *SalesOrder) OccurredAt() time.Time { return o.Date }

// Outstanding returns the order's unpaid due
func (o *PurchaseOrder) Outstanding() float64 { return o.DueAmount() }

// OccurredAt returns the order date
func (o *PurchaseOrder) OccurredAt() time.Time { return o.Date }

// AllocationResult reports how a bulk payment was distributed
type AllocationResult struct {
	Applied   float64
	Remainder float64
	Settled   int
}

// AllocatePayment distributes an amount across the targets oldest first.
// Each target absorbs up to its outstanding due before the next is touched.
// Any remainder after the last target is reported but not retained as
// credit. The sort is stable so targets sharing a date keep their input
// order.
func AllocatePayment(targets []PaymentTarget, amount float64) AllocationResult {
	ordered := make([]PaymentTarget, len(targets))
	copy(ordered, targets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OccurredAt().Before(ordered[j].OccurredAt())
	})

	result := AllocationResult{Remainder: amount}
	for _, target := range ordered {
		if result.Remainder <= 0 {
			break
		}
		paid := target.ApplyPayment(result.Remainder)
		result.Applied += paid
		result.Remainder -= paid
		if paid > 0 && target.Outstanding() == 0 {
			result.Settled++
		}
	}
	return result
}
