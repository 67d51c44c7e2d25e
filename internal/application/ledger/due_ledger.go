package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
)

// DueLedger maintains the derived partner balances. Customer dues are always
// recomputed from the customer's surviving orders; vendor dues are normally
// adjusted incrementally by the purchase flow and only resummed here after a
// bulk payment.
type DueLedger struct{}

// NewDueLedger creates a due ledger
func NewDueLedger() *DueLedger {
	return &DueLedger{}
}

// RefreshCustomerDue recomputes a customer's due from all of their orders
// and persists it. If the customer record is missing, a placeholder is
// created so the surviving orders keep a referent.
func (l *DueLedger) RefreshCustomerDue(ctx context.Context, repos Repositories, customerID uuid.UUID) (*partner.Customer, error) {
	orders, err := repos.SalesOrders().FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, order := range orders {
		total += order.Due()
	}

	customer, err := repos.Customers().FindByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		customer = partner.NewStubCustomer(customerID)
		customer.SetDue(total)
		if err := repos.Customers().Save(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	customer.SetDue(total)
	if err := repos.Customers().Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// RefreshVendorDue recomputes a vendor's due from all of their purchase orders
// and persists it. The total-purchase figure is left alone; only the due is
// brought back in line after order-level payments.
func (l *DueLedger) RefreshVendorDue(ctx context.Context, repos Repositories, vendorID uuid.UUID) (*partner.Vendor, error) {
	orders, err := repos.PurchaseOrders().FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, order := range orders {
		total += order.DueAmount()
	}

	vendor, err := repos.Vendors().FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	vendor.SetDueAmount(total)
	if err := repos.Vendors().Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}
