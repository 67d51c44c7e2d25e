// Package ledger holds the transactional core shared by all write paths:
// the repository bundle a transaction exposes and the derived-balance
// maintenance that must run inside it.
package ledger

import (
	"context"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/trade"
)

// Repositories bundles every repository bound to a single transaction
type Repositories interface {
	Items() catalog.ItemRepository
	Discounts() catalog.DiscountRepository
	Customers() partner.CustomerRepository
	Vendors() partner.VendorRepository
	SalesOrders() trade.SalesOrderRepository
	PurchaseOrders() trade.PurchaseOrderRepository
}

// TransactionScope runs a unit of work atomically. An error from fn rolls
// back every repository write made through the bundle.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
