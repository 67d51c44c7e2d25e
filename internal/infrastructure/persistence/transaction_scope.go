package persistence

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/trade"
)

// GormRepositories bundles the repositories over a single gorm handle. It
// serves both as the autocommit read bundle and as the transaction-bound
// bundle inside a scope.
type GormRepositories struct {
	items          *GormItemRepository
	discounts      *GormDiscountRepository
	customers      *GormCustomerRepository
	vendors        *GormVendorRepository
	salesOrders    *GormSalesOrderRepository
	purchaseOrders *GormPurchaseOrderRepository
}

// NewGormRepositories creates a repository bundle over the given handle
func NewGormRepositories(db *gorm.DB) *GormRepositories {
	return &GormRepositories{
		items:          NewGormItemRepository(db),
		discounts:      NewGormDiscountRepository(db),
		customers:      NewGormCustomerRepository(db),
		vendors:        NewGormVendorRepository(db),
		salesOrders:    NewGormSalesOrderRepository(db),
		purchaseOrders: NewGormPurchaseOrderRepository(db),
	}
}

func (r *GormRepositories) Items() catalog.ItemRepository                 { return r.items }
func (r *GormRepositories) Discounts() catalog.DiscountRepository         { return r.discounts }
func (r *GormRepositories) Customers() partner.CustomerRepository         { return r.customers }
func (r *GormRepositories) Vendors() partner.VendorRepository             { return r.vendors }
func (r *GormRepositories) SalesOrders() trade.SalesOrderRepository       { return r.salesOrders }
func (r *GormRepositories) PurchaseOrders() trade.PurchaseOrderRepository { return r.purchaseOrders }

// GormTransactionScope runs units of work inside a database transaction.
// Writers are additionally serialized through a process-wide mutex, so
// ledger read-modify-write sequences (stock checks, due resums, vendor
// balance adjustments) never interleave.
type GormTransactionScope struct {
	db     *gorm.DB
	writer sync.Mutex
}

// NewGormTransactionScope creates a transaction scope over the database
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a transaction with the writer lock held. An error
// from fn rolls back every write made through the bound repositories.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepositories(tx))
	})
}
