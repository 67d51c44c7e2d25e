// Package ledgertest provides testify mocks for the repository bundle and a
// pass-through transaction scope, shared by application-service tests.
package ledgertest

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/trade"
)

// ItemRepository is a mock catalog.ItemRepository
type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *ItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *ItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *ItemRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *ItemRepository) Update(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ItemRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// DiscountRepository is a mock catalog.DiscountRepository
type DiscountRepository struct {
	mock.Mock
}

func (m *DiscountRepository) Save(ctx context.Context, discount *catalog.Discount) error {
	return m.Called(ctx, discount).Error(0)
}

func (m *DiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Discount), args.Error(1)
}

func (m *DiscountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Discount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Discount), args.Error(1)
}

func (m *DiscountRepository) FindActive(ctx context.Context) ([]*catalog.Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Discount), args.Error(1)
}

func (m *DiscountRepository) Update(ctx context.Context, discount *catalog.Discount) error {
	return m.Called(ctx, discount).Error(0)
}

func (m *DiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// CustomerRepository is a mock partner.CustomerRepository
type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *CustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Customer), args.Error(1)
}

func (m *CustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// VendorRepository is a mock partner.VendorRepository
type VendorRepository struct {
	mock.Mock
}

func (m *VendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return m.Called(ctx, vendor).Error(0)
}

func (m *VendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *VendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Vendor), args.Error(1)
}

func (m *VendorRepository) Update(ctx context.Context, vendor *partner.Vendor) error {
	return m.Called(ctx, vendor).Error(0)
}

func (m *VendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// SalesOrderRepository is a mock trade.SalesOrderRepository
type SalesOrderRepository struct {
	mock.Mock
}

func (m *SalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *SalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *SalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.SalesOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.SalesOrder), args.Error(1)
}

func (m *SalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*trade.SalesOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.SalesOrder), args.Error(1)
}

func (m *SalesOrderRepository) FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]*trade.SalesOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.SalesOrder), args.Error(1)
}

func (m *SalesOrderRepository) Update(ctx context.Context, order *trade.SalesOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *SalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// PurchaseOrderRepository is a mock trade.PurchaseOrderRepository
type PurchaseOrderRepository struct {
	mock.Mock
}

func (m *PurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *PurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *PurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.PurchaseOrder), args.Error(1)
}

func (m *PurchaseOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*trade.PurchaseOrder, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.PurchaseOrder), args.Error(1)
}

func (m *PurchaseOrderRepository) FindUnpaidByVendor(ctx context.Context, vendorID uuid.UUID) ([]*trade.PurchaseOrder, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.PurchaseOrder), args.Error(1)
}

func (m *PurchaseOrderRepository) Update(ctx context.Context, order *trade.PurchaseOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *PurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Repositories bundles the mocks behind the transactional interface
type Repositories struct {
	ItemRepo          *ItemRepository
	DiscountRepo      *DiscountRepository
	CustomerRepo      *CustomerRepository
	VendorRepo        *VendorRepository
	SalesOrderRepo    *SalesOrderRepository
	PurchaseOrderRepo *PurchaseOrderRepository
}

// NewRepositories creates a fully mocked bundle
func NewRepositories() *Repositories {
	return &Repositories{
		ItemRepo:          new(ItemRepository),
		DiscountRepo:      new(DiscountRepository),
		CustomerRepo:      new(CustomerRepository),
		VendorRepo:        new(VendorRepository),
		SalesOrderRepo:    new(SalesOrderRepository),
		PurchaseOrderRepo: new(PurchaseOrderRepository),
	}
}

func (r *Repositories) Items() catalog.ItemRepository                { return r.ItemRepo }
func (r *Repositories) Discounts() catalog.DiscountRepository        { return r.DiscountRepo }
func (r *Repositories) Customers() partner.CustomerRepository        { return r.CustomerRepo }
func (r *Repositories) Vendors() partner.VendorRepository            { return r.VendorRepo }
func (r *Repositories) SalesOrders() trade.SalesOrderRepository      { return r.SalesOrderRepo }
func (r *Repositories) PurchaseOrders() trade.PurchaseOrderRepository {
	return r.PurchaseOrderRepo
}

// AssertExpectations asserts every mock in the bundle
func (r *Repositories) AssertExpectations(t mock.TestingT) {
	r.ItemRepo.AssertExpectations(t)
	r.DiscountRepo.AssertExpectations(t)
	r.CustomerRepo.AssertExpectations(t)
	r.VendorRepo.AssertExpectations(t)
	r.SalesOrderRepo.AssertExpectations(t)
	r.PurchaseOrderRepo.AssertExpectations(t)
}

// Scope is a pass-through transaction scope over a mocked bundle
type Scope struct {
	Repos *Repositories
}

// NewScope wraps a bundle in a pass-through scope
func NewScope(repos *Repositories) *Scope {
	return &Scope{Repos: repos}
}

// Execute runs fn directly against the mocked bundle
func (s *Scope) Execute(_ context.Context, fn func(repos ledger.Repositories) error) error {
	return fn(s.Repos)
}
