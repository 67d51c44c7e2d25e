package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/application/ledger/ledgertest"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/trade"
)

func customerOrder(t *testing.T, customerID uuid.UUID, total, paid float64) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(&customerID, trade.TempCustomer{}, trade.OrderLines{
		{ItemID: uuid.New(), Name: "Widget", Quantity: 1, Price: total, Unit: "pcs"},
	}, 0, trade.OrderDiscountAmount, paid, time.Now())
	require.NoError(t, err)
	return order
}

func TestDueLedger_RefreshCustomerDue(t *testing.T) {
	ctx := context.Background()
	dueLedger := ledger.NewDueLedger()

	t.Run("sums unpaid remainder of all orders", func(t *testing.T) {
		customerID := uuid.New()
		customer, err := partner.NewCustomer("Alice", "", "")
		require.NoError(t, err)
		customer.ID = customerID
		customer.SetDue(999)

		repos := ledgertest.NewRepositories()
		repos.SalesOrderRepo.On("FindByCustomer", ctx, customerID).Return([]*trade.SalesOrder{
			customerOrder(t, customerID, 100, 40),
			customerOrder(t, customerID, 50, 50),
			customerOrder(t, customerID, 30, 0),
		}, nil)
		repos.CustomerRepo.On("FindByID", ctx, customerID).Return(customer, nil)
		repos.CustomerRepo.On("Update", ctx, customer).Return(nil)

		updated, err := dueLedger.RefreshCustomerDue(ctx, repos, customerID)

		require.NoError(t, err)
		assert.Equal(t, 90.0, updated.Due)
		repos.AssertExpectations(t)
	})

	t.Run("creates stub when customer is missing", func(t *testing.T) {
		customerID := uuid.New()

		repos := ledgertest.NewRepositories()
		repos.SalesOrderRepo.On("FindByCustomer", ctx, customerID).Return([]*trade.SalesOrder{
			customerOrder(t, customerID, 80, 20),
		}, nil)
		repos.CustomerRepo.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)
		repos.CustomerRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		stub, err := dueLedger.RefreshCustomerDue(ctx, repos, customerID)

		require.NoError(t, err)
		assert.Equal(t, customerID, stub.ID)
		assert.Equal(t, partner.StubCustomerName, stub.Name)
		assert.Equal(t, 60.0, stub.Due)
		repos.AssertExpectations(t)
	})

	t.Run("no orders resets due to zero", func(t *testing.T) {
		customerID := uuid.New()
		customer, err := partner.NewCustomer("Bob", "", "")
		require.NoError(t, err)
		customer.ID = customerID
		customer.SetDue(120)

		repos := ledgertest.NewRepositories()
		repos.SalesOrderRepo.On("FindByCustomer", ctx, customerID).Return([]*trade.SalesOrder{}, nil)
		repos.CustomerRepo.On("FindByID", ctx, customerID).Return(customer, nil)
		repos.CustomerRepo.On("Update", ctx, customer).Return(nil)

		updated, err := dueLedger.RefreshCustomerDue(ctx, repos, customerID)

		require.NoError(t, err)
		assert.Equal(t, 0.0, updated.Due)
	})
}

func TestDueLedger_RefreshVendorDue(t *testing.T) {
	ctx := context.Background()
	dueLedger := ledger.NewDueLedger()

	vendorID := uuid.New()
	vendor, err := partner.NewVendor("Acme Supplies", "", "")
	require.NoError(t, err)
	vendor.ID = vendorID
	vendor.ApplyPurchase(500, 500)

	po1, err := trade.NewPurchaseOrder(vendorID, trade.PurchaseLines{
		{ItemID: uuid.New(), Name: "Widget", Quantity: 10, BuyingPrice: 20},
	}, 0, trade.OrderDiscountAmount, 150, time.Now())
	require.NoError(t, err)
	po2, err := trade.NewPurchaseOrder(vendorID, trade.PurchaseLines{
		{ItemID: uuid.New(), Name: "Gadget", Quantity: 5, BuyingPrice: 60},
	}, 0, trade.OrderDiscountAmount, 300, time.Now())
	require.NoError(t, err)

	repos := ledgertest.NewRepositories()
	repos.PurchaseOrderRepo.On("FindByVendor", ctx, vendorID).Return([]*trade.PurchaseOrder{po1, po2}, nil)
	repos.VendorRepo.On("FindByID", ctx, vendorID).Return(vendor, nil)
	repos.VendorRepo.On("Update", ctx, vendor).Return(nil)

	updated, err := dueLedger.RefreshVendorDue(ctx, repos, vendorID)

	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.DueAmount)
	assert.Equal(t, 500.0, updated.TotalPurchase)
	repos.AssertExpectations(t)
}

var _ ledger.TransactionScope = (*ledgertest.Scope)(nil)
