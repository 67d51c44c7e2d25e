package trade_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/application/ledger/ledgertest"
	apptrade "github.com/ims/backend/internal/application/trade"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/trade"
)

func newSalesService(repos *ledgertest.Repositories) *apptrade.SalesOrderService {
	return apptrade.NewSalesOrderService(repos, ledgertest.NewScope(repos), ledger.NewDueLedger(), zap.NewNop())
}

func stockedItem(t *testing.T, name string, stock, sellingPrice float64) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(name, stock, nil)
	require.NoError(t, err)
	require.NoError(t, item.SetPrices(0, sellingPrice, 0))
	return item
}

func TestSalesOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes stock and refreshes customer due", func(t *testing.T) {
		item := stockedItem(t, "Widget", 10, 25)
		customer, err := partner.NewCustomer("Alice", "", "")
		require.NoError(t, err)
		customerID := customer.ID.String()

		repos := ledgertest.NewRepositories()
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.SalesOrderRepo.On("Save", ctx, mock.AnythingOfType("*trade.SalesOrder")).Return(nil)
		repos.SalesOrderRepo.On("FindByCustomer", ctx, customer.ID).
			Return([]*trade.SalesOrder{}, nil)
		repos.CustomerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.CustomerRepo.On("Update", ctx, customer).Return(nil)

		resp, err := newSalesService(repos).CreateOrder(ctx, apptrade.CreateOrderRequest{
			CustomerID: &customerID,
			Lines: []apptrade.OrderLineRequest{
				{ItemID: item.ID.String(), Quantity: 4},
			},
			Paid: 100,
		})

		require.NoError(t, err)
		assert.Equal(t, 6.0, item.Stock)
		assert.Equal(t, 100.0, resp.Total)
		assert.Equal(t, 0.0, resp.Due)
		// Line snapshots fall back to the item.
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, "Widget", resp.Lines[0].Name)
		assert.Equal(t, "pcs", resp.Lines[0].Unit)
		assert.Equal(t, 25.0, resp.Lines[0].Price)
		repos.AssertExpectations(t)
	})

	t.Run("temp sale skips customer refresh", func(t *testing.T) {
		item := stockedItem(t, "Widget", 10, 25)

		repos := ledgertest.NewRepositories()
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.SalesOrderRepo.On("Save", ctx, mock.AnythingOfType("*trade.SalesOrder")).Return(nil)

		resp, err := newSalesService(repos).CreateOrder(ctx, apptrade.CreateOrderRequest{
			TempCustomerName:   "Walk-in",
			TempCustomerMobile: "01711111111",
			Lines: []apptrade.OrderLineRequest{
				{ItemID: item.ID.String(), Quantity: 2},
			},
			Paid: 50,
		})

		require.NoError(t, err)
		assert.Equal(t, "Walk-in", resp.TempCustomerName)
		assert.Equal(t, "01711111111", resp.TempCustomerMobile)
		repos.AssertExpectations(t)
	})

	t.Run("insufficient stock writes nothing", func(t *testing.T) {
		item := stockedItem(t, "Widget", 3, 25)
		customerID := uuid.New().String()

		repos := ledgertest.NewRepositories()
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)

		_, err := newSalesService(repos).CreateOrder(ctx, apptrade.CreateOrderRequest{
			CustomerID: &customerID,
			Lines: []apptrade.OrderLineRequest{
				{ItemID: item.ID.String(), Quantity: 4},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, 3.0, item.Stock)
		repos.SalesOrderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown item rejects the whole order", func(t *testing.T) {
		item := stockedItem(t, "Widget", 10, 25)
		customerID := uuid.New().String()

		repos := ledgertest.NewRepositories()
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)

		_, err := newSalesService(repos).CreateOrder(ctx, apptrade.CreateOrderRequest{
			CustomerID: &customerID,
			Lines: []apptrade.OrderLineRequest{
				{ItemID: item.ID.String(), Quantity: 1},
				{ItemID: uuid.New().String(), Quantity: 1},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Equal(t, 10.0, item.Stock)
	})
}

func TestSalesOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("restores stock and refreshes due", func(t *testing.T) {
		item := stockedItem(t, "Widget", 6, 25)
		customer, err := partner.NewCustomer("Alice", "", "")
		require.NoError(t, err)

		order, err := trade.NewSalesOrder(&customer.ID, trade.TempCustomer{}, trade.OrderLines{
			{ItemID: item.ID, Name: "Widget", Quantity: 4, Price: 25, Unit: "pcs"},
		}, 0, trade.OrderDiscountAmount, 0, time.Now())
		require.NoError(t, err)

		repos := ledgertest.NewRepositories()
		repos.SalesOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.SalesOrderRepo.On("Delete", ctx, order.ID).Return(nil)
		repos.SalesOrderRepo.On("FindByCustomer", ctx, customer.ID).Return([]*trade.SalesOrder{}, nil)
		repos.CustomerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.CustomerRepo.On("Update", ctx, customer).Return(nil)

		require.NoError(t, newSalesService(repos).DeleteOrder(ctx, order.ID))
		assert.Equal(t, 10.0, item.Stock)
		assert.Equal(t, 0.0, customer.Due)
		repos.AssertExpectations(t)
	})

	t.Run("tolerates lines whose item was deleted", func(t *testing.T) {
		order, err := trade.NewSalesOrder(nil, trade.TempCustomer{Name: "Walk-in"}, trade.OrderLines{
			{ItemID: uuid.New(), Name: "Gone", Quantity: 2, Price: 5, Unit: "pcs"},
		}, 0, trade.OrderDiscountAmount, 10, time.Now())
		require.NoError(t, err)

		repos := ledgertest.NewRepositories()
		repos.SalesOrderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{}, nil)
		repos.SalesOrderRepo.On("Delete", ctx, order.ID).Return(nil)

		require.NoError(t, newSalesService(repos).DeleteOrder(ctx, order.ID))
		repos.AssertExpectations(t)
	})
}

func TestSalesOrderService_UpdateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges stock movement and reprices", func(t *testing.T) {
		item := stockedItem(t, "Widget", 6, 25)
		customer, err := partner.NewCustomer("Alice", "", "")
		require.NoError(t, err)
		customerID := customer.ID.String()

		existing, err := trade.NewSalesOrder(&customer.ID, trade.TempCustomer{}, trade.OrderLines{
			{ItemID: item.ID, Name: "Widget", Quantity: 4, Price: 25, Unit: "pcs"},
		}, 0, trade.OrderDiscountAmount, 0, time.Now())
		require.NoError(t, err)

		repos := ledgertest.NewRepositories()
		repos.SalesOrderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.SalesOrderRepo.On("Update", ctx, mock.AnythingOfType("*trade.SalesOrder")).Return(nil)
		repos.SalesOrderRepo.On("FindByCustomer", ctx, customer.ID).Return([]*trade.SalesOrder{}, nil)
		repos.CustomerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.CustomerRepo.On("Update", ctx, customer).Return(nil)

		resp, err := newSalesService(repos).UpdateOrder(ctx, existing.ID, apptrade.UpdateOrderRequest{
			CustomerID: &customerID,
			Lines: []apptrade.OrderLineRequest{
				{ItemID: item.ID.String(), Quantity: 2},
			},
			Paid: 50,
		})

		require.NoError(t, err)
		// 6 on hand, +4 reverted, -2 for the new lines.
		assert.Equal(t, 8.0, item.Stock)
		assert.Equal(t, existing.ID.String(), resp.ID)
		assert.Equal(t, 50.0, resp.Total)
		repos.AssertExpectations(t)
	})

	t.Run("rejected replacement leaves the revert to the rollback", func(t *testing.T) {
		item := stockedItem(t, "Widget", 1, 25)
		customerID := uuid.New().String()

		existing, err := trade.NewSalesOrder(nil, trade.TempCustomer{Name: "Walk-in"}, trade.OrderLines{
			{ItemID: item.ID, Name: "Widget", Quantity: 1, Price: 25, Unit: "pcs"},
		}, 0, trade.OrderDiscountAmount, 25, time.Now())
		require.NoError(t, err)

		repos := ledgertest.NewRepositories()
		repos.SalesOrderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)

		_, err = newSalesService(repos).UpdateOrder(ctx, existing.ID, apptrade.UpdateOrderRequest{
			CustomerID: &customerID,
			Lines: []apptrade.OrderLineRequest{
				{ItemID: item.ID.String(), Quantity: 50},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		repos.SalesOrderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
