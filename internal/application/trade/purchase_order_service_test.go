package trade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/application/ledger/ledgertest"
	apptrade "github.com/ims/backend/internal/application/trade"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/trade"
)

func newPurchaseService(repos *ledgertest.Repositories) *apptrade.PurchaseOrderService {
	return apptrade.NewPurchaseOrderService(repos, ledgertest.NewScope(repos), zap.NewNop())
}

func testVendor(t *testing.T) *partner.Vendor {
	t.Helper()
	vendor, err := partner.NewVendor("Acme Supplies", "", "")
	require.NoError(t, err)
	return vendor
}

func TestPurchaseOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("adds stock and grows vendor balances", func(t *testing.T) {
		item := stockedItem(t, "Widget", 2, 25)
		vendor := testVendor(t)

		repos := ledgertest.NewRepositories()
		repos.VendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.PurchaseOrderRepo.On("Save", ctx, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)
		repos.VendorRepo.On("Update", ctx, vendor).Return(nil)

		price := 8.0
		resp, err := newPurchaseService(repos).CreateOrder(ctx, apptrade.CreatePurchaseOrderRequest{
			VendorID: vendor.ID.String(),
			Lines: []apptrade.PurchaseLineRequest{
				{ItemID: item.ID.String(), Quantity: 10, BuyingPrice: &price},
			},
			PayAmount: 30,
		})

		require.NoError(t, err)
		assert.Equal(t, 12.0, item.Stock)
		assert.Equal(t, 80.0, resp.TotalBuyAmount)
		assert.Equal(t, 50.0, resp.DueAmount)
		assert.Equal(t, 80.0, vendor.TotalPurchase)
		assert.Equal(t, 50.0, vendor.DueAmount)
		repos.AssertExpectations(t)
	})

	t.Run("missing vendor rejects the order", func(t *testing.T) {
		vendorID := testVendor(t).ID

		repos := ledgertest.NewRepositories()
		repos.VendorRepo.On("FindByID", ctx, vendorID).Return(nil, shared.ErrNotFound)

		price := 8.0
		_, err := newPurchaseService(repos).CreateOrder(ctx, apptrade.CreatePurchaseOrderRequest{
			VendorID: vendorID.String(),
			Lines: []apptrade.PurchaseLineRequest{
				{ItemID: stockedItem(t, "Widget", 0, 0).ID.String(), Quantity: 1, BuyingPrice: &price},
			},
		})

		require.Error(t, err)
		repos.PurchaseOrderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPurchaseOrderService_UpdateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("moves totals between vendors", func(t *testing.T) {
		item := stockedItem(t, "Widget", 10, 25)
		oldVendor := testVendor(t)
		newVendor := testVendor(t)

		existing, err := trade.NewPurchaseOrder(oldVendor.ID, trade.PurchaseLines{
			{ItemID: item.ID, Name: "Widget", Quantity: 10, BuyingPrice: 8},
		}, 0, trade.OrderDiscountAmount, 30, time.Now())
		require.NoError(t, err)
		oldVendor.ApplyPurchase(existing.TotalBuyAmount, existing.DueAmount())

		repos := ledgertest.NewRepositories()
		repos.PurchaseOrderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repos.VendorRepo.On("FindByID", ctx, newVendor.ID).Return(newVendor, nil)
		repos.VendorRepo.On("FindByID", ctx, oldVendor.ID).Return(oldVendor, nil)
		repos.VendorRepo.On("Update", ctx, oldVendor).Return(nil)
		repos.VendorRepo.On("Update", ctx, newVendor).Return(nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.PurchaseOrderRepo.On("Update", ctx, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		price := 10.0
		resp, err := newPurchaseService(repos).UpdateOrder(ctx, existing.ID, apptrade.UpdatePurchaseOrderRequest{
			VendorID: newVendor.ID.String(),
			Lines: []apptrade.PurchaseLineRequest{
				{ItemID: item.ID.String(), Quantity: 5, BuyingPrice: &price},
			},
			PayAmount: 50,
		})

		require.NoError(t, err)
		// 10 on hand, -10 reverted, +5 from the new lines.
		assert.Equal(t, 5.0, item.Stock)
		assert.Equal(t, 0.0, oldVendor.TotalPurchase)
		assert.Equal(t, 0.0, oldVendor.DueAmount)
		assert.Equal(t, 50.0, newVendor.TotalPurchase)
		assert.Equal(t, 0.0, newVendor.DueAmount)
		assert.Equal(t, existing.ID.String(), resp.ID)
		repos.AssertExpectations(t)
	})

	t.Run("same vendor is adjusted in place", func(t *testing.T) {
		item := stockedItem(t, "Widget", 10, 25)
		vendor := testVendor(t)

		existing, err := trade.NewPurchaseOrder(vendor.ID, trade.PurchaseLines{
			{ItemID: item.ID, Name: "Widget", Quantity: 10, BuyingPrice: 8},
		}, 0, trade.OrderDiscountAmount, 0, time.Now())
		require.NoError(t, err)
		vendor.ApplyPurchase(existing.TotalBuyAmount, existing.DueAmount())

		repos := ledgertest.NewRepositories()
		repos.PurchaseOrderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repos.VendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		repos.VendorRepo.On("Update", ctx, vendor).Return(nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.PurchaseOrderRepo.On("Update", ctx, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		price := 8.0
		_, err = newPurchaseService(repos).UpdateOrder(ctx, existing.ID, apptrade.UpdatePurchaseOrderRequest{
			VendorID: vendor.ID.String(),
			Lines: []apptrade.PurchaseLineRequest{
				{ItemID: item.ID.String(), Quantity: 20, BuyingPrice: &price},
			},
			PayAmount: 60,
		})

		require.NoError(t, err)
		assert.Equal(t, 160.0, vendor.TotalPurchase)
		assert.Equal(t, 100.0, vendor.DueAmount)
	})
}

func TestPurchaseOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("drains stock and shrinks vendor balances", func(t *testing.T) {
		item := stockedItem(t, "Widget", 12, 25)
		vendor := testVendor(t)

		existing, err := trade.NewPurchaseOrder(vendor.ID, trade.PurchaseLines{
			{ItemID: item.ID, Name: "Widget", Quantity: 10, BuyingPrice: 8},
		}, 0, trade.OrderDiscountAmount, 30, time.Now())
		require.NoError(t, err)
		vendor.ApplyPurchase(existing.TotalBuyAmount, existing.DueAmount())

		repos := ledgertest.NewRepositories()
		repos.PurchaseOrderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.PurchaseOrderRepo.On("Delete", ctx, existing.ID).Return(nil)
		repos.VendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		repos.VendorRepo.On("Update", ctx, vendor).Return(nil)

		require.NoError(t, newPurchaseService(repos).DeleteOrder(ctx, existing.ID))
		assert.Equal(t, 2.0, item.Stock)
		assert.Equal(t, 0.0, vendor.TotalPurchase)
		assert.Equal(t, 0.0, vendor.DueAmount)
		repos.AssertExpectations(t)
	})

	t.Run("tolerates a vendor deleted after the order", func(t *testing.T) {
		item := stockedItem(t, "Widget", 12, 25)
		vendor := testVendor(t)

		existing, err := trade.NewPurchaseOrder(vendor.ID, trade.PurchaseLines{
			{ItemID: item.ID, Name: "Widget", Quantity: 10, BuyingPrice: 8},
		}, 0, trade.OrderDiscountAmount, 80, time.Now())
		require.NoError(t, err)

		repos := ledgertest.NewRepositories()
		repos.PurchaseOrderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repos.ItemRepo.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil)
		repos.ItemRepo.On("Update", ctx, item).Return(nil)
		repos.PurchaseOrderRepo.On("Delete", ctx, existing.ID).Return(nil)
		repos.VendorRepo.On("FindByID", ctx, vendor.ID).Return(nil, shared.ErrNotFound)

		require.NoError(t, newPurchaseService(repos).DeleteOrder(ctx, existing.ID))
		assert.Equal(t, 2.0, item.Stock)
		repos.AssertExpectations(t)
	})
}
