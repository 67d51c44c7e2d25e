package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/trade"
)

// PurchaseOrderService implements the purchase order use cases. Vendor
// balances move with each order mutation: created orders add to the running
// totals, edits move them between vendors, deletions subtract them.
type PurchaseOrderService struct {
	repos  ledger.Repositories
	scope  ledger.TransactionScope
	cache  ItemCacheInvalidator
	logger *zap.Logger
}

// NewPurchaseOrderService creates a purchase order service
func NewPurchaseOrderService(repos ledger.Repositories, scope ledger.TransactionScope, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{repos: repos, scope: scope, logger: logger}
}

// SetItemCache wires the item cache used to drop stale reads after stock
// movements
func (s *PurchaseOrderService) SetItemCache(cache ItemCacheInvalidator) {
	s.cache = cache
}

// CreateOrder records a replenishment: stock is added, the order saved and
// the vendor's running balances increased atomically.
func (s *PurchaseOrderService) CreateOrder(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid vendor id: "+req.VendorID)
	}

	var created *trade.PurchaseOrder
	err = s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		vendor, err := repos.Vendors().FindByID(ctx, vendorID)
		if err != nil {
			return err
		}

		stockLedger, err := loadStockLedger(ctx, repos, purchaseLineItemIDs(req.Lines))
		if err != nil {
			return err
		}

		lines, err := buildPurchaseLines(req.Lines, stockLedger)
		if err != nil {
			return err
		}

		order, err := trade.NewPurchaseOrder(vendorID, lines, req.Discount, trade.OrderDiscountType(req.DiscountType), req.PayAmount, orDate(req.Date))
		if err != nil {
			return err
		}

		if err := stockLedger.Apply(lines.StockLines(), catalog.StockIn); err != nil {
			return err
		}
		if err := persistTouched(ctx, repos, stockLedger, lines.StockLines()); err != nil {
			return err
		}
		if err := repos.PurchaseOrders().Save(ctx, order); err != nil {
			return err
		}

		vendor.ApplyPurchase(order.TotalBuyAmount, order.DueAmount())
		if err := repos.Vendors().Update(ctx, vendor); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateItems(ctx, stockLineItemIDs(created.Lines.StockLines()))
	s.logger.Info("purchase order created",
		zap.String("order_id", created.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.Float64("total", created.TotalBuyAmount))
	return toPurchaseOrderResponse(created), nil
}

// GetOrder returns one purchase order
func (s *PurchaseOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.repos.PurchaseOrders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

// ListOrders returns purchase orders matching the filter
func (s *PurchaseOrderService) ListOrders(ctx context.Context, filter shared.Filter) ([]*PurchaseOrderResponse, error) {
	orders, err := s.repos.PurchaseOrders().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*PurchaseOrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toPurchaseOrderResponse(order))
	}
	return responses, nil
}

// ListVendorOrders returns all purchase orders of one vendor
func (s *PurchaseOrderService) ListVendorOrders(ctx context.Context, vendorID uuid.UUID) ([]*PurchaseOrderResponse, error) {
	orders, err := s.repos.PurchaseOrders().FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	responses := make([]*PurchaseOrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toPurchaseOrderResponse(order))
	}
	return responses, nil
}

// UpdateOrder replaces a purchase order's content. The old totals are
// subtracted from the previous vendor, the new totals added to the new one,
// and the stock movement exchanged. A previous vendor that was deleted in
// the meantime is skipped.
func (s *PurchaseOrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid vendor id: "+req.VendorID)
	}

	var updated *trade.PurchaseOrder
	var touched []uuid.UUID
	err = s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		existing, err := repos.PurchaseOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}

		vendor, err := repos.Vendors().FindByID(ctx, vendorID)
		if err != nil {
			return err
		}

		if err := s.revertVendorTotals(ctx, repos, existing, vendor); err != nil {
			return err
		}

		itemIDs := unionItemIDs(stockLineItemIDs(existing.Lines.StockLines()), purchaseLineItemIDs(req.Lines))
		touched = itemIDs
		stockLedger, err := loadStockLedger(ctx, repos, itemIDs)
		if err != nil {
			return err
		}
		stockLedger.Revert(existing.Lines.StockLines(), catalog.StockIn)

		lines, err := buildPurchaseLines(req.Lines, stockLedger)
		if err != nil {
			return err
		}

		order, err := trade.NewPurchaseOrder(vendorID, lines, req.Discount, trade.OrderDiscountType(req.DiscountType), req.PayAmount, orDate(req.Date))
		if err != nil {
			return err
		}
		order.ID = existing.ID
		order.CreatedAt = existing.CreatedAt

		if err := stockLedger.Apply(lines.StockLines(), catalog.StockIn); err != nil {
			return err
		}

		touchedLines := append(existing.Lines.StockLines(), lines.StockLines()...)
		if err := persistTouched(ctx, repos, stockLedger, touchedLines); err != nil {
			return err
		}
		if err := repos.PurchaseOrders().Update(ctx, order); err != nil {
			return err
		}

		vendor.ApplyPurchase(order.TotalBuyAmount, order.DueAmount())
		if err := repos.Vendors().Update(ctx, vendor); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateItems(ctx, touched)
	s.logger.Info("purchase order updated", zap.String("order_id", id.String()))
	return toPurchaseOrderResponse(updated), nil
}

// DeleteOrder removes a purchase order, draining its stock back out and
// subtracting its totals from the vendor. A vendor that no longer exists is
// tolerated.
func (s *PurchaseOrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	var touched []uuid.UUID
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		existing, err := repos.PurchaseOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		touched = stockLineItemIDs(existing.Lines.StockLines())

		stockLedger, err := loadStockLedger(ctx, repos, stockLineItemIDs(existing.Lines.StockLines()))
		if err != nil {
			return err
		}
		stockLedger.Revert(existing.Lines.StockLines(), catalog.StockIn)

		if err := persistTouched(ctx, repos, stockLedger, existing.Lines.StockLines()); err != nil {
			return err
		}
		if err := repos.PurchaseOrders().Delete(ctx, id); err != nil {
			return err
		}
		return s.revertVendorTotals(ctx, repos, existing, nil)
	})
	if err != nil {
		return err
	}

	s.invalidateItems(ctx, touched)
	s.logger.Info("purchase order deleted", zap.String("order_id", id.String()))
	return nil
}

func (s *PurchaseOrderService) invalidateItems(ctx context.Context, ids []uuid.UUID) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
}

// revertVendorTotals subtracts an order's totals from its vendor. When the
// order still belongs to alreadyLoaded, that instance is mutated in place so
// a following ApplyPurchase lands on the same record; a vendor that no
// longer exists is skipped.
func (s *PurchaseOrderService) revertVendorTotals(ctx context.Context, repos ledger.Repositories, order *trade.PurchaseOrder, alreadyLoaded *partner.Vendor) error {
	if alreadyLoaded != nil && alreadyLoaded.ID == order.VendorID {
		alreadyLoaded.RevertPurchase(order.TotalBuyAmount, order.DueAmount())
		return nil
	}

	previous, err := repos.Vendors().FindByID(ctx, order.VendorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	previous.RevertPurchase(order.TotalBuyAmount, order.DueAmount())
	return repos.Vendors().Update(ctx, previous)
}

func buildPurchaseLines(reqs []PurchaseLineRequest, stockLedger *catalog.StockLedger) (trade.PurchaseLines, error) {
	lines := make(trade.PurchaseLines, 0, len(reqs))
	for _, req := range reqs {
		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid item id: "+req.ItemID)
		}

		line := trade.PurchaseLine{
			ItemID:   itemID,
			Name:     req.Name,
			Quantity: req.Quantity,
		}
		if req.BuyingPrice != nil {
			line.BuyingPrice = *req.BuyingPrice
		}

		if item, ok := stockLedger.Item(itemID); ok {
			if line.Name == "" {
				line.Name = item.Name
			}
			if req.BuyingPrice == nil {
				line.BuyingPrice = item.BuyingPrice
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func purchaseLineItemIDs(reqs []PurchaseLineRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		if id, err := uuid.Parse(req.ItemID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
