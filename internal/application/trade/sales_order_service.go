// Package trade exposes the sales and purchase order use cases
package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/trade"
)

// ItemCacheInvalidator drops cached item reads whose stock moved
type ItemCacheInvalidator interface {
	Invalidate(ctx context.Context, ids ...uuid.UUID) error
}

// SalesOrderService implements the sales order use cases. Every write runs
// inside one transaction covering the stock movement, the order record and
// the customer due refresh.
type SalesOrderService struct {
	repos     ledger.Repositories
	scope     ledger.TransactionScope
	dueLedger *ledger.DueLedger
	cache     ItemCacheInvalidator
	logger    *zap.Logger
}

// NewSalesOrderService creates a sales order service
func NewSalesOrderService(repos ledger.Repositories, scope ledger.TransactionScope, dueLedger *ledger.DueLedger, logger *zap.Logger) *SalesOrderService {
	return &SalesOrderService{
		repos:     repos,
		scope:     scope,
		dueLedger: dueLedger,
		logger:    logger,
	}
}

// SetItemCache wires the item cache used to drop stale reads after stock
// movements
func (s *SalesOrderService) SetItemCache(cache ItemCacheInvalidator) {
	s.cache = cache
}

// CreateOrder records a sale: stock is consumed, the order saved and the
// buyer's due refreshed atomically. Nothing is written if any line fails
// validation.
func (s *SalesOrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customerID, err := parseOptionalID(req.CustomerID)
	if err != nil {
		return nil, err
	}

	var created *trade.SalesOrder
	err = s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		stockLedger, err := loadStockLedger(ctx, repos, orderLineItemIDs(req.Lines))
		if err != nil {
			return err
		}

		lines, err := buildOrderLines(req.Lines, stockLedger)
		if err != nil {
			return err
		}

		order, err := trade.NewSalesOrder(customerID, trade.TempCustomer{Name: req.TempCustomerName, Mobile: req.TempCustomerMobile}, lines, req.Discount, trade.OrderDiscountType(req.DiscountType), req.Paid, orDate(req.Date))
		if err != nil {
			return err
		}

		if err := stockLedger.Apply(lines.StockLines(), catalog.StockOut); err != nil {
			return err
		}
		if err := persistTouched(ctx, repos, stockLedger, lines.StockLines()); err != nil {
			return err
		}
		if err := repos.SalesOrders().Save(ctx, order); err != nil {
			return err
		}

		if order.CustomerID != nil {
			if _, err := s.dueLedger.RefreshCustomerDue(ctx, repos, *order.CustomerID); err != nil {
				return err
			}
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateItems(ctx, stockLineItemIDs(created.Lines.StockLines()))
	s.logger.Info("sales order created",
		zap.String("order_id", created.ID.String()),
		zap.Float64("total", created.Total),
		zap.Bool("temp_sale", created.IsTempSale()))
	return toOrderResponse(created), nil
}

// GetOrder returns one sales order
func (s *SalesOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.repos.SalesOrders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListOrders returns sales orders matching the filter
func (s *SalesOrderService) ListOrders(ctx context.Context, filter shared.Filter) ([]*OrderResponse, error) {
	orders, err := s.repos.SalesOrders().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}
	return responses, nil
}

// ListCustomerOrders returns all orders of one registered customer
func (s *SalesOrderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*OrderResponse, error) {
	orders, err := s.repos.SalesOrders().FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}
	return responses, nil
}

// UpdateOrder replaces an order's content. The old stock movement is
// reverted, the new one validated and applied, and the dues of every
// affected customer refreshed. A validation failure rolls the whole
// exchange back, old movement included.
func (s *SalesOrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	customerID, err := parseOptionalID(req.CustomerID)
	if err != nil {
		return nil, err
	}

	var updated *trade.SalesOrder
	var touched []uuid.UUID
	err = s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		existing, err := repos.SalesOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}

		itemIDs := unionItemIDs(stockLineItemIDs(existing.Lines.StockLines()), orderLineItemIDs(req.Lines))
		touched = itemIDs
		stockLedger, err := loadStockLedger(ctx, repos, itemIDs)
		if err != nil {
			return err
		}

		stockLedger.Revert(existing.Lines.StockLines(), catalog.StockOut)

		lines, err := buildOrderLines(req.Lines, stockLedger)
		if err != nil {
			return err
		}

		order, err := trade.NewSalesOrder(customerID, trade.TempCustomer{Name: req.TempCustomerName, Mobile: req.TempCustomerMobile}, lines, req.Discount, trade.OrderDiscountType(req.DiscountType), req.Paid, orDate(req.Date))
		if err != nil {
			return err
		}
		order.ID = existing.ID
		order.CreatedAt = existing.CreatedAt

		if err := stockLedger.Apply(lines.StockLines(), catalog.StockOut); err != nil {
			return err
		}

		touchedLines := append(existing.Lines.StockLines(), lines.StockLines()...)
		if err := persistTouched(ctx, repos, stockLedger, touchedLines); err != nil {
			return err
		}
		if err := repos.SalesOrders().Update(ctx, order); err != nil {
			return err
		}

		for _, affected := range affectedCustomers(existing.CustomerID, order.CustomerID) {
			if _, err := s.dueLedger.RefreshCustomerDue(ctx, repos, affected); err != nil {
				return err
			}
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateItems(ctx, touched)
	s.logger.Info("sales order updated", zap.String("order_id", id.String()))
	return toOrderResponse(updated), nil
}

// DeleteOrder removes an order, restoring its stock and refreshing the
// buyer's due. Lines whose item was deleted in the meantime are skipped.
func (s *SalesOrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	var touched []uuid.UUID
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		existing, err := repos.SalesOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		touched = stockLineItemIDs(existing.Lines.StockLines())

		stockLedger, err := loadStockLedger(ctx, repos, stockLineItemIDs(existing.Lines.StockLines()))
		if err != nil {
			return err
		}
		stockLedger.Revert(existing.Lines.StockLines(), catalog.StockOut)

		if err := persistTouched(ctx, repos, stockLedger, existing.Lines.StockLines()); err != nil {
			return err
		}
		if err := repos.SalesOrders().Delete(ctx, id); err != nil {
			return err
		}

		if existing.CustomerID != nil {
			if _, err := s.dueLedger.RefreshCustomerDue(ctx, repos, *existing.CustomerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateItems(ctx, touched)
	s.logger.Info("sales order deleted", zap.String("order_id", id.String()))
	return nil
}

func (s *SalesOrderService) invalidateItems(ctx context.Context, ids []uuid.UUID) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
}

// loadStockLedger fetches the referenced items and wraps them in a ledger.
// Items missing from the result simply stay absent from the ledger; the
// following Apply reports them as not found, while Revert skips them.
func loadStockLedger(ctx context.Context, repos ledger.Repositories, ids []uuid.UUID) (*catalog.StockLedger, error) {
	items, err := repos.Items().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return catalog.NewStockLedger(items), nil
}

func persistTouched(ctx context.Context, repos ledger.Repositories, stockLedger *catalog.StockLedger, lines []catalog.StockLine) error {
	for _, item := range stockLedger.Touched(lines) {
		if err := repos.Items().Update(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// buildOrderLines resolves each requested line against the loaded items,
// snapshotting name, unit and price from the item where the request left
// them blank.
func buildOrderLines(reqs []OrderLineRequest, stockLedger *catalog.StockLedger) (trade.OrderLines, error) {
	lines := make(trade.OrderLines, 0, len(reqs))
	for _, req := range reqs {
		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid item id: "+req.ItemID)
		}

		line := trade.OrderLine{
			ItemID:   itemID,
			Name:     req.Name,
			Quantity: req.Quantity,
			Unit:     req.Unit,
		}
		if req.Price != nil {
			line.Price = *req.Price
		}

		if item, ok := stockLedger.Item(itemID); ok {
			if line.Name == "" {
				line.Name = item.Name
			}
			if line.Unit == "" {
				line.Unit = item.MeasurementType
			}
			if req.Price == nil {
				line.Price = item.SellingPrice
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func orderLineItemIDs(reqs []OrderLineRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		if id, err := uuid.Parse(req.ItemID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func stockLineItemIDs(lines []catalog.StockLine) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}
	return ids
}

func unionItemIDs(a, b []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(a)+len(b))
	union := make([]uuid.UUID, 0, len(a)+len(b))
	for _, id := range append(a, b...) {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	return union
}

func affectedCustomers(before, after *uuid.UUID) []uuid.UUID {
	var affected []uuid.UUID
	if before != nil {
		affected = append(affected, *before)
	}
	if after != nil && (before == nil || *after != *before) {
		affected = append(affected, *after)
	}
	return affected
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid id: "+*raw)
	}
	return &id, nil
}

func orDate(date *time.Time) time.Time {
	if date != nil {
		return *date
	}
	return time.Now()
}
