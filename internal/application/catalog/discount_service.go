package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/pricing"
	"github.com/ims/backend/internal/domain/shared"
)

// DiscountService implements the discount use cases. Every mutation ends
// with a full selling-price recompute so item prices always reflect the
// current rule set.
type DiscountService struct {
	repos    ledger.Repositories
	scope    ledger.TransactionScope
	resolver *pricing.Resolver
	cache    ItemCache
	logger   *zap.Logger
}

// NewDiscountService creates a discount service
func NewDiscountService(repos ledger.Repositories, scope ledger.TransactionScope, resolver *pricing.Resolver, cache ItemCache, logger *zap.Logger) *DiscountService {
	return &DiscountService{
		repos:    repos,
		scope:    scope,
		resolver: resolver,
		cache:    cache,
		logger:   logger,
	}
}

// CreateDiscount creates a rule and reprices the catalog
func (s *DiscountService) CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*DiscountResponse, error) {
	var created *catalog.Discount
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		discount, err := catalog.NewDiscount(req.Name, catalog.DiscountType(req.Type), req.Value, catalog.ProductScope(req.Scope))
		if err != nil {
			return err
		}
		if err := discount.SetValidity(req.ValidFrom, req.ValidUntil); err != nil {
			return err
		}
		if err := repos.Discounts().Save(ctx, discount); err != nil {
			return err
		}
		created = discount
		return s.repriceCatalog(ctx, repos)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("discount created", zap.String("discount_id", created.ID.String()), zap.String("name", created.Name))
	return toDiscountResponse(created), nil
}

// GetDiscount returns one discount
func (s *DiscountService) GetDiscount(ctx context.Context, id uuid.UUID) (*DiscountResponse, error) {
	discount, err := s.repos.Discounts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDiscountResponse(discount), nil
}

// ListDiscounts returns discounts matching the filter
func (s *DiscountService) ListDiscounts(ctx context.Context, filter shared.Filter) ([]*DiscountResponse, error) {
	discounts, err := s.repos.Discounts().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*DiscountResponse, 0, len(discounts))
	for _, discount := range discounts {
		responses = append(responses, toDiscountResponse(discount))
	}
	return responses, nil
}

// UpdateDiscount replaces a rule and reprices the catalog
func (s *DiscountService) UpdateDiscount(ctx context.Context, id uuid.UUID, req UpdateDiscountRequest) (*DiscountResponse, error) {
	var updated *catalog.Discount
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		discount, err := repos.Discounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := discount.Update(req.Name, catalog.DiscountType(req.Type), req.Value, catalog.ProductScope(req.Scope)); err != nil {
			return err
		}
		if err := discount.SetValidity(req.ValidFrom, req.ValidUntil); err != nil {
			return err
		}
		if req.Active != nil {
			if *req.Active {
				discount.Activate()
			} else {
				discount.Deactivate()
			}
		}
		if err := repos.Discounts().Update(ctx, discount); err != nil {
			return err
		}
		updated = discount
		return s.repriceCatalog(ctx, repos)
	})
	if err != nil {
		return nil, err
	}
	return toDiscountResponse(updated), nil
}

// DeleteDiscount removes a rule and reprices the catalog
func (s *DiscountService) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		if _, err := repos.Discounts().FindByID(ctx, id); err != nil {
			return err
		}
		if err := repos.Discounts().Delete(ctx, id); err != nil {
			return err
		}
		return s.repriceCatalog(ctx, repos)
	})
	if err != nil {
		return err
	}

	s.logger.Info("discount deleted", zap.String("discount_id", id.String()))
	return nil
}

// repriceCatalog resolves every item against the remaining active rules and
// persists the items whose selling price moved.
func (s *DiscountService) repriceCatalog(ctx context.Context, repos ledger.Repositories) error {
	items, err := repos.Items().FindAll(ctx, shared.Filter{})
	if err != nil {
		return err
	}
	discounts, err := repos.Discounts().FindActive(ctx)
	if err != nil {
		return err
	}

	changed := s.resolver.Recompute(items, discounts)
	for _, item := range changed {
		if err := repos.Items().Update(ctx, item); err != nil {
			return err
		}
	}
	if len(changed) > 0 {
		ids := make([]uuid.UUID, 0, len(changed))
		for _, item := range changed {
			ids = append(ids, item.ID)
		}
		if err := s.cache.Invalidate(ctx, ids...); err != nil {
			s.logger.Warn("item cache invalidation failed", zap.Error(err))
		}
		s.logger.Info("catalog repriced", zap.Int("items_changed", len(changed)))
	}
	return nil
}
