// Package catalog exposes the item and discount use cases
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

// ItemCache is a read-through cache over item responses. A nil miss is not
// an error; cache failures are logged and ignored.
type ItemCache interface {
	Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error)
	Set(ctx context.Context, item *ItemResponse) error
	Invalidate(ctx context.Context, ids ...uuid.UUID) error
}

// ItemService implements the item use cases
type ItemService struct {
	repos    ledger.Repositories
	scope    ledger.TransactionScope
	resolver *pricing.Resolver
	cache    ItemCache
	logger   *zap.Logger
}

// NewItemService creates an item service
func NewItemService(repos ledger.Repositories, scope ledger.TransactionScope, resolver *pricing.Resolver, cache ItemCache, logger *zap.Logger) *ItemService {
	return &ItemService{
		repos:    repos,
		scope:    scope,
		resolver: resolver,
		cache:    cache,
		logger:   logger,
	}
}

// CreateItem creates an item and resolves its selling price against the
// active discounts.
func (s *ItemService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	vendorID, err := parseOptionalID(req.VendorID)
	if err != nil {
		return nil, err
	}

	var created *catalog.Item
	err = s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		item, err := catalog.NewItem(req.Name, req.Stock, vendorID)
		if err != nil {
			return err
		}
		if err := item.SetPrices(req.BuyingPrice, req.SellingPrice, req.OriginalPrice); err != nil {
			return err
		}
		item.SetMeasurementType(req.MeasurementType)

		discounts, err := repos.Discounts().FindActive(ctx)
		if err != nil {
			return err
		}
		item.ApplySellingPrice(s.resolver.ResolveSellingPrice(item, discounts))

		if err := repos.Items().Save(ctx, item); err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.String("item_id", created.ID.String()), zap.String("name", created.Name))
	return toItemResponse(created), nil
}

// GetItem returns one item, served from cache when possible
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn("item cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	item, err := s.repos.Items().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toItemResponse(item)
	if err := s.cache.Set(ctx, resp); err != nil {
		s.logger.Warn("item cache write failed", zap.Error(err))
	}
	return resp, nil
}

// ListItems returns one page of items with the overall total
func (s *ItemService) ListItems(ctx context.Context, filter shared.Filter) (*shared.Paginated[*ItemResponse], error) {
	items, err := s.repos.Items().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repos.Items().Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListVendorItems returns every item supplied by one vendor
func (s *ItemService) ListVendorItems(ctx context.Context, vendorID uuid.UUID) ([]*ItemResponse, error) {
	items, err := s.repos.Items().FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}
	return responses, nil
}

// UpdateItem applies a partial update and re-resolves the selling price
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	var updated *catalog.Item
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		item, err := repos.Items().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if err := item.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Stock != nil {
			if err := item.SetStock(*req.Stock); err != nil {
				return err
			}
		}
		if req.VendorID != nil {
			vendorID, err := parseOptionalID(req.VendorID)
			if err != nil {
				return err
			}
			item.SetVendor(vendorID)
		}

		buying, selling, original := item.BuyingPrice, item.SellingPrice, item.OriginalPrice
		if req.BuyingPrice != nil {
			buying = *req.BuyingPrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if req.OriginalPrice != nil {
			original = *req.OriginalPrice
		}
		if err := item.SetPrices(buying, selling, original); err != nil {
			return err
		}
		if req.MeasurementType != nil {
			item.SetMeasurementType(*req.MeasurementType)
		}

		discounts, err := repos.Discounts().FindActive(ctx)
		if err != nil {
			return err
		}
		item.ApplySellingPrice(s.resolver.ResolveSellingPrice(item, discounts))

		if err := repos.Items().Update(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
	return toItemResponse(updated), nil
}

// DeleteItem removes an item. Orders keep their line snapshots, so past
// sales stay readable.
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		if _, err := repos.Items().FindByID(ctx, id); err != nil {
			return err
		}
		return repos.Items().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
	s.logger.Info("item deleted", zap.String("item_id", id.String()))
	return nil
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
