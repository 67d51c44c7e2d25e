package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// ItemRepository defines persistence for items
type ItemRepository interface {
	Save(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Item, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// DiscountRepository defines persistence for discount rules
type DiscountRepository interface {
	Save(ctx context.Context, discount *Discount) error
	FindByID(ctx context.Context, id uuid.UUID) (*Discount, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Discount, error)
	FindActive(ctx context.Context) ([]*Discount, error)
	Update(ctx context.Context, discount *Discount) error
	Delete(ctx context.Context, id uuid.UUID) error
}
