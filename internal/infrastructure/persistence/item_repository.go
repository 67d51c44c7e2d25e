package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/infrastructure/persistence/models"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new item repository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Save persists a new item
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).Create(models.FromDomainItem(item)).Error
}

// FindByID retrieves an item by its id
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs retrieves the items matching the given ids. Missing ids are
// simply absent from the result.
func (r *GormItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Item, error) {
	if len(ids) == 0 {
		return []*catalog.Item{}, nil
	}

	var rows []models.ItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// FindAll retrieves items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Item, error) {
	var rows []models.ItemModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ItemModel{}), filter, "name", itemSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// FindByVendor retrieves all items supplied by one vendor
func (r *GormItemRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*catalog.Item, error) {
	var rows []models.ItemModel
	if err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainItems(rows), nil
}

// Update persists changes to an item
func (r *GormItemRepository) Update(ctx context.Context, item *catalog.Item) error {
	result := r.db.WithContext(ctx).Save(models.FromDomainItem(item))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of items
func (r *GormItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ItemModel{}).Count(&count).Error
	return count, err
}

func toDomainItems(rows []models.ItemModel) []*catalog.Item {
	items := make([]*catalog.Item, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToDomain())
	}
	return items
}
