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

// GormDiscountRepository implements catalog.DiscountRepository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new discount repository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// Save persists a new discount
func (r *GormDiscountRepository) Save(ctx context.Context, discount *catalog.Discount) error {
	return r.db.WithContext(ctx).Create(models.FromDomainDiscount(discount)).Error
}

// FindByID retrieves a discount by its id
func (r *GormDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Discount, error) {
	var model models.DiscountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll retrieves discounts matching the filter
func (r *GormDiscountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Discount, error) {
	var rows []models.DiscountModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.DiscountModel{}), filter, "name", discountSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainDiscounts(rows), nil
}

// FindActive retrieves every active discount
func (r *GormDiscountRepository) FindActive(ctx context.Context) ([]*catalog.Discount, error) {
	var rows []models.DiscountModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainDiscounts(rows), nil
}

// Update persists changes to a discount
func (r *GormDiscountRepository) Update(ctx context.Context, discount *catalog.Discount) error {
	result := r.db.WithContext(ctx).Save(models.FromDomainDiscount(discount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a discount
func (r *GormDiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DiscountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainDiscounts(rows []models.DiscountModel) []*catalog.Discount {
	discounts := make([]*catalog.Discount, 0, len(rows))
	for i := range rows {
		discounts = append(discounts, rows[i].ToDomain())
	}
	return discounts
}
