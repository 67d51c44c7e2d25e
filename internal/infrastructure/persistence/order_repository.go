package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/trade"
	"github.com/ims/backend/internal/infrastructure/persistence/models"
)

// GormSalesOrderRepository implements trade.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new sales order repository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// Save persists a new sales order
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Create(models.FromDomainSalesOrder(order)).Error
}

// FindByID retrieves a sales order by its id
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll retrieves sales orders matching the filter
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.SalesOrder, error) {
	var rows []models.SalesOrderModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.SalesOrderModel{}), filter, "temp_customer_name", salesOrderSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSalesOrders(rows), nil
}

// FindByCustomer retrieves all orders of one registered customer, oldest
// first
func (r *GormSalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*trade.SalesOrder, error) {
	var rows []models.SalesOrderModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date asc, created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSalesOrders(rows), nil
}

// FindUnpaidByCustomer retrieves the customer's orders that still carry a
// due, oldest first
func (r *GormSalesOrderRepository) FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]*trade.SalesOrder, error) {
	var rows []models.SalesOrderModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND total > paid", customerID).
		Order("date asc, created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSalesOrders(rows), nil
}

// Update persists changes to a sales order
func (r *GormSalesOrderRepository) Update(ctx context.Context, order *trade.SalesOrder) error {
	result := r.db.WithContext(ctx).Save(models.FromDomainSalesOrder(order))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a sales order
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SalesOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainSalesOrders(rows []models.SalesOrderModel) []*trade.SalesOrder {
	orders := make([]*trade.SalesOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].ToDomain())
	}
	return orders
}

// GormPurchaseOrderRepository implements trade.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new purchase order repository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// Save persists a new purchase order
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(models.FromDomainPurchaseOrder(order)).Error
}

// FindByID retrieves a purchase order by its id
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll retrieves purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.PurchaseOrder, error) {
	var rows []models.PurchaseOrderModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}), filter, "", purchaseOrderSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainPurchaseOrders(rows), nil
}

// FindByVendor retrieves all purchase orders of one vendor, oldest first
func (r *GormPurchaseOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*trade.PurchaseOrder, error) {
	var rows []models.PurchaseOrderModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("date asc, created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainPurchaseOrders(rows), nil
}

// FindUnpaidByVendor retrieves the vendor's orders that still carry a due,
// oldest first
func (r *GormPurchaseOrderRepository) FindUnpaidByVendor(ctx context.Context, vendorID uuid.UUID) ([]*trade.PurchaseOrder, error) {
	var rows []models.PurchaseOrderModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND total_buy_amount > pay_amount", vendorID).
		Order("date asc, created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainPurchaseOrders(rows), nil
}

// Update persists changes to a purchase order
func (r *GormPurchaseOrderRepository) Update(ctx context.Context, order *trade.PurchaseOrder) error {
	result := r.db.WithContext(ctx).Save(models.FromDomainPurchaseOrder(order))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a purchase order
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PurchaseOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainPurchaseOrders(rows []models.PurchaseOrderModel) []*trade.PurchaseOrder {
	orders := make([]*trade.PurchaseOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].ToDomain())
	}
	return orders
}
