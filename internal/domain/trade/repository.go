package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// SalesOrderRepository defines persistence for sales orders
type SalesOrderRepository interface {
	Save(ctx context.Context, order *SalesOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*SalesOrder, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*SalesOrder, error)
	FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]*SalesOrder, error)
	Update(ctx context.Context, order *SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseOrderRepository defines persistence for purchase orders
type PurchaseOrderRepository interface {
	Save(ctx context.Context, order *PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*PurchaseOrder, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*PurchaseOrder, error)
	FindUnpaidByVendor(ctx context.Context, vendorID uuid.UUID) ([]*PurchaseOrder, error)
	Update(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}
