// Package models holds the database representations of the domain types and
// the conversions between them.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/trade"
)

// ItemModel is the database representation of a catalog item
type ItemModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name            string     `gorm:"not null;index"`
	Stock           float64    `gorm:"not null;default:0"`
	VendorID        *uuid.UUID `gorm:"type:uuid;index"`
	BuyingPrice     float64    `gorm:"not null;default:0"`
	SellingPrice    float64    `gorm:"not null;default:0"`
	OriginalPrice   float64    `gorm:"not null;default:0"`
	MeasurementType string     `gorm:"not null;default:'pcs'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name
func (ItemModel) TableName() string { return "items" }

// ToDomain converts the model to a domain item
func (m *ItemModel) ToDomain() *catalog.Item {
	item := &catalog.Item{
		Name:            m.Name,
		Stock:           m.Stock,
		VendorID:        m.VendorID,
		BuyingPrice:     m.BuyingPrice,
		SellingPrice:    m.SellingPrice,
		OriginalPrice:   m.OriginalPrice,
		MeasurementType: m.MeasurementType,
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	item.UpdatedAt = m.UpdatedAt
	return item
}

// FromDomainItem converts a domain item to its model
func FromDomainItem(item *catalog.Item) *ItemModel {
	return &ItemModel{
		ID:              item.ID,
		Name:            item.Name,
		Stock:           item.Stock,
		VendorID:        item.VendorID,
		BuyingPrice:     item.BuyingPrice,
		SellingPrice:    item.SellingPrice,
		OriginalPrice:   item.OriginalPrice,
		MeasurementType: item.MeasurementType,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// DiscountModel is the database representation of a discount rule
type DiscountModel struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Name       string               `gorm:"not null"`
	Type       string               `gorm:"not null"`
	Value      float64              `gorm:"not null"`
	Scope      catalog.ProductScope `gorm:"type:jsonb;not null;default:'[]'"`
	Active     bool                 `gorm:"not null;default:true;index"`
	ValidFrom  *time.Time
	ValidUntil *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name
func (DiscountModel) TableName() string { return "discounts" }

// ToDomain converts the model to a domain discount
func (m *DiscountModel) ToDomain() *catalog.Discount {
	discount := &catalog.Discount{
		Name:       m.Name,
		Type:       catalog.DiscountType(m.Type),
		Value:      m.Value,
		Scope:      m.Scope,
		Active:     m.Active,
		ValidFrom:  m.ValidFrom,
		ValidUntil: m.ValidUntil,
	}
	discount.ID = m.ID
	discount.CreatedAt = m.CreatedAt
	discount.UpdatedAt = m.UpdatedAt
	return discount
}

// FromDomainDiscount converts a domain discount to its model
func FromDomainDiscount(discount *catalog.Discount) *DiscountModel {
	return &DiscountModel{
		ID:         discount.ID,
		Name:       discount.Name,
		Type:       string(discount.Type),
		Value:      discount.Value,
		Scope:      discount.Scope,
		Active:     discount.Active,
		ValidFrom:  discount.ValidFrom,
		ValidUntil: discount.ValidUntil,
		CreatedAt:  discount.CreatedAt,
		UpdatedAt:  discount.UpdatedAt,
	}
}

// CustomerModel is the database representation of a customer
type CustomerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;index"`
	Phone     string
	Address   string
	Due       float64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name
func (CustomerModel) TableName() string { return "customers" }

// ToDomain converts the model to a domain customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	customer := &partner.Customer{
		Name:    m.Name,
		Phone:   m.Phone,
		Address: m.Address,
		Due:     m.Due,
	}
	customer.ID = m.ID
	customer.CreatedAt = m.CreatedAt
	customer.UpdatedAt = m.UpdatedAt
	return customer
}

// FromDomainCustomer converts a domain customer to its model
func FromDomainCustomer(customer *partner.Customer) *CustomerModel {
	return &CustomerModel{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Due:       customer.Due,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

// VendorModel is the database representation of a vendor
type VendorModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"not null;index"`
	Phone         string
	Address       string
	DueAmount     float64 `gorm:"not null;default:0"`
	TotalPurchase float64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name
func (VendorModel) TableName() string { return "vendors" }

// ToDomain converts the model to a domain vendor
func (m *VendorModel) ToDomain() *partner.Vendor {
	vendor := &partner.Vendor{
		Name:          m.Name,
		Phone:         m.Phone,
		Address:       m.Address,
		DueAmount:     m.DueAmount,
		TotalPurchase: m.TotalPurchase,
	}
	vendor.ID = m.ID
	vendor.CreatedAt = m.CreatedAt
	vendor.UpdatedAt = m.UpdatedAt
	return vendor
}

// FromDomainVendor converts a domain vendor to its model
func FromDomainVendor(vendor *partner.Vendor) *VendorModel {
	return &VendorModel{
		ID:            vendor.ID,
		Name:          vendor.Name,
		Phone:         vendor.Phone,
		Address:       vendor.Address,
		DueAmount:     vendor.DueAmount,
		TotalPurchase: vendor.TotalPurchase,
		CreatedAt:     vendor.CreatedAt,
		UpdatedAt:     vendor.UpdatedAt,
	}
}

// SalesOrderModel is the database representation of a sales order. Lines are
// stored as a JSONB snapshot so orders survive item changes.
type SalesOrderModel struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CustomerID         *uuid.UUID       `gorm:"type:uuid;index"`
	TempCustomerName   string           `gorm:"column:temp_customer_name"`
	TempCustomerMobile string           `gorm:"column:temp_customer_mobile"`
	Lines              trade.OrderLines `gorm:"type:jsonb;not null;default:'[]'"`
	Discount           float64          `gorm:"not null;default:0"`
	DiscountType       string           `gorm:"not null;default:'amount'"`
	Total              float64          `gorm:"not null;default:0"`
	Paid               float64          `gorm:"not null;default:0"`
	Date               time.Time        `gorm:"not null;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName returns the table name
func (SalesOrderModel) TableName() string { return "sales_orders" }

// ToDomain converts the model to a domain sales order
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	order := &trade.SalesOrder{
		CustomerID:   m.CustomerID,
		TempCustomer: trade.TempCustomer{Name: m.TempCustomerName, Mobile: m.TempCustomerMobile},
		Lines:        m.Lines,
		Discount:     m.Discount,
		DiscountType: trade.OrderDiscountType(m.DiscountType),
		Total:        m.Total,
		Paid:         m.Paid,
		Date:         m.Date,
	}
	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return order
}

// FromDomainSalesOrder converts a domain sales order to its model
func FromDomainSalesOrder(order *trade.SalesOrder) *SalesOrderModel {
	return &SalesOrderModel{
		ID:                 order.ID,
		CustomerID:         order.CustomerID,
		TempCustomerName:   order.TempCustomer.Name,
		TempCustomerMobile: order.TempCustomer.Mobile,
		Lines:              order.Lines,
		Discount:           order.Discount,
		DiscountType:       string(order.DiscountType),
		Total:              order.Total,
		Paid:               order.Paid,
		Date:               order.Date,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

// PurchaseOrderModel is the database representation of a purchase order
type PurchaseOrderModel struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	VendorID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	Lines          trade.PurchaseLines `gorm:"type:jsonb;not null;default:'[]'"`
	Subtotal       float64             `gorm:"not null;default:0"`
	Discount       float64             `gorm:"not null;default:0"`
	DiscountType   string              `gorm:"not null;default:'amount'"`
	TotalBuyAmount float64             `gorm:"not null;default:0"`
	PayAmount      float64             `gorm:"not null;default:0"`
	Date           time.Time           `gorm:"not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name
func (PurchaseOrderModel) TableName() string { return "purchase_orders" }

// ToDomain converts the model to a domain purchase order
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	order := &trade.PurchaseOrder{
		VendorID:       m.VendorID,
		Lines:          m.Lines,
		Subtotal:       m.Subtotal,
		Discount:       m.Discount,
		DiscountType:   trade.OrderDiscountType(m.DiscountType),
		TotalBuyAmount: m.TotalBuyAmount,
		PayAmount:      m.PayAmount,
		Date:           m.Date,
	}
	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return order
}

// FromDomainPurchaseOrder converts a domain purchase order to its model
func FromDomainPurchaseOrder(order *trade.PurchaseOrder) *PurchaseOrderModel {
	return &PurchaseOrderModel{
		ID:             order.ID,
		VendorID:       order.VendorID,
		Lines:          order.Lines,
		Subtotal:       order.Subtotal,
		Discount:       order.Discount,
		DiscountType:   string(order.DiscountType),
		TotalBuyAmount: order.TotalBuyAmount,
		PayAmount:      order.PayAmount,
		Date:           order.Date,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// All returns every model for schema migration
func All() []interface{} {
	return []interface{}{
		&ItemModel{},
		&DiscountModel{},
		&CustomerModel{},
		&VendorModel{},
		&SalesOrderModel{},
		&PurchaseOrderModel{},
	}
}
