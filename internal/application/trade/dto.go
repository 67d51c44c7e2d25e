package trade

import (
	"time"

	"github.com/ims/backend/internal/domain/trade"
)

// OrderLineRequest is one requested sale line. Name, unit and price are
// optional; missing values are snapshotted from the item at order time.
type OrderLineRequest struct {
	ItemID   string   `json:"itemId" binding:"required"`
	Quantity float64  `json:"quantity" binding:"required,gt=0"`
	Price    *float64 `json:"price"`
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`
}

// CreateOrderRequest carries a new sales order. A walk-in sale names the
// buyer through the temp customer snapshot instead of a customer id.
type CreateOrderRequest struct {
	CustomerID         *string            `json:"customerId"`
	TempCustomerName   string             `json:"tempCustomerName"`
	TempCustomerMobile string             `json:"tempCustomerMobile"`
	Lines              []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	Discount           float64            `json:"discount" binding:"gte=0"`
	DiscountType       string             `json:"discountType" binding:"omitempty,oneof=percent amount"`
	Paid               float64            `json:"paid" binding:"gte=0"`
	Date               *time.Time         `json:"date"`
}

// UpdateOrderRequest replaces an order's content wholesale
type UpdateOrderRequest = CreateOrderRequest

// OrderLineResponse is one line of a stored order
type OrderLineResponse struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
}

// OrderResponse is the outward representation of a sales order
type OrderResponse struct {
	ID                 string              `json:"id"`
	CustomerID         *string             `json:"customerId,omitempty"`
	TempCustomerName   string              `json:"tempCustomerName,omitempty"`
	TempCustomerMobile string              `json:"tempCustomerMobile,omitempty"`
	Lines              []OrderLineResponse `json:"items"`
	Discount           float64             `json:"discount"`
	DiscountType       string              `json:"discountType"`
	Total              float64             `json:"total"`
	Paid               float64             `json:"paid"`
	Due                float64             `json:"due"`
	Date               time.Time           `json:"date"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

func toOrderResponse(order *trade.SalesOrder) *OrderResponse {
	resp := &OrderResponse{
		ID:                 order.ID.String(),
		TempCustomerName:   order.TempCustomer.Name,
		TempCustomerMobile: order.TempCustomer.Mobile,
		Lines:              make([]OrderLineResponse, 0, len(order.Lines)),
		Discount:           order.Discount,
		DiscountType:       string(order.DiscountType),
		Total:              order.Total,
		Paid:               order.Paid,
		Due:                order.Due(),
		Date:               order.Date,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
	if order.CustomerID != nil {
		id := order.CustomerID.String()
		resp.CustomerID = &id
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ItemID:   line.ItemID.String(),
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
			Unit:     line.Unit,
		})
	}
	return resp
}

// PurchaseLineRequest is one requested purchase line
type PurchaseLineRequest struct {
	ItemID      string   `json:"itemId" binding:"required"`
	Quantity    float64  `json:"quantity" binding:"required,gt=0"`
	BuyingPrice *float64 `json:"buyingPrice"`
	Name        string   `json:"name"`
}

// CreatePurchaseOrderRequest carries a new purchase order
type CreatePurchaseOrderRequest struct {
	VendorID     string                `json:"vendorId" binding:"required"`
	Lines        []PurchaseLineRequest `json:"items" binding:"required,min=1,dive"`
	Discount     float64               `json:"discount" binding:"gte=0"`
	DiscountType string                `json:"discountType" binding:"omitempty,oneof=percent amount"`
	PayAmount    float64               `json:"payAmount" binding:"gte=0"`
	Date         *time.Time            `json:"date"`
}

// UpdatePurchaseOrderRequest replaces a purchase order's content wholesale
type UpdatePurchaseOrderRequest = CreatePurchaseOrderRequest

// PurchaseLineResponse is one line of a stored purchase order
type PurchaseLineResponse struct {
	ItemID      string  `json:"itemId"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	BuyingPrice float64 `json:"buyingPrice"`
}

// PurchaseOrderResponse is the outward representation of a purchase order
type PurchaseOrderResponse struct {
	ID             string                 `json:"id"`
	VendorID       string                 `json:"vendorId"`
	Lines          []PurchaseLineResponse `json:"items"`
	Subtotal       float64                `json:"subtotal"`
	Discount       float64                `json:"discount"`
	DiscountType   string                 `json:"discountType"`
	TotalBuyAmount float64                `json:"totalBuyAmount"`
	PayAmount      float64                `json:"payAmount"`
	DueAmount      float64                `json:"dueAmount"`
	Date           time.Time              `json:"date"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func toPurchaseOrderResponse(order *trade.PurchaseOrder) *PurchaseOrderResponse {
	resp := &PurchaseOrderResponse{
		ID:             order.ID.String(),
		VendorID:       order.VendorID.String(),
		Lines:          make([]PurchaseLineResponse, 0, len(order.Lines)),
		Subtotal:       order.Subtotal,
		Discount:       order.Discount,
		DiscountType:   string(order.DiscountType),
		TotalBuyAmount: order.TotalBuyAmount,
		PayAmount:      order.PayAmount,
		DueAmount:      order.DueAmount(),
		Date:           order.Date,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, PurchaseLineResponse{
			ItemID:      line.ItemID.String(),
			Name:        line.Name,
			Quantity:    line.Quantity,
			BuyingPrice: line.BuyingPrice,
		})
	}
	return resp
}
