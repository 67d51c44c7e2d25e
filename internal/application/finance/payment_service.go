// Package finance exposes the bulk due-payment use cases
package finance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/trade"
)

// PayDueRequest carries a bulk payment against a partner's outstanding dues
type PayDueRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// PayDueResponse reports how the payment was absorbed
type PayDueResponse struct {
	Applied       float64 `json:"applied"`
	Remainder     float64 `json:"remainder"`
	OrdersSettled int     `json:"ordersSettled"`
	RemainingDue  float64 `json:"remainingDue"`
}

// PaymentService allocates bulk payments across a partner's unpaid orders,
// oldest first, and brings the partner's due balance back in line.
type PaymentService struct {
	scope     ledger.TransactionScope
	dueLedger *ledger.DueLedger
	logger    *zap.Logger
}

// NewPaymentService creates a payment service
func NewPaymentService(scope ledger.TransactionScope, dueLedger *ledger.DueLedger, logger *zap.Logger) *PaymentService {
	return &PaymentService{scope: scope, dueLedger: dueLedger, logger: logger}
}

// PayCustomerDue spreads a received payment across the customer's unpaid
// orders. Any amount beyond the total due is reported back, not retained as
// credit.
func (s *PaymentService) PayCustomerDue(ctx context.Context, customerID uuid.UUID, req PayDueRequest) (*PayDueResponse, error) {
	if req.Amount <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}

	var resp *PayDueResponse
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		if _, err := repos.Customers().FindByID(ctx, customerID); err != nil {
			return err
		}

		orders, err := repos.SalesOrders().FindUnpaidByCustomer(ctx, customerID)
		if err != nil {
			return err
		}

		targets := make([]trade.PaymentTarget, 0, len(orders))
		for _, order := range orders {
			targets = append(targets, order)
		}
		result := trade.AllocatePayment(targets, req.Amount)

		for _, order := range orders {
			if err := repos.SalesOrders().Update(ctx, order); err != nil {
				return err
			}
		}

		customer, err := s.dueLedger.RefreshCustomerDue(ctx, repos, customerID)
		if err != nil {
			return err
		}

		resp = &PayDueResponse{
			Applied:       result.Applied,
			Remainder:     result.Remainder,
			OrdersSettled: result.Settled,
			RemainingDue:  customer.Due,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer due payment allocated",
		zap.String("customer_id", customerID.String()),
		zap.Float64("applied", resp.Applied),
		zap.Float64("remainder", resp.Remainder))
	return resp, nil
}

// PayVendorDue spreads an outgoing payment across the vendor's unpaid
// purchase orders, then resums the vendor's due from its orders.
func (s *PaymentService) PayVendorDue(ctx context.Context, vendorID uuid.UUID, req PayDueRequest) (*PayDueResponse, error) {
	if req.Amount <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}

	var resp *PayDueResponse
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		if _, err := repos.Vendors().FindByID(ctx, vendorID); err != nil {
			return err
		}

		orders, err := repos.PurchaseOrders().FindUnpaidByVendor(ctx, vendorID)
		if err != nil {
			return err
		}

		targets := make([]trade.PaymentTarget, 0, len(orders))
		for _, order := range orders {
			targets = append(targets, order)
		}
		result := trade.AllocatePayment(targets, req.Amount)

		for _, order := range orders {
			if err := repos.PurchaseOrders().Update(ctx, order); err != nil {
				return err
			}
		}

		vendor, err := s.dueLedger.RefreshVendorDue(ctx, repos, vendorID)
		if err != nil {
			return err
		}

		resp = &PayDueResponse{
			Applied:       result.Applied,
			Remainder:     result.Remainder,
			OrdersSettled: result.Settled,
			RemainingDue:  vendor.DueAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vendor due payment allocated",
		zap.String("vendor_id", vendorID.String()),
		zap.Float64("applied", resp.Applied),
		zap.Float64("remainder", resp.Remainder))
	return resp, nil
}
