// Package partner exposes the customer and vendor use cases
package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
)

// CustomerService implements the customer use cases
type CustomerService struct {
	repos  ledger.Repositories
	scope  ledger.TransactionScope
	logger *zap.Logger
}

// NewCustomerService creates a customer service
func NewCustomerService(repos ledger.Repositories, scope ledger.TransactionScope, logger *zap.Logger) *CustomerService {
	return &CustomerService{repos: repos, scope: scope, logger: logger}
}

// CreateCustomer registers a new customer with a zero due
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		return repos.Customers().Save(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.String("customer_id", customer.ID.String()))
	return toCustomerResponse(customer), nil
}

// GetCustomer returns one customer
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.repos.Customers().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomerSummary returns one customer with lifetime order totals summed
// over all of their orders
func (s *CustomerService) GetCustomerSummary(ctx context.Context, id uuid.UUID) (*CustomerSummaryResponse, error) {
	customer, err := s.repos.Customers().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.repos.SalesOrders().FindByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &CustomerSummaryResponse{
		CustomerResponse: *toCustomerResponse(customer),
		OrderCount:       len(orders),
	}
	for _, order := range orders {
		summary.TotalBuy += order.Total
		summary.TotalPaid += order.Paid
	}
	return summary, nil
}

// ListCustomers returns customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter shared.Filter) ([]*CustomerResponse, error) {
	customers, err := s.repos.Customers().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, toCustomerResponse(customer))
	}
	return responses, nil
}

// UpdateCustomer updates contact details and, when supplied, overrides the
// due balance directly
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	var updated *partner.Customer
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		customer, err := repos.Customers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := customer.UpdateDetails(req.Name, req.Phone, req.Address); err != nil {
			return err
		}
		if req.Due != nil {
			customer.SetDue(*req.Due)
		}
		if err := repos.Customers().Update(ctx, customer); err != nil {
			return err
		}
		updated = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(updated), nil
}

// DeleteCustomer removes a customer, refusing while money is still owed
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		customer, err := repos.Customers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := customer.EnsureDeletable(); err != nil {
			return err
		}
		return repos.Customers().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}
