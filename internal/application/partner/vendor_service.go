package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/application/ledger"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
)

// VendorService implements the vendor use cases
type VendorService struct {
	repos  ledger.Repositories
	scope  ledger.TransactionScope
	logger *zap.Logger
}

// NewVendorService creates a vendor service
func NewVendorService(repos ledger.Repositories, scope ledger.TransactionScope, logger *zap.Logger) *VendorService {
	return &VendorService{repos: repos, scope: scope, logger: logger}
}

// CreateVendor registers a new vendor with zero balances
func (s *VendorService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	vendor, err := partner.NewVendor(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		return repos.Vendors().Save(ctx, vendor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vendor created", zap.String("vendor_id", vendor.ID.String()))
	return toVendorResponse(vendor), nil
}

// GetVendor returns one vendor
func (s *VendorService) GetVendor(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.repos.Vendors().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// ListVendors returns vendors matching the filter
func (s *VendorService) ListVendors(ctx context.Context, filter shared.Filter) ([]*VendorResponse, error) {
	vendors, err := s.repos.Vendors().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*VendorResponse, 0, len(vendors))
	for _, vendor := range vendors {
		responses = append(responses, toVendorResponse(vendor))
	}
	return responses, nil
}

// UpdateVendor updates contact details. Balances are owned by the purchase
// flow and cannot be set here.
func (s *VendorService) UpdateVendor(ctx context.Context, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	var updated *partner.Vendor
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		vendor, err := repos.Vendors().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := vendor.UpdateDetails(req.Name, req.Phone, req.Address); err != nil {
			return err
		}
		if err := repos.Vendors().Update(ctx, vendor); err != nil {
			return err
		}
		updated = vendor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toVendorResponse(updated), nil
}

// DeleteVendor removes a vendor, refusing while a due balance remains
func (s *VendorService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		vendor, err := repos.Vendors().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := vendor.EnsureDeletable(); err != nil {
			return err
		}
		return repos.Vendors().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("vendor deleted", zap.String("vendor_id", id.String()))
	return nil
}
