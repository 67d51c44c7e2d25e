package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
)

// StubCustomerName is the placeholder name used when a due recalculation
// references a customer record that no longer exists.
const StubCustomerName = "Unknown"

// Customer is a buyer with an outstanding-due balance. The due amount is
// derived state: it is recomputed from the customer's unpaid orders by the
// due ledger, never adjusted incrementally.
type Customer struct {
	shared.BaseEntity
	Name    string
	Phone   string
	Address string
	Due     float64
}

// NewCustomer creates a new customer
func NewCustomer(name, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Address:    address,
	}, nil
}

// NewStubCustomer creates a placeholder for a missing customer referenced by
// surviving orders. The stub keeps the referenced id and carries a zero due
// until the ledger recomputes it.
func NewStubCustomer(id uuid.UUID) *Customer {
	stub := &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       StubCustomerName,
	}
	stub.ID = id
	return stub
}

// UpdateDetails updates the customer's contact fields
func (c *Customer) UpdateDetails(name, phone, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()
	return nil
}

// SetDue replaces the derived due balance
func (c *Customer) SetDue(due float64) {
	c.Due = due
	c.UpdatedAt = time.Now()
}

// EnsureDeletable returns an error if the customer still owes money
func (c *Customer) EnsureDeletable() error {
	if c.Due > 0 {
		return shared.NewDomainError("BUSINESS_RULE_VIOLATION", "Cannot delete customer with outstanding due")
	}
	return nil
}
