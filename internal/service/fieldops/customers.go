package fieldops

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// CreateCustomer stores a new customer.
func (s *Service) CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var c domain.Customer
	input.apply(&c)

	created, err := s.customers.Create(ctx, &c)
	if err != nil {
		return nil, fmt.Errorf("fieldops.CreateCustomer: %w", err)
	}

	s.committed(ctx, domain.EntityKindCustomer, domain.MutationCreated, created.ID)
	return created, nil
}

// UpdateCustomer replaces the writable fields of a customer.
func (s *Service) UpdateCustomer(ctx context.Context, id uuid.UUID, input CustomerInput) (*domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Customer
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, err := s.customers.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		input.apply(cur)
		updated, err = s.customers.Update(txCtx, cur)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fieldops.UpdateCustomer: %w", err)
	}

	s.committed(ctx, domain.EntityKindCustomer, domain.MutationUpdated, id)
	return updated, nil
}

// DeleteCustomer removes a customer. Jobs and invoices that reference it are
// kept and resolve to a placeholder name in derived views.
func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return fmt.Errorf("fieldops.DeleteCustomer: %w", err)
	}

	s.committed(ctx, domain.EntityKindCustomer, domain.MutationDeleted, id)
	return nil
}

// GetCustomer returns a customer by id.
func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fieldops.GetCustomer: %w", err)
	}
	return c, nil
}

// ListCustomers returns every customer.
func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	cs, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fieldops.ListCustomers: %w", err)
	}
	return cs, nil
}

// SearchCustomers matches text against name, company and email. Blank text
// returns every customer.
func (s *Service) SearchCustomers(ctx context.Context, text string) ([]domain.Customer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.ListCustomers(ctx)
	}

	cs, err := s.customers.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("fieldops.SearchCustomers: %w", err)
	}
	return cs, nil
}
