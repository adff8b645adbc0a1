package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// CustomerRepo stores customers.
type CustomerRepo struct{ s *Store }

// Customers returns the customer repository.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

func customerCreated(c domain.Customer) time.Time { return c.CreatedAt }
func customerID(c domain.Customer) uuid.UUID      { return c.ID }

// Create assigns an id and timestamps and stores the customer.
func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	out := *c
	err := r.s.write(ctx, func(st *state) error {
		now := r.s.stamp()
		out.ID = uuid.New()
		out.CreatedAt, out.UpdatedAt = now, now
		st.customers[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID returns domain.ErrNotFound for an unknown id.
func (r *CustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var out domain.Customer
	err := r.s.read(ctx, func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByIDs returns the customers that exist among ids, in no particular order.
func (r *CustomerRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(ids))
	err := r.s.read(ctx, func(st *state) error {
		for _, id := range ids {
			if c, ok := st.customers[id]; ok {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

// Update replaces the stored customer, keeping CreatedAt.
func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	out := *c
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.customers[c.ID]
		if !ok {
			return fmt.Errorf("customer %s: %w", c.ID, domain.ErrNotFound)
		}
		out.CreatedAt = cur.CreatedAt
		out.UpdatedAt = r.s.stamp()
		st.customers[c.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a customer. Jobs and invoices referencing it are kept.
func (r *CustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
		}
		delete(st.customers, id)
		return nil
	})
}

// List returns every customer ordered by creation time.
func (r *CustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.customers, customerCreated, customerID)
		return nil
	})
	return out, err
}

// Search returns customers whose name, company or email contains text,
// case-insensitively.
func (r *CustomerRepo) Search(ctx context.Context, text string) ([]domain.Customer, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(text)
	out := make([]domain.Customer, 0)
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Company), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			out = append(out, c)
		}
	}
	return out, nil
}
