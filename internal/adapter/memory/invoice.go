package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// InvoiceRepo stores invoices. Totals are stored as given.
type InvoiceRepo struct{ s *Store }

// Invoices returns the invoice repository.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

func invoiceCreated(inv domain.Invoice) time.Time { return inv.CreatedAt }
func invoiceID(inv domain.Invoice) uuid.UUID      { return inv.ID }

func (r *InvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	out := cloneInvoice(*inv)
	err := r.s.write(ctx, func(st *state) error {
		for _, existing := range st.invoices {
			if existing.InvoiceNumber == out.InvoiceNumber {
				return fmt.Errorf("invoice %s: %w", out.InvoiceNumber, domain.ErrAlreadyExists)
			}
		}
		now := r.s.stamp()
		out.ID = uuid.New()
		out.CreatedAt, out.UpdatedAt = now, now
		st.invoices[out.ID] = cloneInvoice(out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var out domain.Invoice
	err := r.s.read(ctx, func(st *state) error {
		inv, ok := st.invoices[id]
		if !ok {
			return fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
		}
		out = cloneInvoice(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	out := cloneInvoice(*inv)
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.invoices[inv.ID]
		if !ok {
			return fmt.Errorf("invoice %s: %w", inv.ID, domain.ErrNotFound)
		}
		for id, existing := range st.invoices {
			if id != inv.ID && existing.InvoiceNumber == out.InvoiceNumber {
				return fmt.Errorf("invoice %s: %w", out.InvoiceNumber, domain.ErrAlreadyExists)
			}
		}
		out.CreatedAt = cur.CreatedAt
		out.UpdatedAt = r.s.stamp()
		st.invoices[inv.ID] = cloneInvoice(out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPaymentStatus changes only the payment status of an invoice.
func (r *InvoiceRepo) SetPaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Invoice, error) {
	var out domain.Invoice
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.invoices[id]
		if !ok {
			return fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
		}
		cur.PaymentStatus = status
		cur.UpdatedAt = r.s.stamp()
		st.invoices[id] = cur
		out = cloneInvoice(cur)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.invoices[id]; !ok {
			return fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
		}
		delete(st.invoices, id)
		return nil
	})
}

func (r *InvoiceRepo) List(ctx context.Context) ([]domain.Invoice, error) {
	return r.ListByFilter(ctx, domain.InvoiceFilter{})
}

func (r *InvoiceRepo) ListByFilter(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error) {
	out := make([]domain.Invoice, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, inv := range sortedValues(st.invoices, invoiceCreated, invoiceID) {
			if f.Matches(inv) {
				out = append(out, cloneInvoice(inv))
			}
		}
		return nil
	})
	return out, err
}
