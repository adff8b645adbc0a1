package fieldops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// invoiceNumberAttempts bounds the retries of a generated invoice number
// that is already taken.
const invoiceNumberAttempts = 5

// CreateInvoice stores a new invoice with totals computed from its line
// items. The customer and, when set, the job must exist. A generated number
// that collides with an existing one is retried with the next number; an
// explicit number that collides is an error.
func (s *Service) CreateInvoice(ctx context.Context, input InvoiceInput) (*domain.Invoice, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	generated := strings.TrimSpace(input.InvoiceNumber) == ""

	var (
		created *domain.Invoice
		err     error
	)
	for attempt := range invoiceNumberAttempts {
		created, err = s.insertInvoice(ctx, input, s.invoiceNumber(attempt))
		if !generated || !errors.Is(err, domain.ErrAlreadyExists) {
			break
		}
		s.log.DebugContext(ctx, "invoice number taken",
			slog.Int("attempt", attempt+1),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("fieldops.CreateInvoice: %w", err)
	}

	s.committed(ctx, domain.EntityKindInvoice, domain.MutationCreated, created.ID)
	return created, nil
}

func (s *Service) insertInvoice(ctx context.Context, input InvoiceInput, number string) (*domain.Invoice, error) {
	var created *domain.Invoice
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkInvoiceRefs(txCtx, input); err != nil {
			return err
		}
		inv := domain.Invoice{InvoiceNumber: number}
		input.apply(&inv)

		var err error
		created, err = s.invoices.Create(txCtx, &inv)
		return err
	})
	return created, err
}

// UpdateInvoice replaces the writable fields of an invoice and recomputes
// its totals. A blank number keeps the current one.
func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, input InvoiceInput) (*domain.Invoice, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Invoice
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, err := s.invoices.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.checkInvoiceRefs(txCtx, input); err != nil {
			return err
		}
		input.apply(cur)
		updated, err = s.invoices.Update(txCtx, cur)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fieldops.UpdateInvoice: %w", err)
	}

	s.committed(ctx, domain.EntityKindInvoice, domain.MutationUpdated, id)
	return updated, nil
}

// MarkInvoicePaid sets an invoice's payment status to paid.
func (s *Service) MarkInvoicePaid(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.SetInvoiceStatus(ctx, id, domain.PaymentStatusPaid)
}

// SetInvoiceStatus changes an invoice's payment status.
func (s *Service) SetInvoiceStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Invoice, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("payment_status", "invalid")
	}

	inv, err := s.invoices.SetPaymentStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("fieldops.SetInvoiceStatus: %w", err)
	}

	s.committed(ctx, domain.EntityKindInvoice, domain.MutationUpdated, id)
	return inv, nil
}

// DeleteInvoice removes an invoice.
func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		return fmt.Errorf("fieldops.DeleteInvoice: %w", err)
	}

	s.committed(ctx, domain.EntityKindInvoice, domain.MutationDeleted, id)
	return nil
}

// GetInvoice returns an invoice by id.
func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fieldops.GetInvoice: %w", err)
	}
	return inv, nil
}

// ListInvoices returns the invoices matching f. A zero filter returns every
// invoice.
func (s *Service) ListInvoices(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error) {
	if f.Status != nil && !f.Status.IsValid() {
		return nil, domain.NewValidationError("payment_status", "invalid")
	}

	invs, err := s.invoices.ListByFilter(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("fieldops.ListInvoices: %w", err)
	}
	return invs, nil
}

func (s *Service) checkInvoiceRefs(ctx context.Context, input InvoiceInput) error {
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		return refErr(err, domain.EntityKindCustomer, input.CustomerID)
	}
	if input.JobID != nil {
		if _, err := s.jobs.GetByID(ctx, *input.JobID); err != nil {
			return refErr(err, domain.EntityKindJob, *input.JobID)
		}
	}
	return nil
}

// invoiceNumber derives a number from the clock, offset by attempt.
func (s *Service) invoiceNumber(attempt int) string {
	return fmt.Sprintf("INV-%06d", (s.now().UnixMilli()+int64(attempt))%1_000_000)
}
