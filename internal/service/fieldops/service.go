// Package fieldops implements the write paths for customers, technicians,
// jobs, invoices and inventory items. Every committed write is reported to
// the notifier so dependent views are invalidated.
package fieldops

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type customerRepo interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Customer, error)
	Search(ctx context.Context, text string) ([]domain.Customer, error)
}

type technicianRepo interface {
	Create(ctx context.Context, t *domain.Technician) (*domain.Technician, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error)
	Update(ctx context.Context, t *domain.Technician) (*domain.Technician, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.TechnicianStatus) (*domain.Technician, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Technician, error)
}

type jobRepo interface {
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFilter(ctx context.Context, f domain.JobFilter) ([]domain.Job, error)
}

type invoiceRepo interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFilter(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error)
}

type itemRepo interface {
	Create(ctx context.Context, it *domain.InventoryItem) (*domain.InventoryItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	Update(ctx context.Context, it *domain.InventoryItem) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.InventoryItem, error)
	SumUsage(ctx context.Context, itemID uuid.UUID) (int, error)
}

type notifier interface {
	NotifyMutation(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repos groups the entity stores the service writes to.
type Repos struct {
	Customers   customerRepo
	Technicians technicianRepo
	Jobs        jobRepo
	Invoices    invoiceRepo
	Items       itemRepo
}

// Service implements the field operations write side.
type Service struct {
	log         *slog.Logger
	customers   customerRepo
	technicians technicianRepo
	jobs        jobRepo
	invoices    invoiceRepo
	items       itemRepo
	notify      notifier
	tx          txManager
	now         func() time.Time
}

// NewService creates a new field operations service instance.
func NewService(logger *slog.Logger, repos Repos, notify notifier, tx txManager) *Service {
	return &Service{
		log:         logger.With("service", "fieldops"),
		customers:   repos.Customers,
		technicians: repos.Technicians,
		jobs:        repos.Jobs,
		invoices:    repos.Invoices,
		items:       repos.Items,
		notify:      notify,
		tx:          tx,
		now:         time.Now,
	}
}

// committed reports a durable write. A notifier failure is logged, not
// returned, since the write cannot be taken back.
func (s *Service) committed(ctx context.Context, kind domain.EntityKind, action domain.MutationAction, id uuid.UUID) {
	if err := s.notify.NotifyMutation(ctx, kind, id); err != nil {
		s.log.ErrorContext(ctx, "notify mutation",
			slog.String("kind", string(kind)),
			slog.String("action", string(action)),
			slog.String("id", id.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	s.log.DebugContext(ctx, "entity mutated",
		slog.String("kind", string(kind)),
		slog.String("action", string(action)),
		slog.String("id", id.String()),
	)
}
