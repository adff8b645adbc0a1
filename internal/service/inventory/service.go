// Package inventory implements stock consumption and stock reconciliation.
package inventory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

type inventoryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.InventoryItem, error)
	SetStock(ctx context.Context, id uuid.UUID, quantity int) error
	CreateUsage(ctx context.Context, u *domain.StockUsageRecord) (*domain.StockUsageRecord, error)
	ListUsage(ctx context.Context) ([]domain.StockUsageRecord, error)
	ListUsageByJob(ctx context.Context, jobID uuid.UUID) ([]domain.StockUsageRecord, error)
}

type jobRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
}

// notifier receives committed mutations.
type notifier interface {
	NotifyMutation(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements inventory consumption operations.
type Service struct {
	log       *slog.Logger
	inventory inventoryRepo
	jobs      jobRepo
	notify    notifier
	tx        txManager
}

// NewService creates a new inventory service instance.
func NewService(
	logger *slog.Logger,
	inventory inventoryRepo,
	jobs jobRepo,
	notify notifier,
	tx txManager,
) *Service {
	return &Service{
		log:       logger.With("service", "inventory"),
		inventory: inventory,
		jobs:      jobs,
		notify:    notify,
		tx:        tx,
	}
}

// notifyCommitted reports committed mutations. The writes are already durable,
// so a failing notifier is logged rather than returned.
func (s *Service) notifyCommitted(ctx context.Context, id uuid.UUID, kinds ...domain.EntityKind) {
	for _, kind := range kinds {
		if err := s.notify.NotifyMutation(ctx, kind, id); err != nil {
			s.log.ErrorContext(ctx, "notify mutation",
				slog.String("kind", string(kind)),
				slog.String("id", id.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}
