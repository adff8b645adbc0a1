// Package views serves the derived admin views through the view cache and
// turns entity mutations into cache invalidations.
package views

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/aggregate"
	"github.com/heartmarshall/fieldservice-backend/internal/config"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/viewcache"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type customerRepo interface {
	List(ctx context.Context) ([]domain.Customer, error)
}

type technicianRepo interface {
	List(ctx context.Context) ([]domain.Technician, error)
}

type jobRepo interface {
	List(ctx context.Context) ([]domain.Job, error)
}

type invoiceRepo interface {
	List(ctx context.Context) ([]domain.Invoice, error)
}

type inventoryRepo interface {
	List(ctx context.Context) ([]domain.InventoryItem, error)
	ListUsage(ctx context.Context) ([]domain.StockUsageRecord, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service computes the derived views on demand and caches them until a
// mutation of a source entity kind invalidates them.
type Service struct {
	log         *slog.Logger
	cfg         config.ViewsConfig
	cal         aggregate.Calendar
	customers   customerRepo
	technicians technicianRepo
	jobs        jobRepo
	invoices    invoiceRepo
	inventory   inventoryRepo
	cache       *viewcache.Cache
	now         func() time.Time
}

// NewService creates a new views service. obs may be nil.
func NewService(
	logger *slog.Logger,
	cfg config.ViewsConfig,
	customers customerRepo,
	technicians technicianRepo,
	jobs jobRepo,
	invoices invoiceRepo,
	inventory inventoryRepo,
	obs viewcache.Observer,
) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	cfg.Location = loc

	s := &Service{
		log:         logger.With("service", "views"),
		cfg:         cfg,
		cal:         aggregate.Calendar{Location: loc, RevenueWindow: cfg.RevenueWindow()},
		customers:   customers,
		technicians: technicians,
		jobs:        jobs,
		invoices:    invoices,
		inventory:   inventory,
		now:         time.Now,
	}
	s.cache = viewcache.New(logger, s.compute, obs)
	return s
}

// GetView returns the current value of a view, recomputing it when stale.
// The concrete type of the value depends on the view, see compute.
func (s *Service) GetView(ctx context.Context, view viewcache.View, p Params) (any, error) {
	key, err := s.key(view, p)
	if err != nil {
		return nil, err
	}

	v, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("views.GetView %s: %w", key, err)
	}
	return v, nil
}

// Read is GetView for presentation callers: a failed recompute degrades to
// the last known value or to an explicit unavailable result, and a value
// invalidated while it was computed is marked superseded. Validation and
// unknown-view errors are still returned as errors.
func (s *Service) Read(ctx context.Context, view viewcache.View, p Params) (Result, error) {
	key, err := s.key(view, p)
	if err != nil {
		return Result{}, err
	}

	v, superseded, err := s.cache.Load(ctx, key)
	if err == nil {
		if superseded {
			return Result{Value: v, Status: StatusSuperseded}, nil
		}
		return Result{Value: v, Status: StatusFresh}, nil
	}
	if ctx.Err() != nil {
		return Result{}, err
	}

	if last, ok := s.cache.Peek(key); ok {
		s.log.WarnContext(ctx, "serving last known view",
			slog.String("view", key.String()),
			slog.String("error", err.Error()),
		)
		return Result{Value: last, Status: StatusFallback, Err: err}, nil
	}

	s.log.ErrorContext(ctx, "view unavailable",
		slog.String("view", key.String()),
		slog.String("error", err.Error()),
	)
	return Result{Status: StatusUnavailable, Err: err}, nil
}

// NotifyMutation invalidates every view derived from the given entity kind.
// It must be called after the write has committed.
func (s *Service) NotifyMutation(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error {
	if !kind.IsValid() {
		return domain.NewValidationError("kind", fmt.Sprintf("unknown entity kind %q", kind))
	}

	stale := s.cache.Invalidate(kind)

	s.log.DebugContext(ctx, "views invalidated",
		slog.String("kind", string(kind)),
		slog.String("id", id.String()),
		slog.Int("views", len(stale)),
	)
	return nil
}

// Notify is NotifyMutation for a domain.Mutation.
func (s *Service) Notify(ctx context.Context, m domain.Mutation) error {
	return s.NotifyMutation(ctx, m.Kind, m.ID)
}

// State reports the cache state of a view for the given params.
func (s *Service) State(view viewcache.View, p Params) viewcache.State {
	key, err := s.key(view, p)
	if err != nil {
		return viewcache.StateStale
	}
	return s.cache.State(key)
}
