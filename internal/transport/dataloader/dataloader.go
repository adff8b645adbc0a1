// Package dataloader provides per-request DataLoaders that batch by-id
// lookups of customers and technicians into single store calls. Listing
// endpoints use them to join display names onto jobs.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type customerRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Customer, error)
}

type technicianRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Technician, error)
}

// Repos holds the repositories required by the loaders.
type Repos struct {
	Customers   customerRepo
	Technicians technicianRepo
}

// Loaders holds the per-request DataLoader instances.
type Loaders struct {
	CustomerByID   *dataloader.Loader[uuid.UUID, *domain.Customer]
	TechnicianByID *dataloader.Loader[uuid.UUID, *domain.Technician]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		CustomerByID:   newLoader(newCustomerBatchFn(repos.Customers)),
		TechnicianByID: newLoader(newTechnicianBatchFn(repos.Technicians)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}
