// Package memory implements the entity stores in process memory. It mirrors
// the postgres adapter method for method so either can back the services.
//
// Transactions work on a cloned copy of the whole state that replaces the
// live state on commit. A transaction holds the store's write lock for its
// whole duration, so transactions are serialized.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

type state struct {
	customers   map[uuid.UUID]domain.Customer
	technicians map[uuid.UUID]domain.Technician
	jobs        map[uuid.UUID]domain.Job
	invoices    map[uuid.UUID]domain.Invoice
	items       map[uuid.UUID]domain.InventoryItem
	usage       map[uuid.UUID]domain.StockUsageRecord
}

func newState() *state {
	return &state{
		customers:   map[uuid.UUID]domain.Customer{},
		technicians: map[uuid.UUID]domain.Technician{},
		jobs:        map[uuid.UUID]domain.Job{},
		invoices:    map[uuid.UUID]domain.Invoice{},
		items:       map[uuid.UUID]domain.InventoryItem{},
		usage:       map[uuid.UUID]domain.StockUsageRecord{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.technicians {
		c.technicians[k] = cloneTechnician(v)
	}
	for k, v := range s.jobs {
		c.jobs[k] = cloneJob(v)
	}
	for k, v := range s.invoices {
		c.invoices[k] = cloneInvoice(v)
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.usage {
		c.usage[k] = v
	}
	return c
}

// Store holds every entity collection. Use the accessor methods to get the
// per-entity repositories; they all share the same state and lock.
type Store struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{state: newState(), now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the timestamp source. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Ping reports whether the store can serve requests. A memory store is
// always available while ctx is live.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type txCtxKey struct{}

func txState(ctx context.Context) (*state, bool) {
	st, ok := ctx.Value(txCtxKey{}).(*state)
	return st, ok
}

// RunInTx runs fn against a private copy of the state. The copy replaces the
// live state only if fn returns nil. A RunInTx inside fn joins the outer
// transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txState(ctx); ok {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(context.WithValue(ctx, txCtxKey{}, work)); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st, ok := txState(ctx); ok {
		return fn(st)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st, ok := txState(ctx); ok {
		return fn(st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *Store) stamp() time.Time {
	return s.now().Truncate(time.Microsecond)
}

func cloneTechnician(t domain.Technician) domain.Technician {
	t.Skills = slices.Clone(t.Skills)
	return t
}

func cloneJob(j domain.Job) domain.Job {
	if j.AssignedTechnician != nil {
		id := *j.AssignedTechnician
		j.AssignedTechnician = &id
	}
	if j.ScheduledDate != nil {
		at := *j.ScheduledDate
		j.ScheduledDate = &at
	}
	return j
}

func cloneInvoice(inv domain.Invoice) domain.Invoice {
	inv.LineItems = slices.Clone(inv.LineItems)
	if inv.JobID != nil {
		id := *inv.JobID
		inv.JobID = &id
	}
	return inv
}

// sortedValues returns map values ordered by created time, then id.
func sortedValues[V any](m map[uuid.UUID]V, created func(V) time.Time, id func(V) uuid.UUID) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b V) int {
		if c := created(a).Compare(created(b)); c != 0 {
			return c
		}
		ia, ib := id(a), id(b)
		return slices.Compare(ia[:], ib[:])
	})
	return out
}
