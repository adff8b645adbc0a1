// Package viewcache caches derived views and tracks their freshness.
//
// Each entry moves between three states. Fresh serves the cached value.
// Stale, which is also the state of an absent entry, triggers a recompute on
// the next read. Computing means one computation is in flight and every
// concurrent reader joins it instead of starting another. A mutation that
// lands while an entry is computing is not lost: the finished result is
// handed to the waiters but the entry drops back to Stale.
package viewcache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// State is the freshness of a cache entry.
type State int

const (
	StateStale State = iota
	StateFresh
	StateComputing
)

func (s State) String() string {
	switch s {
	case StateStale:
		return "stale"
	case StateFresh:
		return "fresh"
	case StateComputing:
		return "computing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ComputeFunc produces the value of a view. It receives a context that is
// not cancelled when the reader that triggered it goes away.
type ComputeFunc func(ctx context.Context, key Key) (any, error)

// Observer receives cache events. Implementations must be safe for
// concurrent use.
type Observer interface {
	Hit(view View)
	Miss(view View)
	Join(view View)
	Computed(view View, took time.Duration, err error)
	Invalidated(view View)
}

type nopObserver struct{}

func (nopObserver) Hit(View)                            {}
func (nopObserver) Miss(View)                           {}
func (nopObserver) Join(View)                           {}
func (nopObserver) Computed(View, time.Duration, error) {}
func (nopObserver) Invalidated(View)                    {}

// Cache is an explicit, injectable view cache. The zero value is not usable;
// create one with New.
type Cache struct {
	compute ComputeFunc
	obs     Observer
	log     *slog.Logger

	mu      sync.Mutex
	entries map[Key]*entry
}

type entry struct {
	mu       sync.Mutex
	state    State
	gen      uint64
	value    any
	hasValue bool
	call     *call
}

// call is one in-flight computation shared by every reader that joined it.
type call struct {
	done       chan struct{}
	val        any
	err        error
	superseded bool
	waiters    int
}

// New creates a cache that fills entries with compute. obs may be nil.
func New(log *slog.Logger, compute ComputeFunc, obs Observer) *Cache {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Cache{
		compute: compute,
		obs:     obs,
		log:     log.With("component", "viewcache"),
		entries: make(map[Key]*entry),
	}
}

func (c *Cache) entry(key Key) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{state: StateStale}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) lookup(key Key) (*entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Get returns the value for key. A fresh entry is returned directly.
// Otherwise the caller starts a computation or joins the one in flight and
// waits for it. If ctx ends first Get returns ctx.Err() while the computation
// keeps running for the other readers.
//
// A failed computation returns an error wrapping domain.ErrRecompute and
// leaves the entry Stale; the previous value stays available via Peek.
func (c *Cache) Get(ctx context.Context, key Key) (any, error) {
	v, _, err := c.Load(ctx, key)
	return v, err
}

// Load is Get that also reports whether the value was superseded: the entry
// was invalidated while the value was being computed, so it may predate the
// mutation. A superseded entry stays Stale and the next read recomputes it.
func (c *Cache) Load(ctx context.Context, key Key) (val any, superseded bool, err error) {
	e := c.entry(key)

	e.mu.Lock()
	if e.state == StateFresh {
		v := e.value
		e.mu.Unlock()
		c.obs.Hit(key.View)
		return v, false, nil
	}

	cl := e.call
	if cl == nil {
		cl = &call{done: make(chan struct{})}
		e.call = cl
		e.state = StateComputing
		c.obs.Miss(key.View)
		go c.run(context.WithoutCancel(ctx), key, e, cl, e.gen)
	} else {
		c.obs.Join(key.View)
	}
	cl.waiters++
	e.mu.Unlock()

	select {
	case <-cl.done:
		return cl.val, cl.superseded, cl.err
	case <-ctx.Done():
		e.mu.Lock()
		cl.waiters--
		e.mu.Unlock()
		return nil, false, ctx.Err()
	}
}

func (c *Cache) run(ctx context.Context, key Key, e *entry, cl *call, gen uint64) {
	start := time.Now()
	val, err := c.safeCompute(ctx, key)
	took := time.Since(start)

	e.mu.Lock()
	if err != nil {
		e.state = StateStale
		cl.err = fmt.Errorf("%w: %s: %w", domain.ErrRecompute, key, err)
	} else {
		e.value = val
		e.hasValue = true
		cl.val = val
		if e.gen == gen {
			e.state = StateFresh
		} else {
			e.state = StateStale
			cl.superseded = true
		}
	}
	e.call = nil
	e.mu.Unlock()

	c.obs.Computed(key.View, took, err)
	if err != nil {
		c.log.WarnContext(ctx, "view recompute failed",
			slog.String("view", key.String()),
			slog.String("error", err.Error()),
		)
	}
	close(cl.done)
}

func (c *Cache) safeCompute(ctx context.Context, key Key) (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.compute(ctx, key)
}

// Peek returns the last successfully computed value for key, fresh or not.
func (c *Cache) Peek(key Key) (any, bool) {
	e, ok := c.lookup(key)
	if !ok {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, e.hasValue
}

// State returns the current state of key. Absent entries are Stale.
func (c *Cache) State(key Key) State {
	e, ok := c.lookup(key)
	if !ok {
		return StateStale
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Invalidate marks every entry of every view depending on kind as Stale and
// returns those views.
func (c *Cache) Invalidate(kind domain.EntityKind) []View {
	views := Dependents(kind)
	for _, v := range views {
		c.InvalidateView(v)
	}
	return views
}

// InvalidateView marks every params variant of view as Stale. Entries that
// are computing finish into Stale.
func (c *Cache) InvalidateView(view View) {
	c.mu.Lock()
	targets := make([]*entry, 0)
	for k, e := range c.entries {
		if k.View == view {
			targets = append(targets, e)
		}
	}
	c.mu.Unlock()

	for _, e := range targets {
		e.mu.Lock()
		e.gen++
		if e.state == StateFresh {
			e.state = StateStale
		}
		e.mu.Unlock()
	}
	c.obs.Invalidated(view)
}

// waiters reports how many readers are blocked on key's in-flight call.
func (c *Cache) waiters(key Key) int {
	e, ok := c.lookup(key)
	if !ok {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.call == nil {
		return 0
	}
	return e.call.waiters
}
