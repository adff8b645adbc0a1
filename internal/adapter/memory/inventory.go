package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// InventoryRepo stores inventory items and their usage records.
type InventoryRepo struct{ s *Store }

// Inventory returns the inventory repository.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

func itemCreated(it domain.InventoryItem) time.Time { return it.CreatedAt }
func itemID(it domain.InventoryItem) uuid.UUID      { return it.ID }

func usageUsed(u domain.StockUsageRecord) time.Time { return u.UsedAt }
func usageID(u domain.StockUsageRecord) uuid.UUID   { return u.ID }

func (r *InventoryRepo) Create(ctx context.Context, it *domain.InventoryItem) (*domain.InventoryItem, error) {
	out := *it
	err := r.s.write(ctx, func(st *state) error {
		for _, existing := range st.items {
			if existing.SKU == out.SKU {
				return fmt.Errorf("inventory item %s: %w", out.SKU, domain.ErrAlreadyExists)
			}
		}
		now := r.s.stamp()
		out.ID = uuid.New()
		out.CreatedAt, out.UpdatedAt = now, now
		st.items[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	var out domain.InventoryItem
	err := r.s.read(ctx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InventoryRepo) Update(ctx context.Context, it *domain.InventoryItem) (*domain.InventoryItem, error) {
	out := *it
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.items[it.ID]
		if !ok {
			return fmt.Errorf("inventory item %s: %w", it.ID, domain.ErrNotFound)
		}
		for id, existing := range st.items {
			if id != it.ID && existing.SKU == out.SKU {
				return fmt.Errorf("inventory item %s: %w", out.SKU, domain.ErrAlreadyExists)
			}
		}
		out.CreatedAt = cur.CreatedAt
		out.UpdatedAt = r.s.stamp()
		st.items[it.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an item. Its usage records are kept and become dangling.
func (r *InventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
		}
		delete(st.items, id)
		return nil
	})
}

func (r *InventoryRepo) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.items, itemCreated, itemID)
		return nil
	})
	return out, err
}

// AdjustStock adds delta to the item's stock. A result below zero is
// rejected with a validation error and nothing changes.
func (r *InventoryRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.InventoryItem, error) {
	var out domain.InventoryItem
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.items[id]
		if !ok {
			return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
		}
		if cur.QuantityInStock+delta < 0 {
			return domain.NewValidationError("quantity", "insufficient stock")
		}
		cur.QuantityInStock += delta
		cur.UpdatedAt = r.s.stamp()
		st.items[id] = cur
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStock overwrites the item's stock level. Negative levels are rejected.
func (r *InventoryRepo) SetStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 0 {
		return domain.NewValidationError("quantity", "must be >= 0")
	}
	return r.s.write(ctx, func(st *state) error {
		cur, ok := st.items[id]
		if !ok {
			return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
		}
		cur.QuantityInStock = quantity
		cur.UpdatedAt = r.s.stamp()
		st.items[id] = cur
		return nil
	})
}

// CreateUsage stores a usage record. UsedAt defaults to now.
func (r *InventoryRepo) CreateUsage(ctx context.Context, u *domain.StockUsageRecord) (*domain.StockUsageRecord, error) {
	out := *u
	err := r.s.write(ctx, func(st *state) error {
		out.ID = uuid.New()
		if out.UsedAt.IsZero() {
			out.UsedAt = r.s.stamp()
		}
		st.usage[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsage returns every usage record ordered by UsedAt.
func (r *InventoryRepo) ListUsage(ctx context.Context) ([]domain.StockUsageRecord, error) {
	var out []domain.StockUsageRecord
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.usage, usageUsed, usageID)
		return nil
	})
	return out, err
}

// ListUsageByJob returns the usage records of one job ordered by UsedAt.
func (r *InventoryRepo) ListUsageByJob(ctx context.Context, jobID uuid.UUID) ([]domain.StockUsageRecord, error) {
	out := make([]domain.StockUsageRecord, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, u := range sortedValues(st.usage, usageUsed, usageID) {
			if u.JobID == jobID {
				out = append(out, u)
			}
		}
		return nil
	})
	return out, err
}

// SumUsage returns the total quantity recorded against an item.
func (r *InventoryRepo) SumUsage(ctx context.Context, itemID uuid.UUID) (int, error) {
	total := 0
	err := r.s.read(ctx, func(st *state) error {
		for _, u := range st.usage {
			if u.ItemID == itemID {
				total += u.QuantityUsed
			}
		}
		return nil
	})
	return total, err
}
