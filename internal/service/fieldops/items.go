package fieldops

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// CreateItem stores a new inventory item. With no usage recorded yet, the
// stock baseline equals the initial stock.
func (s *Service) CreateItem(ctx context.Context, input ItemInput) (*domain.InventoryItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var it domain.InventoryItem
	input.apply(&it)
	it.StockBaseline = it.QuantityInStock

	created, err := s.items.Create(ctx, &it)
	if err != nil {
		return nil, fmt.Errorf("fieldops.CreateItem: %w", err)
	}

	s.committed(ctx, domain.EntityKindInventoryItem, domain.MutationCreated, created.ID)
	return created, nil
}

// UpdateItem replaces the writable fields of an item. A manual stock change
// moves the baseline with it so recorded usage stays consistent.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*domain.InventoryItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.InventoryItem
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, err := s.items.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		used, err := s.items.SumUsage(txCtx, id)
		if err != nil {
			return fmt.Errorf("sum usage: %w", err)
		}
		input.apply(cur)
		cur.StockBaseline = cur.QuantityInStock + used

		updated, err = s.items.Update(txCtx, cur)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fieldops.UpdateItem: %w", err)
	}

	s.committed(ctx, domain.EntityKindInventoryItem, domain.MutationUpdated, id)
	return updated, nil
}

// DeleteItem removes an item. Its usage records are kept and surface as
// dangling usage in stock reconciliation.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("fieldops.DeleteItem: %w", err)
	}

	s.committed(ctx, domain.EntityKindInventoryItem, domain.MutationDeleted, id)
	return nil
}

// GetItem returns an inventory item by id.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fieldops.GetItem: %w", err)
	}
	return it, nil
}

// ListItems returns every inventory item.
func (s *Service) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fieldops.ListItems: %w", err)
	}
	return items, nil
}
