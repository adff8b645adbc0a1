package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/aggregate"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// ReconcileResult is the outcome of Reconcile.
type ReconcileResult struct {
	aggregate.Reconciliation
	// Repaired lists the items whose stock was reset to the expected level.
	Repaired []uuid.UUID
	// Skipped lists drifting items that could not be repaired because their
	// expected level is negative.
	Skipped []uuid.UUID
}

// Reconcile compares each item's stored stock with baseline minus recorded
// usage. With repair set, drifting items are reset to the expected level in
// one transaction.
func (s *Service) Reconcile(ctx context.Context, repair bool) (ReconcileResult, error) {
	var res ReconcileResult

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		items, err := s.inventory.List(txCtx)
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		usage, err := s.inventory.ListUsage(txCtx)
		if err != nil {
			return fmt.Errorf("list usage: %w", err)
		}

		res = ReconcileResult{Reconciliation: aggregate.StockReconciliation(items, usage)}
		if !repair {
			return nil
		}

		for _, d := range res.Drift {
			if d.Expected < 0 {
				res.Skipped = append(res.Skipped, d.ItemID)
				continue
			}
			if err := s.inventory.SetStock(txCtx, d.ItemID, d.Expected); err != nil {
				return fmt.Errorf("set stock %s: %w", d.ItemID, err)
			}
			res.Repaired = append(res.Repaired, d.ItemID)
		}
		return nil
	})
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("inventory.Reconcile: %w", err)
	}

	for _, id := range res.Repaired {
		s.notifyCommitted(ctx, id, domain.EntityKindInventoryItem)
	}

	s.log.InfoContext(ctx, "stock reconciled",
		slog.Int("checked", res.Checked),
		slog.Int("drift", len(res.Drift)),
		slog.Int("dangling", len(res.Dangling)),
		slog.Int("repaired", len(res.Repaired)),
		slog.Int("skipped", len(res.Skipped)),
	)

	return res, nil
}
