package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// RecordUsage creates a usage record and decrements the item's stock as one
// transaction. Either both writes commit or neither does; any failure inside
// the transaction is wrapped in domain.ErrCompoundWrite alongside its cause
// (domain.ErrReferentialGap for an unknown item or job, domain.ErrValidation
// for insufficient stock).
func (s *Service) RecordUsage(ctx context.Context, input RecordUsageInput) (*domain.StockUsageRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var record *domain.StockUsageRecord

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.inventory.GetByID(txCtx, input.ItemID); err != nil {
			return resolveRef(err, domain.EntityKindInventoryItem, input.ItemID)
		}
		if _, err := s.jobs.GetByID(txCtx, input.JobID); err != nil {
			return resolveRef(err, domain.EntityKindJob, input.JobID)
		}

		created, err := s.inventory.CreateUsage(txCtx, &domain.StockUsageRecord{
			ItemID:       input.ItemID,
			JobID:        input.JobID,
			QuantityUsed: input.Quantity,
		})
		if err != nil {
			return fmt.Errorf("create usage: %w", err)
		}

		if _, err := s.inventory.AdjustStock(txCtx, input.ItemID, -input.Quantity); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}

		record = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inventory.RecordUsage: %w: %w", domain.ErrCompoundWrite, err)
	}

	s.notifyCommitted(ctx, record.ID, domain.EntityKindStockUsageRecord)
	s.notifyCommitted(ctx, input.ItemID, domain.EntityKindInventoryItem)

	s.log.InfoContext(ctx, "stock usage recorded",
		slog.String("item_id", input.ItemID.String()),
		slog.String("job_id", input.JobID.String()),
		slog.Int("quantity", input.Quantity),
	)

	return record, nil
}

// UsageByJob returns the usage records of one job.
func (s *Service) UsageByJob(ctx context.Context, jobID uuid.UUID) ([]domain.StockUsageRecord, error) {
	if jobID == uuid.Nil {
		return nil, domain.NewValidationError("job_id", "required")
	}

	records, err := s.inventory.ListUsageByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("inventory.UsageByJob: %w", err)
	}
	return records, nil
}

// resolveRef turns a missing referenced entity into a ReferenceError.
func resolveRef(err error, kind domain.EntityKind, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewReferenceError(kind, id)
	}
	return fmt.Errorf("get %s: %w", kind, err)
}
