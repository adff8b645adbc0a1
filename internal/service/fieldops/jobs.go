package fieldops

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// CreateJob stores a new job. The customer and, when set, the assigned
// technician must exist.
func (s *Service) CreateJob(ctx context.Context, input JobInput) (*domain.Job, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Job
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkJobRefs(txCtx, input); err != nil {
			return err
		}
		var j domain.Job
		input.apply(&j)

		var err error
		created, err = s.jobs.Create(txCtx, &j)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fieldops.CreateJob: %w", err)
	}

	s.committed(ctx, domain.EntityKindJob, domain.MutationCreated, created.ID)
	return created, nil
}

// UpdateJob replaces the writable fields of a job.
func (s *Service) UpdateJob(ctx context.Context, id uuid.UUID, input JobInput) (*domain.Job, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Job
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, err := s.jobs.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.checkJobRefs(txCtx, input); err != nil {
			return err
		}
		input.apply(cur)
		updated, err = s.jobs.Update(txCtx, cur)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fieldops.UpdateJob: %w", err)
	}

	s.committed(ctx, domain.EntityKindJob, domain.MutationUpdated, id)
	return updated, nil
}

// DeleteJob removes a job. Its usage records and invoices are kept.
func (s *Service) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		return fmt.Errorf("fieldops.DeleteJob: %w", err)
	}

	s.committed(ctx, domain.EntityKindJob, domain.MutationDeleted, id)
	return nil
}

// GetJob returns a job by id.
func (s *Service) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fieldops.GetJob: %w", err)
	}
	return j, nil
}

// ListJobs returns the jobs matching f. A zero filter returns every job.
func (s *Service) ListJobs(ctx context.Context, f domain.JobFilter) ([]domain.Job, error) {
	if f.Status != nil && !f.Status.IsValid() {
		return nil, domain.NewValidationError("status", "invalid")
	}
	if f.Priority != nil && !f.Priority.IsValid() {
		return nil, domain.NewValidationError("priority", "invalid")
	}
	if f.ScheduledFrom != nil && f.ScheduledTo != nil && f.ScheduledTo.Before(*f.ScheduledFrom) {
		return nil, domain.NewValidationError("scheduled_to", "must not precede scheduled_from")
	}

	js, err := s.jobs.ListByFilter(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("fieldops.ListJobs: %w", err)
	}
	return js, nil
}

func (s *Service) checkJobRefs(ctx context.Context, input JobInput) error {
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		return refErr(err, domain.EntityKindCustomer, input.CustomerID)
	}
	if input.AssignedTechnician != nil {
		if _, err := s.technicians.GetByID(ctx, *input.AssignedTechnician); err != nil {
			return refErr(err, domain.EntityKindTechnician, *input.AssignedTechnician)
		}
	}
	return nil
}

// refErr reports a missing referenced entity as a ReferenceError.
func refErr(err error, kind domain.EntityKind, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewReferenceError(kind, id)
	}
	return fmt.Errorf("get %s: %w", kind, err)
}
