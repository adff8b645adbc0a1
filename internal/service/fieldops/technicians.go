package fieldops

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// CreateTechnician stores a new technician.
func (s *Service) CreateTechnician(ctx context.Context, input TechnicianInput) (*domain.Technician, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var t domain.Technician
	input.apply(&t)

	created, err := s.technicians.Create(ctx, &t)
	if err != nil {
		return nil, fmt.Errorf("fieldops.CreateTechnician: %w", err)
	}

	s.committed(ctx, domain.EntityKindTechnician, domain.MutationCreated, created.ID)
	return created, nil
}

// UpdateTechnician replaces the writable fields of a technician.
func (s *Service) UpdateTechnician(ctx context.Context, id uuid.UUID, input TechnicianInput) (*domain.Technician, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Technician
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, err := s.technicians.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		input.apply(cur)
		updated, err = s.technicians.Update(txCtx, cur)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fieldops.UpdateTechnician: %w", err)
	}

	s.committed(ctx, domain.EntityKindTechnician, domain.MutationUpdated, id)
	return updated, nil
}

// DeactivateTechnician marks a technician inactive. Assigned jobs keep the
// assignment.
func (s *Service) DeactivateTechnician(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	t, err := s.technicians.SetStatus(ctx, id, domain.TechnicianStatusInactive)
	if err != nil {
		return nil, fmt.Errorf("fieldops.DeactivateTechnician: %w", err)
	}

	s.committed(ctx, domain.EntityKindTechnician, domain.MutationUpdated, id)
	return t, nil
}

// DeleteTechnician removes a technician. Jobs assigned to it are kept.
func (s *Service) DeleteTechnician(ctx context.Context, id uuid.UUID) error {
	if err := s.technicians.Delete(ctx, id); err != nil {
		return fmt.Errorf("fieldops.DeleteTechnician: %w", err)
	}

	s.committed(ctx, domain.EntityKindTechnician, domain.MutationDeleted, id)
	return nil
}

// GetTechnician returns a technician by id.
func (s *Service) GetTechnician(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	t, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fieldops.GetTechnician: %w", err)
	}
	return t, nil
}

// ListTechnicians returns every technician.
func (s *Service) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	ts, err := s.technicians.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fieldops.ListTechnicians: %w", err)
	}
	return ts, nil
}
