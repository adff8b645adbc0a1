package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// TechnicianRepo stores technicians.
type TechnicianRepo struct{ s *Store }

// Technicians returns the technician repository.
func (s *Store) Technicians() *TechnicianRepo { return &TechnicianRepo{s: s} }

func technicianCreated(t domain.Technician) time.Time { return t.CreatedAt }
func technicianID(t domain.Technician) uuid.UUID      { return t.ID }

func (r *TechnicianRepo) Create(ctx context.Context, t *domain.Technician) (*domain.Technician, error) {
	out := cloneTechnician(*t)
	err := r.s.write(ctx, func(st *state) error {
		now := r.s.stamp()
		out.ID = uuid.New()
		out.CreatedAt, out.UpdatedAt = now, now
		st.technicians[out.ID] = cloneTechnician(out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *TechnicianRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	var out domain.Technician
	err := r.s.read(ctx, func(st *state) error {
		t, ok := st.technicians[id]
		if !ok {
			return fmt.Errorf("technician %s: %w", id, domain.ErrNotFound)
		}
		out = cloneTechnician(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByIDs returns the technicians that exist among ids.
func (r *TechnicianRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Technician, error) {
	out := make([]domain.Technician, 0, len(ids))
	err := r.s.read(ctx, func(st *state) error {
		for _, id := range ids {
			if t, ok := st.technicians[id]; ok {
				out = append(out, cloneTechnician(t))
			}
		}
		return nil
	})
	return out, err
}

func (r *TechnicianRepo) Update(ctx context.Context, t *domain.Technician) (*domain.Technician, error) {
	out := cloneTechnician(*t)
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.technicians[t.ID]
		if !ok {
			return fmt.Errorf("technician %s: %w", t.ID, domain.ErrNotFound)
		}
		out.CreatedAt = cur.CreatedAt
		out.UpdatedAt = r.s.stamp()
		st.technicians[t.ID] = cloneTechnician(out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus changes only the status of a technician.
func (r *TechnicianRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.TechnicianStatus) (*domain.Technician, error) {
	var out domain.Technician
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.technicians[id]
		if !ok {
			return fmt.Errorf("technician %s: %w", id, domain.ErrNotFound)
		}
		cur.Status = status
		cur.UpdatedAt = r.s.stamp()
		st.technicians[id] = cur
		out = cloneTechnician(cur)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a technician. Jobs assigned to it keep the dangling id.
func (r *TechnicianRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.technicians[id]; !ok {
			return fmt.Errorf("technician %s: %w", id, domain.ErrNotFound)
		}
		delete(st.technicians, id)
		return nil
	})
}

func (r *TechnicianRepo) List(ctx context.Context) ([]domain.Technician, error) {
	var out []domain.Technician
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.technicians, technicianCreated, technicianID)
		for i := range out {
			out[i] = cloneTechnician(out[i])
		}
		return nil
	})
	return out, err
}
