package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// JobRepo stores jobs. It does not check references; that is the caller's job.
type JobRepo struct{ s *Store }

// Jobs returns the job repository.
func (s *Store) Jobs() *JobRepo { return &JobRepo{s: s} }

func jobCreated(j domain.Job) time.Time { return j.CreatedAt }
func jobID(j domain.Job) uuid.UUID      { return j.ID }

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	out := cloneJob(*j)
	err := r.s.write(ctx, func(st *state) error {
		now := r.s.stamp()
		out.ID = uuid.New()
		out.CreatedAt, out.UpdatedAt = now, now
		st.jobs[out.ID] = cloneJob(out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var out domain.Job
	err := r.s.read(ctx, func(st *state) error {
		j, ok := st.jobs[id]
		if !ok {
			return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
		}
		out = cloneJob(j)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *JobRepo) Update(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	out := cloneJob(*j)
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.jobs[j.ID]
		if !ok {
			return fmt.Errorf("job %s: %w", j.ID, domain.ErrNotFound)
		}
		out.CreatedAt = cur.CreatedAt
		out.UpdatedAt = r.s.stamp()
		st.jobs[j.ID] = cloneJob(out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.jobs[id]; !ok {
			return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
		}
		delete(st.jobs, id)
		return nil
	})
}

// List returns every job ordered by creation time.
func (r *JobRepo) List(ctx context.Context) ([]domain.Job, error) {
	return r.ListByFilter(ctx, domain.JobFilter{})
}

// ListByFilter returns the jobs matching f ordered by creation time.
func (r *JobRepo) ListByFilter(ctx context.Context, f domain.JobFilter) ([]domain.Job, error) {
	out := make([]domain.Job, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, j := range sortedValues(st.jobs, jobCreated, jobID) {
			if f.Matches(j) {
				out = append(out, cloneJob(j))
			}
		}
		return nil
	})
	return out, err
}
