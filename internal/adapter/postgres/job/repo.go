// Package job implements the job repository using PostgreSQL.
package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

const table = "jobs"

var columns = []string{
	"id", "title", "description", "customer_id", "assigned_technician",
	"status", "priority", "scheduled_date", "location", "notes",
	"created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides job persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new job repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	id := uuid.New()
	query := postgres.Builder().
		Insert(table).
		Columns("id", "title", "description", "customer_id", "assigned_technician",
			"status", "priority", "scheduled_date", "location", "notes").
		Values(id, j.Title, j.Description, j.CustomerID, nullUUID(j.AssignedTechnician),
			string(j.Status), string(j.Priority), nullTime(j.ScheduledDate), j.Location, j.Notes).
		Suffix(returning)

	return r.one(ctx, query, id)
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := postgres.Builder().Select(columns...).From(table).Where(sq.Eq{"id": id})
	return r.one(ctx, query, id)
}

func (r *Repo) Update(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	query := postgres.Builder().
		Update(table).
		Set("title", j.Title).
		Set("description", j.Description).
		Set("customer_id", j.CustomerID).
		Set("assigned_technician", nullUUID(j.AssignedTechnician)).
		Set("status", string(j.Status)).
		Set("priority", string(j.Priority)).
		Set("scheduled_date", nullTime(j.ScheduledDate)).
		Set("location", j.Location).
		Set("notes", j.Notes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": j.ID}).
		Suffix(returning)

	return r.one(ctx, query, j.ID)
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool),
		postgres.Builder().Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return postgres.MapError(err, "job", id)
	}
	if n == 0 {
		return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns every job ordered by creation time.
func (r *Repo) List(ctx context.Context) ([]domain.Job, error) {
	return r.ListByFilter(ctx, domain.JobFilter{})
}

// ListByFilter returns the jobs matching f ordered by creation time.
func (r *Repo) ListByFilter(ctx context.Context, f domain.JobFilter) ([]domain.Job, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(filterWhere(f)).
		OrderBy("created_at", "id")

	rows, err := postgres.Rows(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("list jobs: %w", err)
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return result, nil
}

func filterWhere(f domain.JobFilter) sq.And {
	where := sq.And{}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": string(*f.Status)})
	}
	if f.Priority != nil {
		where = append(where, sq.Eq{"priority": string(*f.Priority)})
	}
	if f.CustomerID != nil {
		where = append(where, sq.Eq{"customer_id": *f.CustomerID})
	}
	if f.TechnicianID != nil {
		where = append(where, sq.Eq{"assigned_technician": *f.TechnicianID})
	}
	if f.ScheduledFrom != nil {
		where = append(where, sq.GtOrEq{"scheduled_date": *f.ScheduledFrom})
	}
	if f.ScheduledTo != nil {
		where = append(where, sq.LtOrEq{"scheduled_date": *f.ScheduledTo})
	}
	return where
}

func (r *Repo) one(ctx context.Context, query sq.Sqlizer, id uuid.UUID) (*domain.Job, error) {
	row, err := postgres.Row(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("build job query: %w", err)
	}
	j, err := scanJob(row)
	if err != nil {
		return nil, postgres.MapError(err, "job", id)
	}
	return &j, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (domain.Job, error) {
	var (
		j         domain.Job
		tech      pgtype.UUID
		status    string
		priority  string
		scheduled pgtype.Timestamptz
	)
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.CustomerID, &tech,
		&status, &priority, &scheduled, &j.Location, &j.Notes,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return domain.Job{}, err
	}

	j.Status = domain.JobStatus(status)
	j.Priority = domain.JobPriority(priority)
	if tech.Valid {
		id := uuid.UUID(tech.Bytes)
		j.AssignedTechnician = &id
	}
	if scheduled.Valid {
		at := scheduled.Time.UTC()
		j.ScheduledDate = &at
	}
	return j, nil
}

func nullUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func nullTime(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
