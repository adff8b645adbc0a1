// Package technician implements the technician repository using PostgreSQL.
package technician

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

const table = "technicians"

var columns = []string{
	"id", "name", "email", "phone", "specialization", "skills",
	"status", "notes", "created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides technician persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new technician repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, t *domain.Technician) (*domain.Technician, error) {
	id := uuid.New()
	query := postgres.Builder().
		Insert(table).
		Columns("id", "name", "email", "phone", "specialization", "skills", "status", "notes").
		Values(id, t.Name, t.Email, t.Phone, t.Specialization, skills(t.Skills), string(t.Status), t.Notes).
		Suffix(returning)

	return r.one(ctx, query, id)
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	query := postgres.Builder().Select(columns...).From(table).Where(sq.Eq{"id": id})
	return r.one(ctx, query, id)
}

// GetByIDs returns the technicians that exist among ids (batch for DataLoader).
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Technician, error) {
	if len(ids) == 0 {
		return []domain.Technician{}, nil
	}
	query := postgres.Builder().Select(columns...).From(table).Where(sq.Eq{"id": ids})
	return r.many(ctx, query, "get technicians by ids")
}

func (r *Repo) Update(ctx context.Context, t *domain.Technician) (*domain.Technician, error) {
	query := postgres.Builder().
		Update(table).
		Set("name", t.Name).
		Set("email", t.Email).
		Set("phone", t.Phone).
		Set("specialization", t.Specialization).
		Set("skills", skills(t.Skills)).
		Set("status", string(t.Status)).
		Set("notes", t.Notes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": t.ID}).
		Suffix(returning)

	return r.one(ctx, query, t.ID)
}

// SetStatus changes only the status column.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.TechnicianStatus) (*domain.Technician, error) {
	query := postgres.Builder().
		Update(table).
		Set("status", string(status)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning)

	return r.one(ctx, query, id)
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool),
		postgres.Builder().Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return postgres.MapError(err, "technician", id)
	}
	if n == 0 {
		return fmt.Errorf("technician %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Technician, error) {
	query := postgres.Builder().Select(columns...).From(table).OrderBy("created_at", "id")
	return r.many(ctx, query, "list technicians")
}

func (r *Repo) one(ctx context.Context, query sq.Sqlizer, id uuid.UUID) (*domain.Technician, error) {
	row, err := postgres.Row(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("build technician query: %w", err)
	}
	t, err := scanTechnician(row)
	if err != nil {
		return nil, postgres.MapError(err, "technician", id)
	}
	return &t, nil
}

func (r *Repo) many(ctx context.Context, query sq.Sqlizer, op string) ([]domain.Technician, error) {
	rows, err := postgres.Rows(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]domain.Technician, 0)
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTechnician(row scanner) (domain.Technician, error) {
	var (
		t      domain.Technician
		status string
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Email, &t.Phone, &t.Specialization, &t.Skills,
		&status, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Technician{}, err
	}
	t.Status = domain.TechnicianStatus(status)
	return t, nil
}

// skills keeps the column NOT NULL for technicians without skills.
func skills(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
