// Package customer implements the customer repository using PostgreSQL.
package customer

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

const table = "customers"

var columns = []string{
	"id", "name", "company", "email", "phone", "address",
	"customer_type", "notes", "created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides customer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new customer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a customer with a fresh id and returns the stored row.
func (r *Repo) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	id := uuid.New()
	query := postgres.Builder().
		Insert(table).
		Columns("id", "name", "company", "email", "phone", "address", "customer_type", "notes").
		Values(id, c.Name, c.Company, c.Email, c.Phone, c.Address, string(c.CustomerType), c.Notes).
		Suffix(returning)

	return r.one(ctx, query, id)
}

// GetByID returns domain.ErrNotFound if the customer does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id})

	return r.one(ctx, query, id)
}

// GetByIDs returns the customers that exist among ids (batch for DataLoader).
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Customer, error) {
	if len(ids) == 0 {
		return []domain.Customer{}, nil
	}
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": ids})

	return r.many(ctx, query, "get customers by ids")
}

// Update overwrites the editable columns and bumps updated_at.
func (r *Repo) Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	query := postgres.Builder().
		Update(table).
		Set("name", c.Name).
		Set("company", c.Company).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("address", c.Address).
		Set("customer_type", string(c.CustomerType)).
		Set("notes", c.Notes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": c.ID}).
		Suffix(returning)

	return r.one(ctx, query, c.ID)
}

// Delete removes a customer. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query := postgres.Builder().Delete(table).Where(sq.Eq{"id": id})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return postgres.MapError(err, "customer", id)
	}
	if n == 0 {
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns every customer ordered by creation time.
func (r *Repo) List(ctx context.Context) ([]domain.Customer, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at", "id")

	return r.many(ctx, query, "list customers")
}

// Search matches text against name, company and email case-insensitively.
func (r *Repo) Search(ctx context.Context, text string) ([]domain.Customer, error) {
	pattern := "%" + escapeLike(text) + "%"
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"company": pattern},
			sq.ILike{"email": pattern},
		}).
		OrderBy("created_at", "id")

	return r.many(ctx, query, "search customers")
}

func (r *Repo) one(ctx context.Context, query sq.Sqlizer, id uuid.UUID) (*domain.Customer, error) {
	row, err := postgres.Row(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("build customer query: %w", err)
	}
	c, err := scanCustomer(row)
	if err != nil {
		return nil, postgres.MapError(err, "customer", id)
	}
	return &c, nil
}

func (r *Repo) many(ctx context.Context, query sq.Sqlizer, op string) ([]domain.Customer, error) {
	rows, err := postgres.Rows(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]domain.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (domain.Customer, error) {
	var (
		c            domain.Customer
		customerType string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Address,
		&customerType, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Customer{}, err
	}
	c.CustomerType = domain.CustomerType(customerType)
	return c, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
