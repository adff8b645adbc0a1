// Package inventory implements the inventory item and stock usage
// repository using PostgreSQL.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

const (
	itemsTable = "inventory_items"
	usageTable = "stock_usage"
)

var itemColumns = []string{
	"id", "sku", "name", "category", "quantity_in_stock", "minimum_stock_threshold",
	"stock_baseline", "unit_cost", "supplier", "notes", "created_at", "updated_at",
}

var usageColumns = []string{"id", "item_id", "job_id", "quantity_used", "used_at"}

var (
	itemReturning  = "RETURNING " + strings.Join(itemColumns, ", ")
	usageReturning = "RETURNING " + strings.Join(usageColumns, ", ")
)

// Repo provides inventory persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inventory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

// Create inserts an item. Returns domain.ErrAlreadyExists for a duplicate SKU.
func (r *Repo) Create(ctx context.Context, it *domain.InventoryItem) (*domain.InventoryItem, error) {
	id := uuid.New()
	query := postgres.Builder().
		Insert(itemsTable).
		Columns("id", "sku", "name", "category", "quantity_in_stock", "minimum_stock_threshold",
			"stock_baseline", "unit_cost", "supplier", "notes").
		Values(id, it.SKU, it.Name, it.Category, it.QuantityInStock, it.MinimumStockThreshold,
			it.StockBaseline, it.UnitCost, it.Supplier, it.Notes).
		Suffix(itemReturning)

	return r.oneItem(ctx, query, id)
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	query := postgres.Builder().Select(itemColumns...).From(itemsTable).Where(sq.Eq{"id": id})
	return r.oneItem(ctx, query, id)
}

func (r *Repo) Update(ctx context.Context, it *domain.InventoryItem) (*domain.InventoryItem, error) {
	query := postgres.Builder().
		Update(itemsTable).
		Set("sku", it.SKU).
		Set("name", it.Name).
		Set("category", it.Category).
		Set("quantity_in_stock", it.QuantityInStock).
		Set("minimum_stock_threshold", it.MinimumStockThreshold).
		Set("stock_baseline", it.StockBaseline).
		Set("unit_cost", it.UnitCost).
		Set("supplier", it.Supplier).
		Set("notes", it.Notes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": it.ID}).
		Suffix(itemReturning)

	return r.oneItem(ctx, query, it.ID)
}

// Delete removes an item. Usage records referencing it are kept.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool),
		postgres.Builder().Delete(itemsTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return postgres.MapError(err, "inventory item", id)
	}
	if n == 0 {
		return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]domain.InventoryItem, error) {
	query := postgres.Builder().Select(itemColumns...).From(itemsTable).OrderBy("created_at", "id")

	rows, err := postgres.Rows(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	result := make([]domain.InventoryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list inventory items: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	return result, nil
}

// AdjustStock adds delta to quantity_in_stock in a single statement. A result
// below zero leaves the row untouched and returns a validation error.
func (r *Repo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.InventoryItem, error) {
	query := postgres.Builder().
		Update(itemsTable).
		Set("quantity_in_stock", sq.Expr("quantity_in_stock + ?", delta)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where(sq.Expr("quantity_in_stock + ? >= 0", delta)).
		Suffix(itemReturning)

	it, err := r.oneItem(ctx, query, id)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return it, err
	}

	// No row updated: either the item is missing or stock would go negative.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.NewValidationError("quantity", "insufficient stock")
}

// SetStock overwrites quantity_in_stock.
func (r *Repo) SetStock(ctx context.Context, id uuid.UUID, quantity int) error {
	query := postgres.Builder().
		Update(itemsTable).
		Set("quantity_in_stock", quantity).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return postgres.MapError(err, "inventory item", id)
	}
	if n == 0 {
		return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) oneItem(ctx context.Context, query sq.Sqlizer, id uuid.UUID) (*domain.InventoryItem, error) {
	row, err := postgres.Row(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("build inventory query: %w", err)
	}
	it, err := scanItem(row)
	if err != nil {
		return nil, postgres.MapError(err, "inventory item", id)
	}
	return &it, nil
}

// ---------------------------------------------------------------------------
// Usage records
// ---------------------------------------------------------------------------

// CreateUsage inserts a usage record. A zero UsedAt means now.
func (r *Repo) CreateUsage(ctx context.Context, u *domain.StockUsageRecord) (*domain.StockUsageRecord, error) {
	id := uuid.New()
	var usedAt any = sq.Expr("now()")
	if !u.UsedAt.IsZero() {
		usedAt = u.UsedAt
	}
	query := postgres.Builder().
		Insert(usageTable).
		Columns("id", "item_id", "job_id", "quantity_used", "used_at").
		Values(id, u.ItemID, u.JobID, u.QuantityUsed, usedAt).
		Suffix(usageReturning)

	row, err := postgres.Row(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("build usage insert: %w", err)
	}
	out, err := scanUsage(row)
	if err != nil {
		return nil, postgres.MapError(err, "stock usage", id)
	}
	return &out, nil
}

// ListUsage returns every usage record ordered by used_at.
func (r *Repo) ListUsage(ctx context.Context) ([]domain.StockUsageRecord, error) {
	query := postgres.Builder().Select(usageColumns...).From(usageTable).OrderBy("used_at", "id")
	return r.listUsage(ctx, query)
}

// ListUsageByJob returns the usage records of one job ordered by used_at.
func (r *Repo) ListUsageByJob(ctx context.Context, jobID uuid.UUID) ([]domain.StockUsageRecord, error) {
	query := postgres.Builder().
		Select(usageColumns...).
		From(usageTable).
		Where(sq.Eq{"job_id": jobID}).
		OrderBy("used_at", "id")
	return r.listUsage(ctx, query)
}

// SumUsage returns the total quantity recorded against an item.
func (r *Repo) SumUsage(ctx context.Context, itemID uuid.UUID) (int, error) {
	query := postgres.Builder().
		Select("COALESCE(SUM(quantity_used), 0)").
		From(usageTable).
		Where(sq.Eq{"item_id": itemID})

	row, err := postgres.Row(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return 0, fmt.Errorf("build usage sum: %w", err)
	}
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("sum usage for item %s: %w", itemID, err)
	}
	return total, nil
}

func (r *Repo) listUsage(ctx context.Context, query sq.Sqlizer) ([]domain.StockUsageRecord, error) {
	rows, err := postgres.Rows(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("list stock usage: %w", err)
	}
	defer rows.Close()

	usage, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StockUsageRecord, error) {
		return scanUsage(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list stock usage: %w", err)
	}
	if usage == nil {
		usage = []domain.StockUsageRecord{}
	}
	return usage, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (domain.InventoryItem, error) {
	var it domain.InventoryItem
	err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Category, &it.QuantityInStock, &it.MinimumStockThreshold,
		&it.StockBaseline, &it.UnitCost, &it.Supplier, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}

func scanUsage(row scanner) (domain.StockUsageRecord, error) {
	var u domain.StockUsageRecord
	err := row.Scan(&u.ID, &u.ItemID, &u.JobID, &u.QuantityUsed, &u.UsedAt)
	return u, err
}
