// Package invoice implements the invoice repository using PostgreSQL.
// Line items are stored as a JSONB array on the invoice row.
package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

const table = "invoices"

var columns = []string{
	"id", "invoice_number", "customer_id", "job_id", "issue_date", "due_date",
	"line_items", "subtotal", "tax_rate", "total", "payment_status", "notes",
	"created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides invoice persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new invoice repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type lineItemJSON struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

func encodeLineItems(items []domain.LineItem) ([]byte, error) {
	out := make([]lineItemJSON, len(items))
	for i, it := range items {
		out[i] = lineItemJSON{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return json.Marshal(out)
}

func decodeLineItems(raw []byte) ([]domain.LineItem, error) {
	var in []lineItemJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}
	out := make([]domain.LineItem, len(in))
	for i, it := range in {
		out[i] = domain.LineItem{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return out, nil
}

// Create inserts an invoice. Totals are stored as given.
// Returns domain.ErrAlreadyExists for a duplicate invoice number.
func (r *Repo) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	items, err := encodeLineItems(inv.LineItems)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	query := postgres.Builder().
		Insert(table).
		Columns("id", "invoice_number", "customer_id", "job_id", "issue_date", "due_date",
			"line_items", "subtotal", "tax_rate", "total", "payment_status", "notes").
		Values(id, inv.InvoiceNumber, inv.CustomerID, nullUUID(inv.JobID), inv.IssueDate, inv.DueDate,
			items, inv.Subtotal, inv.TaxRate, inv.Total, string(inv.PaymentStatus), inv.Notes).
		Suffix(returning)

	return r.one(ctx, query, id)
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := postgres.Builder().Select(columns...).From(table).Where(sq.Eq{"id": id})
	return r.one(ctx, query, id)
}

func (r *Repo) Update(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	items, err := encodeLineItems(inv.LineItems)
	if err != nil {
		return nil, err
	}
	query := postgres.Builder().
		Update(table).
		Set("invoice_number", inv.InvoiceNumber).
		Set("customer_id", inv.CustomerID).
		Set("job_id", nullUUID(inv.JobID)).
		Set("issue_date", inv.IssueDate).
		Set("due_date", inv.DueDate).
		Set("line_items", items).
		Set("subtotal", inv.Subtotal).
		Set("tax_rate", inv.TaxRate).
		Set("total", inv.Total).
		Set("payment_status", string(inv.PaymentStatus)).
		Set("notes", inv.Notes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": inv.ID}).
		Suffix(returning)

	return r.one(ctx, query, inv.ID)
}

// SetPaymentStatus changes only the payment status column.
func (r *Repo) SetPaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Invoice, error) {
	query := postgres.Builder().
		Update(table).
		Set("payment_status", string(status)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning)

	return r.one(ctx, query, id)
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool),
		postgres.Builder().Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return postgres.MapError(err, "invoice", id)
	}
	if n == 0 {
		return fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Invoice, error) {
	return r.ListByFilter(ctx, domain.InvoiceFilter{})
}

func (r *Repo) ListByFilter(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error) {
	where := sq.And{}
	if f.CustomerID != nil {
		where = append(where, sq.Eq{"customer_id": *f.CustomerID})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"payment_status": string(*f.Status)})
	}
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at", "id")

	rows, err := postgres.Rows(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("list invoices: %w", err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return result, nil
}

func (r *Repo) one(ctx context.Context, query sq.Sqlizer, id uuid.UUID) (*domain.Invoice, error) {
	row, err := postgres.Row(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, fmt.Errorf("build invoice query: %w", err)
	}
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, postgres.MapError(err, "invoice", id)
	}
	return &inv, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row scanner) (domain.Invoice, error) {
	var (
		inv    domain.Invoice
		jobID  pgtype.UUID
		items  []byte
		status string
	)
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &jobID, &inv.IssueDate, &inv.DueDate,
		&items, &inv.Subtotal, &inv.TaxRate, &inv.Total, &status, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invoice{}, err
	}

	inv.LineItems, err = decodeLineItems(items)
	if err != nil {
		return domain.Invoice{}, err
	}
	inv.PaymentStatus = domain.PaymentStatus(status)
	if jobID.Valid {
		id := uuid.UUID(jobID.Bytes)
		inv.JobID = &id
	}
	return inv, nil
}

func nullUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
