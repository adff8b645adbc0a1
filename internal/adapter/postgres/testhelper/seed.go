package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedCustomer inserts a residential customer with a unique name.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool) domain.Customer {
	t.Helper()

	now := stamp()
	c := domain.Customer{
		ID:           uuid.New(),
		Name:         "Customer " + uniqueSuffix(),
		CustomerType: domain.CustomerTypeResidential,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO customers (id, name, customer_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, string(c.CustomerType), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCustomer: %v", err)
	}
	return c
}

// SeedTechnician inserts an active technician with a unique name.
func SeedTechnician(t *testing.T, pool *pgxpool.Pool) domain.Technician {
	t.Helper()

	now := stamp()
	tech := domain.Technician{
		ID:        uuid.New(),
		Name:      "Tech " + uniqueSuffix(),
		Skills:    []string{"general"},
		Status:    domain.TechnicianStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO technicians (id, name, skills, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		tech.ID, tech.Name, tech.Skills, string(tech.Status), tech.CreatedAt, tech.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTechnician: %v", err)
	}
	return tech
}

// SeedJob inserts a new medium-priority job for customerID.
func SeedJob(t *testing.T, pool *pgxpool.Pool, customerID uuid.UUID) domain.Job {
	t.Helper()

	now := stamp()
	j := domain.Job{
		ID:         uuid.New(),
		Title:      "Job " + uniqueSuffix(),
		CustomerID: customerID,
		Status:     domain.JobStatusNew,
		Priority:   domain.JobPriorityMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO jobs (id, title, customer_id, status, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		j.ID, j.Title, j.CustomerID, string(j.Status), string(j.Priority), j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedJob: %v", err)
	}
	return j
}

// SeedItem inserts an inventory item with the given stock and a baseline
// equal to it.
func SeedItem(t *testing.T, pool *pgxpool.Pool, stock, threshold int) domain.InventoryItem {
	t.Helper()

	now := stamp()
	suffix := uniqueSuffix()
	it := domain.InventoryItem{
		ID:                    uuid.New(),
		SKU:                   "SKU-" + suffix,
		Name:                  "Item " + suffix,
		QuantityInStock:       stock,
		MinimumStockThreshold: threshold,
		StockBaseline:         stock,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO inventory_items (id, sku, name, quantity_in_stock, minimum_stock_threshold, stock_baseline, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.SKU, it.Name, it.QuantityInStock, it.MinimumStockThreshold, it.StockBaseline, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem: %v", err)
	}
	return it
}
