package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/adapter/memory"
	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/customer"
	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/inventory"
	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/invoice"
	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/job"
	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/technician"
	"github.com/heartmarshall/fieldservice-backend/internal/config"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// The store method sets below are the union of what the services, views
// and loaders consume. Both the memory and the postgres repositories
// satisfy them.

type customerStore interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Customer, error)
	Search(ctx context.Context, text string) ([]domain.Customer, error)
}

type technicianStore interface {
	Create(ctx context.Context, t *domain.Technician) (*domain.Technician, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Technician, error)
	Update(ctx context.Context, t *domain.Technician) (*domain.Technician, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.TechnicianStatus) (*domain.Technician, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Technician, error)
}

type jobStore interface {
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Job, error)
	ListByFilter(ctx context.Context, f domain.JobFilter) ([]domain.Job, error)
}

type invoiceStore interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Invoice, error)
	ListByFilter(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error)
}

type itemStore interface {
	Create(ctx context.Context, it *domain.InventoryItem) (*domain.InventoryItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	Update(ctx context.Context, it *domain.InventoryItem) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.InventoryItem, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.InventoryItem, error)
	SetStock(ctx context.Context, id uuid.UUID, quantity int) error
	CreateUsage(ctx context.Context, u *domain.StockUsageRecord) (*domain.StockUsageRecord, error)
	ListUsage(ctx context.Context) ([]domain.StockUsageRecord, error)
	ListUsageByJob(ctx context.Context, jobID uuid.UUID) ([]domain.StockUsageRecord, error)
	SumUsage(ctx context.Context, itemID uuid.UUID) (int, error)
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Backend is one opened entity store with every repository it serves.
type Backend struct {
	Driver      string
	Pinger      pinger
	Tx          txRunner
	Customers   customerStore
	Technicians technicianStore
	Jobs        jobStore
	Invoices    invoiceStore
	Items       itemStore

	closeFn func()
}

// Close releases the store's resources.
func (b *Backend) Close() {
	if b.closeFn != nil {
		b.closeFn()
	}
}

// NewMemoryBackend wraps a memory store.
func NewMemoryBackend(s *memory.Store) *Backend {
	return &Backend{
		Driver:      config.DriverMemory,
		Pinger:      s,
		Tx:          s,
		Customers:   s.Customers(),
		Technicians: s.Technicians(),
		Jobs:        s.Jobs(),
		Invoices:    s.Invoices(),
		Items:       s.Inventory(),
	}
}

// OpenBackend opens the store selected by cfg.Store.Driver.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Info("using in-memory store")
		return NewMemoryBackend(memory.New()), nil

	case config.DriverPostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return nil, err
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		logger.Info("connected to postgres",
			slog.Int("max_conns", int(cfg.Database.MaxConns)),
		)
		return &Backend{
			Driver:      config.DriverPostgres,
			Pinger:      pool,
			Tx:          postgres.NewTxManager(pool),
			Customers:   customer.New(pool),
			Technicians: technician.New(pool),
			Jobs:        job.New(pool),
			Invoices:    invoice.New(pool),
			Items:       inventory.New(pool),
			closeFn:     pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
