package fieldops

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/fieldservice-backend/internal/adapter/memory"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var testNow = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu    sync.Mutex
	got   []domain.Mutation
	fails bool
}

func (n *recordingNotifier) NotifyMutation(_ context.Context, kind domain.EntityKind, id uuid.UUID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, domain.Mutation{Kind: kind, ID: id})
	if n.fails {
		return errors.New("broker down")
	}
	return nil
}

func (n *recordingNotifier) kinds() []domain.EntityKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.EntityKind, 0, len(n.got))
	for _, m := range n.got {
		out = append(out, m.Kind)
	}
	return out
}

func newTestService(t *testing.T) (*Service, *memory.Store, *recordingNotifier) {
	t.Helper()
	store := memory.New()
	n := &recordingNotifier{}
	svc := NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		Repos{
			Customers:   store.Customers(),
			Technicians: store.Technicians(),
			Jobs:        store.Jobs(),
			Invoices:    store.Invoices(),
			Items:       store.Inventory(),
		},
		n,
		store,
	)
	svc.now = func() time.Time { return testNow }
	return svc, store, n
}

func seedCustomer(t *testing.T, svc *Service) *domain.Customer {
	t.Helper()
	c, err := svc.CreateCustomer(context.Background(), CustomerInput{
		Name:         "James Wilson",
		Email:        "james@example.com",
		CustomerType: domain.CustomerTypeResidential,
	})
	require.NoError(t, err)
	return c
}

// ---------------------------------------------------------------------------
// Customers
// ---------------------------------------------------------------------------

func TestService_CreateCustomer(t *testing.T) {
	t.Parallel()
	svc, _, n := newTestService(t)

	c := seedCustomer(t, svc)

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "James Wilson", c.Name)
	assert.Equal(t, []domain.EntityKind{domain.EntityKindCustomer}, n.kinds())
}

func TestService_CreateCustomer_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CustomerInput
		field string
	}{
		{"blank name", CustomerInput{Name: "  ", CustomerType: domain.CustomerTypeCommercial}, "name"},
		{"bad type", CustomerInput{Name: "A", CustomerType: "industrial"}, "customer_type"},
		{"bad email", CustomerInput{Name: "A", Email: "nope", CustomerType: domain.CustomerTypeCommercial}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, _, n := newTestService(t)

			_, err := svc.CreateCustomer(context.Background(), tt.input)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Errors[0].Field)
			assert.Empty(t, n.kinds())
		})
	}
}

func TestService_UpdateCustomer_NotFound(t *testing.T) {
	t.Parallel()
	svc, _, n := newTestService(t)

	_, err := svc.UpdateCustomer(context.Background(), uuid.New(), CustomerInput{
		Name: "X", CustomerType: domain.CustomerTypeResidential,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, n.kinds())
}

func TestService_SearchCustomers_BlankListsAll(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seedCustomer(t, svc)
	_, err := svc.CreateCustomer(ctx, CustomerInput{Name: "Acme Plaza", Company: "Acme", CustomerType: domain.CustomerTypeCommercial})
	require.NoError(t, err)

	all, err := svc.SearchCustomers(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hits, err := svc.SearchCustomers(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Acme Plaza", hits[0].Name)
}

// ---------------------------------------------------------------------------
// Technicians
// ---------------------------------------------------------------------------

func TestService_CreateTechnician_DefaultsActive(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	tech, err := svc.CreateTechnician(context.Background(), TechnicianInput{Name: "Carlos Mendez", Skills: []string{"HVAC"}})

	require.NoError(t, err)
	assert.Equal(t, domain.TechnicianStatusActive, tech.Status)
}

func TestService_DeactivateTechnician(t *testing.T) {
	t.Parallel()
	svc, _, n := newTestService(t)
	ctx := context.Background()

	tech, err := svc.CreateTechnician(ctx, TechnicianInput{Name: "Tom Bradley"})
	require.NoError(t, err)

	got, err := svc.DeactivateTechnician(ctx, tech.ID)

	require.NoError(t, err)
	assert.False(t, got.IsActive())
	assert.Equal(t, []domain.EntityKind{domain.EntityKindTechnician, domain.EntityKindTechnician}, n.kinds())
}

// ---------------------------------------------------------------------------
// Jobs
// ---------------------------------------------------------------------------

func TestService_CreateJob_Defaults(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	c := seedCustomer(t, svc)

	j, err := svc.CreateJob(context.Background(), JobInput{Title: "Fix AC", CustomerID: c.ID})

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusNew, j.Status)
	assert.Equal(t, domain.JobPriorityMedium, j.Priority)
}

func TestService_CreateJob_UnknownCustomer(t *testing.T) {
	t.Parallel()
	svc, _, n := newTestService(t)
	missing := uuid.New()

	_, err := svc.CreateJob(context.Background(), JobInput{Title: "Fix AC", CustomerID: missing})

	var refErr *domain.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, domain.EntityKindCustomer, refErr.Kind)
	assert.Equal(t, missing.String(), refErr.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialGap)
	assert.Empty(t, n.kinds())
}

func TestService_CreateJob_UnknownTechnician(t *testing.T) {
	t.Parallel()
	svc, store, _ := newTestService(t)
	c := seedCustomer(t, svc)
	missing := uuid.New()

	_, err := svc.CreateJob(context.Background(), JobInput{Title: "Fix AC", CustomerID: c.ID, AssignedTechnician: &missing})

	var refErr *domain.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, domain.EntityKindTechnician, refErr.Kind)

	jobs, err := store.Jobs().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestService_UpdateJob_KeepsCreatedAt(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	c := seedCustomer(t, svc)

	j, err := svc.CreateJob(ctx, JobInput{Title: "Fix AC", CustomerID: c.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateJob(ctx, j.ID, JobInput{
		Title:      "Fix AC unit",
		CustomerID: c.ID,
		Status:     domain.JobStatusInProgress,
		Priority:   domain.JobPriorityUrgent,
	})

	require.NoError(t, err)
	assert.Equal(t, "Fix AC unit", updated.Title)
	assert.Equal(t, domain.JobStatusInProgress, updated.Status)
	assert.Equal(t, j.CreatedAt, updated.CreatedAt)
}

func TestService_ListJobs_InvalidFilter(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	bad := domain.JobStatus("lost")
	_, err := svc.ListJobs(context.Background(), domain.JobFilter{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)

	from, to := testNow, testNow.Add(-time.Hour)
	_, err = svc.ListJobs(context.Background(), domain.JobFilter{ScheduledFrom: &from, ScheduledTo: &to})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_DeleteCustomer_LeavesJobs(t *testing.T) {
	t.Parallel()
	svc, _, n := newTestService(t)
	ctx := context.Background()
	c := seedCustomer(t, svc)

	j, err := svc.CreateJob(ctx, JobInput{Title: "Fix AC", CustomerID: c.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(ctx, c.ID))

	got, err := svc.GetJob(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.CustomerID)
	assert.Equal(t, domain.EntityKindCustomer, n.kinds()[len(n.kinds())-1])
}

// ---------------------------------------------------------------------------
// Invoices
// ---------------------------------------------------------------------------

func TestService_CreateInvoice_TotalsAndDefaults(t *testing.T) {
	t.Parallel()
	svc, _, n := newTestService(t)
	c := seedCustomer(t, svc)

	inv, err := svc.CreateInvoice(context.Background(), InvoiceInput{
		CustomerID: c.ID,
		IssueDate:  testNow,
		DueDate:    testNow.AddDate(0, 0, 30),
		LineItems: []domain.LineItem{
			{Description: "Labor", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
			{Description: "Filter", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-200000", inv.InvoiceNumber)
	assert.True(t, inv.TaxRate.Equal(DefaultTaxRate))
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(200)), inv.Subtotal.String())
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("216.5")), inv.Total.String())
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.PaymentStatus)
	assert.Contains(t, n.kinds(), domain.EntityKindInvoice)
}

func TestService_CreateInvoice_GeneratedNumberCollisionRetries(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	c := seedCustomer(t, svc)
	in := InvoiceInput{CustomerID: c.ID, IssueDate: testNow, DueDate: testNow}

	// The clock is frozen, so every generated number starts from the same value.
	first, err := svc.CreateInvoice(ctx, in)
	require.NoError(t, err)
	second, err := svc.CreateInvoice(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "INV-200000", first.InvoiceNumber)
	assert.Equal(t, "INV-200001", second.InvoiceNumber)
}

func TestService_CreateInvoice_ExplicitNumberCollision(t *testing.T) {
	t.Parallel()
	svc, _, n := newTestService(t)
	ctx := context.Background()
	c := seedCustomer(t, svc)
	in := InvoiceInput{InvoiceNumber: "INV-001", CustomerID: c.ID, IssueDate: testNow, DueDate: testNow}

	_, err := svc.CreateInvoice(ctx, in)
	require.NoError(t, err)
	before := len(n.kinds())

	_, err = svc.CreateInvoice(ctx, in)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Len(t, n.kinds(), before)
}

func TestService_CreateInvoice_Validation(t *testing.T) {
	t.Parallel()
	customer := uuid.New()
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name  string
		input InvoiceInput
		field string
	}{
		{"no customer", InvoiceInput{IssueDate: testNow, DueDate: testNow}, "customer_id"},
		{"due before issue", InvoiceInput{CustomerID: customer, IssueDate: testNow, DueDate: testNow.AddDate(0, 0, -1)}, "due_date"},
		{"zero quantity", InvoiceInput{CustomerID: customer, IssueDate: testNow, DueDate: testNow,
			LineItems: []domain.LineItem{{Description: "x", Quantity: 0}}}, "line_items.quantity"},
		{"negative tax", InvoiceInput{CustomerID: customer, IssueDate: testNow, DueDate: testNow, TaxRate: &negative}, "tax_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, _, _ := newTestService(t)

			_, err := svc.CreateInvoice(context.Background(), tt.input)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Errors[0].Field)
		})
	}
}

func TestService_CreateInvoice_UnknownJob(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	c := seedCustomer(t, svc)
	job := uuid.New()

	_, err := svc.CreateInvoice(context.Background(), InvoiceInput{
		CustomerID: c.ID, JobID: &job, IssueDate: testNow, DueDate: testNow,
	})

	var refErr *domain.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, domain.EntityKindJob, refErr.Kind)
}

func TestService_UpdateInvoice_KeepsNumber(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	c := seedCustomer(t, svc)

	in := InvoiceInput{InvoiceNumber: "INV-000042", CustomerID: c.ID, IssueDate: testNow, DueDate: testNow}
	inv, err := svc.CreateInvoice(ctx, in)
	require.NoError(t, err)

	in.InvoiceNumber = ""
	in.LineItems = []domain.LineItem{{Description: "Labor", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}}
	updated, err := svc.UpdateInvoice(ctx, inv.ID, in)

	require.NoError(t, err)
	assert.Equal(t, "INV-000042", updated.InvoiceNumber)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("108.25")), updated.Total.String())
}

func TestService_MarkInvoicePaid(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	c := seedCustomer(t, svc)

	inv, err := svc.CreateInvoice(ctx, InvoiceInput{CustomerID: c.ID, IssueDate: testNow, DueDate: testNow})
	require.NoError(t, err)

	paid, err := svc.MarkInvoicePaid(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, paid.PaymentStatus)

	_, err = svc.SetInvoiceStatus(ctx, inv.ID, "refunded")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Inventory items
// ---------------------------------------------------------------------------

func TestService_CreateItem_SetsBaseline(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	it, err := svc.CreateItem(context.Background(), ItemInput{SKU: "FLT-16", Name: "Filter", QuantityInStock: 12})

	require.NoError(t, err)
	assert.Equal(t, 12, it.StockBaseline)
}

func TestService_UpdateItem_BaselineTracksUsage(t *testing.T) {
	t.Parallel()
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	it, err := svc.CreateItem(ctx, ItemInput{SKU: "FLT-16", Name: "Filter", QuantityInStock: 10})
	require.NoError(t, err)

	_, err = store.Inventory().CreateUsage(ctx, &domain.StockUsageRecord{ItemID: it.ID, JobID: uuid.New(), QuantityUsed: 3, UsedAt: testNow})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, it.ID, ItemInput{SKU: "FLT-16", Name: "Filter", QuantityInStock: 20})

	require.NoError(t, err)
	assert.Equal(t, 20, updated.QuantityInStock)
	assert.Equal(t, 23, updated.StockBaseline)
}

func TestService_CreateItem_Validation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	_, err := svc.CreateItem(context.Background(), ItemInput{SKU: "", Name: "Filter", QuantityInStock: -1})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 2)
}

func TestService_NotifierFailureDoesNotFailWrite(t *testing.T) {
	t.Parallel()
	svc, store, n := newTestService(t)
	n.fails = true

	it, err := svc.CreateItem(context.Background(), ItemInput{SKU: "FLT-16", Name: "Filter"})

	require.NoError(t, err)
	got, err := store.Inventory().GetByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, "FLT-16", got.SKU)
}
