package aggregate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

func TestAggregations_Idempotent(t *testing.T) {
	tech := domain.Technician{ID: uuid.New(), Name: "Sam"}
	cust := domain.Customer{ID: uuid.New(), Name: "Acme"}

	jobs := make([]domain.Job, 0, len(domain.AllJobStatuses()))
	for i, s := range domain.AllJobStatuses() {
		j := jobWithStatus(s)
		j.CustomerID = cust.ID
		j.AssignedTechnician = &tech.ID
		j.UpdatedAt = testNow.Add(-time.Duration(i) * time.Hour)
		jobs = append(jobs, j)
	}
	invoices := []domain.Invoice{
		paidInvoice("12.34", testNow.AddDate(0, 0, -2)),
		invoiceWithStatus("5", testNow.AddDate(0, -2, 0), domain.PaymentStatusUnpaid),
	}
	items := []domain.InventoryItem{item("a", 1, 2), item("b", 9, 2)}
	usage := []domain.StockUsageRecord{usageOf(items[0].ID, 1), usageOf(items[1].ID, 4)}

	cal := DefaultCalendar()
	customers := []domain.Customer{cust}
	technicians := []domain.Technician{tech}

	assert.Equal(t,
		ComputeDashboardStats(jobs, customers, technicians, invoices, testNow, cal),
		ComputeDashboardStats(jobs, customers, technicians, invoices, testNow, cal))
	assert.Equal(t, JobStatusSummary(jobs), JobStatusSummary(jobs))
	assert.Equal(t, RevenueByMonth(invoices, cal), RevenueByMonth(invoices, cal))
	assert.Equal(t, TechnicianPerformance(technicians, jobs), TechnicianPerformance(technicians, jobs))
	assert.Equal(t, InventoryUsageReport(items, usage), InventoryUsageReport(items, usage))
	assert.Equal(t, LowStockItems(items), LowStockItems(items))
	assert.Equal(t, RecentJobs(jobs, customers, technicians, 3), RecentJobs(jobs, customers, technicians, 3))
	assert.Equal(t, StockReconciliation(items, usage), StockReconciliation(items, usage))
}
