package aggregate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

var testNow = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func jobWithStatus(status domain.JobStatus) domain.Job {
	return domain.Job{
		ID:         uuid.New(),
		Title:      "job " + string(status),
		CustomerID: uuid.New(),
		Status:     status,
		Priority:   domain.JobPriorityMedium,
		UpdatedAt:  testNow.Add(-time.Hour),
	}
}

func paidInvoice(total string, issued time.Time) domain.Invoice {
	return domain.Invoice{
		ID:            uuid.New(),
		IssueDate:     issued,
		Total:         decimal.RequireFromString(total),
		PaymentStatus: domain.PaymentStatusPaid,
	}
}

func invoiceWithStatus(total string, issued time.Time, status domain.PaymentStatus) domain.Invoice {
	inv := paidInvoice(total, issued)
	inv.PaymentStatus = status
	return inv
}

func item(name string, stock, threshold int) domain.InventoryItem {
	return domain.InventoryItem{
		ID:                    uuid.New(),
		Name:                  name,
		QuantityInStock:       stock,
		MinimumStockThreshold: threshold,
		StockBaseline:         stock,
	}
}

func usageOf(itemID uuid.UUID, qty int) domain.StockUsageRecord {
	return domain.StockUsageRecord{
		ID:           uuid.New(),
		ItemID:       itemID,
		JobID:        uuid.New(),
		QuantityUsed: qty,
		UsedAt:       testNow,
	}
}
