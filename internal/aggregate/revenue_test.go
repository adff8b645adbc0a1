package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

func TestRevenueByMonth_RoundTrip(t *testing.T) {
	march := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	invoices := []domain.Invoice{
		paidInvoice("100", march),
		invoiceWithStatus("50", march.AddDate(0, 0, 10), domain.PaymentStatusUnpaid),
	}

	rows := RevenueByMonth(invoices, DefaultCalendar())

	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03", rows[0].Month)
	assert.Equal(t, "150", rows[0].Invoiced.String())
	assert.Equal(t, "100", rows[0].Collected.String())
}

func TestRevenueByMonth_SparseAndSorted(t *testing.T) {
	invoices := []domain.Invoice{
		paidInvoice("10", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		paidInvoice("20", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
		invoiceWithStatus("30", time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), domain.PaymentStatusOverdue),
	}

	rows := RevenueByMonth(invoices, DefaultCalendar())

	require.Len(t, rows, 3)
	assert.Equal(t, "2023-12", rows[0].Month)
	assert.Equal(t, "2024-02", rows[1].Month)
	assert.Equal(t, "2024-05", rows[2].Month)
	assert.True(t, rows[1].Collected.IsZero())
	assert.Equal(t, "30", rows[1].Invoiced.String())
}

func TestRevenueByMonth_Empty(t *testing.T) {
	assert.Empty(t, RevenueByMonth(nil, DefaultCalendar()))
}

func TestRevenueByMonth_ReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	invoices := []domain.Invoice{
		paidInvoice("10", time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC)),
	}

	rows := RevenueByMonth(invoices, Calendar{Location: loc})

	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03", rows[0].Month)
}
