package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// MonthRevenue is one month bucket of the revenue report.
type MonthRevenue struct {
	Month     string
	Invoiced  decimal.Decimal
	Collected decimal.Decimal
}

// RevenueByMonth groups invoices by the calendar month of IssueDate. Invoiced
// sums every stored total in the bucket, Collected only paid ones. Buckets are
// sparse and ordered chronologically.
func RevenueByMonth(invoices []domain.Invoice, cal Calendar) []MonthRevenue {
	buckets := make(map[string]*MonthRevenue)
	for _, inv := range invoices {
		key := cal.MonthKey(inv.IssueDate)
		b, ok := buckets[key]
		if !ok {
			b = &MonthRevenue{Month: key, Invoiced: decimal.Zero, Collected: decimal.Zero}
			buckets[key] = b
		}
		b.Invoiced = b.Invoiced.Add(inv.Total)
		if inv.PaymentStatus.IsSettled() {
			b.Collected = b.Collected.Add(inv.Total)
		}
	}

	out := make([]MonthRevenue, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	// "YYYY-MM" sorts lexically in chronological order.
	slices.SortFunc(out, func(a, b MonthRevenue) int {
		switch {
		case a.Month < b.Month:
			return -1
		case a.Month > b.Month:
			return 1
		}
		return 0
	})
	return out
}
