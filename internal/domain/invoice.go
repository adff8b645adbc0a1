package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one billed row of an invoice.
type LineItem struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Amount returns quantity × unit price.
func (l LineItem) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Invoice bills a customer, optionally for a specific job.
// Subtotal and Total are computed once at write time and stored; readers
// treat them as authoritative.
type Invoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	CustomerID    uuid.UUID
	JobID         *uuid.UUID
	IssueDate     time.Time
	DueDate       time.Time
	LineItems     []LineItem
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal
	Total         decimal.Decimal
	PaymentStatus PaymentStatus
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals returns subtotal = Σ(quantity × unitPrice) and
// total = subtotal × (1 + taxRate/100).
func ComputeTotals(items []LineItem, taxRate decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount())
	}
	total = subtotal.Mul(decimal.NewFromInt(1).Add(taxRate.Div(hundred)))
	return subtotal, total
}

// ApplyTotals recomputes and stores Subtotal and Total from the line items.
func (i *Invoice) ApplyTotals() {
	i.Subtotal, i.Total = ComputeTotals(i.LineItems, i.TaxRate)
}
