package fieldops

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// DefaultTaxRate is applied to invoices created without an explicit rate.
var DefaultTaxRate = decimal.RequireFromString("8.25")

const (
	maxNameLen  = 255
	maxNotesLen = 4000
)

// CustomerInput holds the writable fields of a customer.
type CustomerInput struct {
	Name         string
	Company      string
	Email        string
	Phone        string
	Address      string
	CustomerType domain.CustomerType
	Notes        string
}

// Validate validates the customer input.
func (i CustomerInput) Validate() error {
	var errs []domain.FieldError

	errs = requireName(errs, "name", i.Name)
	if !i.CustomerType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "customer_type", Message: "must be residential or commercial"})
	}
	if i.Email != "" && !strings.Contains(i.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid"})
	}
	errs = checkNotes(errs, i.Notes)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i CustomerInput) apply(c *domain.Customer) {
	c.Name = strings.TrimSpace(i.Name)
	c.Company = i.Company
	c.Email = i.Email
	c.Phone = i.Phone
	c.Address = i.Address
	c.CustomerType = i.CustomerType
	c.Notes = i.Notes
}

// TechnicianInput holds the writable fields of a technician.
// An empty Status means active.
type TechnicianInput struct {
	Name           string
	Email          string
	Phone          string
	Specialization string
	Skills         []string
	Status         domain.TechnicianStatus
	Notes          string
}

// Validate validates the technician input.
func (i TechnicianInput) Validate() error {
	var errs []domain.FieldError

	errs = requireName(errs, "name", i.Name)
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active or inactive"})
	}
	for _, s := range i.Skills {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, domain.FieldError{Field: "skills", Message: "must not contain blanks"})
			break
		}
	}
	errs = checkNotes(errs, i.Notes)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i TechnicianInput) apply(t *domain.Technician) {
	t.Name = strings.TrimSpace(i.Name)
	t.Email = i.Email
	t.Phone = i.Phone
	t.Specialization = i.Specialization
	t.Skills = append([]string(nil), i.Skills...)
	t.Status = i.Status
	if t.Status == "" {
		t.Status = domain.TechnicianStatusActive
	}
	t.Notes = i.Notes
}

// JobInput holds the writable fields of a job.
// Empty Status and Priority mean new and medium.
type JobInput struct {
	Title              string
	Description        string
	CustomerID         uuid.UUID
	AssignedTechnician *uuid.UUID
	Status             domain.JobStatus
	Priority           domain.JobPriority
	ScheduledDate      *time.Time
	Location           string
	Notes              string
}

// Validate validates the job input.
func (i JobInput) Validate() error {
	var errs []domain.FieldError

	errs = requireName(errs, "title", i.Title)
	if i.CustomerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "customer_id", Message: "required"})
	}
	if i.AssignedTechnician != nil && *i.AssignedTechnician == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assigned_technician", Message: "invalid"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid"})
	}
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid"})
	}
	errs = checkNotes(errs, i.Notes)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i JobInput) apply(j *domain.Job) {
	j.Title = strings.TrimSpace(i.Title)
	j.Description = i.Description
	j.CustomerID = i.CustomerID
	j.AssignedTechnician = i.AssignedTechnician
	j.Status = i.Status
	if j.Status == "" {
		j.Status = domain.JobStatusNew
	}
	j.Priority = i.Priority
	if j.Priority == "" {
		j.Priority = domain.JobPriorityMedium
	}
	j.ScheduledDate = i.ScheduledDate
	j.Location = i.Location
	j.Notes = i.Notes
}

// InvoiceInput holds the writable fields of an invoice. Subtotal and total
// are always derived from the line items. A blank InvoiceNumber is generated,
// a nil TaxRate means DefaultTaxRate and an empty PaymentStatus means unpaid.
type InvoiceInput struct {
	InvoiceNumber string
	CustomerID    uuid.UUID
	JobID         *uuid.UUID
	IssueDate     time.Time
	DueDate       time.Time
	LineItems     []domain.LineItem
	TaxRate       *decimal.Decimal
	PaymentStatus domain.PaymentStatus
	Notes         string
}

// Validate validates the invoice input.
func (i InvoiceInput) Validate() error {
	var errs []domain.FieldError

	if i.CustomerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "customer_id", Message: "required"})
	}
	if i.IssueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "issue_date", Message: "required"})
	}
	if i.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "required"})
	} else if !i.IssueDate.IsZero() && i.DueDate.Before(i.IssueDate) {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "must not precede issue_date"})
	}
	for _, li := range i.LineItems {
		if strings.TrimSpace(li.Description) == "" {
			errs = append(errs, domain.FieldError{Field: "line_items.description", Message: "required"})
		}
		if li.Quantity <= 0 {
			errs = append(errs, domain.FieldError{Field: "line_items.quantity", Message: "must be positive"})
		}
		if li.UnitPrice.IsNegative() {
			errs = append(errs, domain.FieldError{Field: "line_items.unit_price", Message: "must be >= 0"})
		}
	}
	if i.TaxRate != nil && i.TaxRate.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "tax_rate", Message: "must be >= 0"})
	}
	if i.PaymentStatus != "" && !i.PaymentStatus.IsValid() {
		errs = append(errs, domain.FieldError{Field: "payment_status", Message: "invalid"})
	}
	errs = checkNotes(errs, i.Notes)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i InvoiceInput) apply(inv *domain.Invoice) {
	if n := strings.TrimSpace(i.InvoiceNumber); n != "" {
		inv.InvoiceNumber = n
	}
	inv.CustomerID = i.CustomerID
	inv.JobID = i.JobID
	inv.IssueDate = i.IssueDate
	inv.DueDate = i.DueDate
	inv.LineItems = append([]domain.LineItem(nil), i.LineItems...)
	inv.TaxRate = DefaultTaxRate
	if i.TaxRate != nil {
		inv.TaxRate = *i.TaxRate
	}
	inv.PaymentStatus = i.PaymentStatus
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = domain.PaymentStatusUnpaid
	}
	inv.Notes = i.Notes
	inv.ApplyTotals()
}

// ItemInput holds the writable fields of an inventory item.
type ItemInput struct {
	SKU                   string
	Name                  string
	Category              string
	QuantityInStock       int
	MinimumStockThreshold int
	UnitCost              decimal.Decimal
	Supplier              string
	Notes                 string
}

// Validate validates the item input.
func (i ItemInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.SKU) == "" {
		errs = append(errs, domain.FieldError{Field: "sku", Message: "required"})
	}
	errs = requireName(errs, "name", i.Name)
	if i.QuantityInStock < 0 {
		errs = append(errs, domain.FieldError{Field: "quantity_in_stock", Message: "must be >= 0"})
	}
	if i.MinimumStockThreshold < 0 {
		errs = append(errs, domain.FieldError{Field: "minimum_stock_threshold", Message: "must be >= 0"})
	}
	if i.UnitCost.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "unit_cost", Message: "must be >= 0"})
	}
	errs = checkNotes(errs, i.Notes)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i ItemInput) apply(it *domain.InventoryItem) {
	it.SKU = strings.TrimSpace(i.SKU)
	it.Name = strings.TrimSpace(i.Name)
	it.Category = i.Category
	it.QuantityInStock = i.QuantityInStock
	it.MinimumStockThreshold = i.MinimumStockThreshold
	it.UnitCost = i.UnitCost
	it.Supplier = i.Supplier
	it.Notes = i.Notes
}

func requireName(errs []domain.FieldError, field, v string) []domain.FieldError {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	case len(v) > maxNameLen:
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}

func checkNotes(errs []domain.FieldError, notes string) []domain.FieldError {
	if len(notes) > maxNotesLen {
		return append(errs, domain.FieldError{Field: "notes", Message: "too long"})
	}
	return errs
}
