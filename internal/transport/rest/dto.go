package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/aggregate"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/schedule"
)

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

type jobResponse struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	CustomerID         string     `json:"customerId"`
	CustomerName       string     `json:"customerName,omitempty"`
	AssignedTechnician *string    `json:"assignedTechnician,omitempty"`
	TechnicianName     string     `json:"technicianName,omitempty"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	ScheduledDate      *time.Time `json:"scheduledDate,omitempty"`
	Location           string     `json:"location,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func toJobResponse(j domain.Job) jobResponse {
	return jobResponse{
		ID:                 j.ID.String(),
		Title:              j.Title,
		Description:        j.Description,
		CustomerID:         j.CustomerID.String(),
		AssignedTechnician: uuidPtrString(j.AssignedTechnician),
		Status:             j.Status.String(),
		Priority:           j.Priority.String(),
		ScheduledDate:      j.ScheduledDate,
		Location:           j.Location,
		Notes:              j.Notes,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}
}

func toJobResponses(jobs []domain.Job) []jobResponse {
	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResponse(j)
	}
	return out
}

type customerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Company      string    `json:"company,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CustomerType string    `json:"customerType"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Company:      c.Company,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		CustomerType: c.CustomerType.String(),
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type technicianResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Skills         []string  `json:"skills"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toTechnicianResponse(t domain.Technician) technicianResponse {
	skills := t.Skills
	if skills == nil {
		skills = []string{}
	}
	return technicianResponse{
		ID:             t.ID.String(),
		Name:           t.Name,
		Email:          t.Email,
		Phone:          t.Phone,
		Specialization: t.Specialization,
		Skills:         skills,
		Status:         t.Status.String(),
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

type lineItemResponse struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

type invoiceResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoiceNumber"`
	CustomerID    string             `json:"customerId"`
	JobID         *string            `json:"jobId,omitempty"`
	IssueDate     time.Time          `json:"issueDate"`
	DueDate       time.Time          `json:"dueDate"`
	LineItems     []lineItemResponse `json:"lineItems"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxRate       decimal.Decimal    `json:"taxRate"`
	Total         decimal.Decimal    `json:"total"`
	PaymentStatus string             `json:"paymentStatus"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func toInvoiceResponse(inv domain.Invoice) invoiceResponse {
	items := make([]lineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = lineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount(),
		}
	}
	return invoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID.String(),
		JobID:         uuidPtrString(inv.JobID),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		LineItems:     items,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		Total:         inv.Total,
		PaymentStatus: inv.PaymentStatus.String(),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

type itemResponse struct {
	ID                    string          `json:"id"`
	SKU                   string          `json:"sku"`
	Name                  string          `json:"name"`
	Category              string          `json:"category,omitempty"`
	QuantityInStock       int             `json:"quantityInStock"`
	MinimumStockThreshold int             `json:"minimumStockThreshold"`
	UnitCost              decimal.Decimal `json:"unitCost"`
	Supplier              string          `json:"supplier,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
}

func toItemResponse(it domain.InventoryItem) itemResponse {
	return itemResponse{
		ID:                    it.ID.String(),
		SKU:                   it.SKU,
		Name:                  it.Name,
		Category:              it.Category,
		QuantityInStock:       it.QuantityInStock,
		MinimumStockThreshold: it.MinimumStockThreshold,
		UnitCost:              it.UnitCost,
		Supplier:              it.Supplier,
		Notes:                 it.Notes,
	}
}

func toItemResponses(items []domain.InventoryItem) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	return out
}

type usageResponse struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"itemId"`
	JobID        string    `json:"jobId"`
	QuantityUsed int       `json:"quantityUsed"`
	UsedAt       time.Time `json:"usedAt"`
}

func toUsageResponse(u domain.StockUsageRecord) usageResponse {
	return usageResponse{
		ID:           u.ID.String(),
		ItemID:       u.ItemID.String(),
		JobID:        u.JobID.String(),
		QuantityUsed: u.QuantityUsed,
		UsedAt:       u.UsedAt,
	}
}

func toUsageResponses(records []domain.StockUsageRecord) []usageResponse {
	out := make([]usageResponse, len(records))
	for i, u := range records {
		out[i] = toUsageResponse(u)
	}
	return out
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

type dashboardResponse struct {
	TotalOpenJobs         int             `json:"totalOpenJobs"`
	TotalJobs             int             `json:"totalJobs"`
	CompletedJobsToday    int             `json:"completedJobsToday"`
	PendingInvoices       int             `json:"pendingInvoices"`
	TotalRevenueThisMonth decimal.Decimal `json:"totalRevenueThisMonth"`
	TotalCustomers        int             `json:"totalCustomers"`
	TotalTechnicians      int             `json:"totalTechnicians"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type monthRevenueResponse struct {
	Month     string          `json:"month"`
	Invoiced  decimal.Decimal `json:"invoiced"`
	Collected decimal.Decimal `json:"collected"`
}

type technicianStatsResponse struct {
	TechnicianID   string `json:"technicianId"`
	TechnicianName string `json:"technicianName"`
	AssignedJobs   int    `json:"assignedJobs"`
	CompletedJobs  int    `json:"completedJobs"`
}

type itemUsageResponse struct {
	ItemID    string `json:"itemId"`
	ItemName  string `json:"itemName"`
	TotalUsed int    `json:"totalUsed"`
}

type dayResponse struct {
	Date string        `json:"date"`
	Jobs []jobResponse `json:"jobs"`
}

type stockDriftResponse struct {
	ItemID    string `json:"itemId"`
	ItemName  string `json:"itemName"`
	Recorded  int    `json:"recorded"`
	Expected  int    `json:"expected"`
	TotalUsed int    `json:"totalUsed"`
}

type reconciliationResponse struct {
	Checked    int                  `json:"checked"`
	Consistent bool                 `json:"consistent"`
	Drift      []stockDriftResponse `json:"drift"`
	Dangling   []usageResponse      `json:"dangling"`
}

// viewData converts a computed view value to its wire form.
func viewData(v any) any {
	switch t := v.(type) {
	case aggregate.DashboardStats:
		return dashboardResponse{
			TotalOpenJobs:         t.TotalOpenJobs,
			TotalJobs:             t.TotalJobs,
			CompletedJobsToday:    t.CompletedJobsToday,
			PendingInvoices:       t.PendingInvoices,
			TotalRevenueThisMonth: t.TotalRevenueThisMonth,
			TotalCustomers:        t.TotalCustomers,
			TotalTechnicians:      t.TotalTechnicians,
		}
	case []aggregate.StatusCount:
		out := make([]statusCountResponse, len(t))
		for i, s := range t {
			out[i] = statusCountResponse{Status: s.Status.String(), Count: s.Count}
		}
		return out
	case []aggregate.MonthRevenue:
		out := make([]monthRevenueResponse, len(t))
		for i, m := range t {
			out[i] = monthRevenueResponse{Month: m.Month, Invoiced: m.Invoiced, Collected: m.Collected}
		}
		return out
	case []aggregate.TechnicianStats:
		out := make([]technicianStatsResponse, len(t))
		for i, s := range t {
			out[i] = technicianStatsResponse{
				TechnicianID:   s.TechnicianID.String(),
				TechnicianName: s.TechnicianName,
				AssignedJobs:   s.AssignedJobs,
				CompletedJobs:  s.CompletedJobs,
			}
		}
		return out
	case []aggregate.ItemUsage:
		out := make([]itemUsageResponse, len(t))
		for i, u := range t {
			out[i] = itemUsageResponse{ItemID: u.ItemID.String(), ItemName: u.ItemName, TotalUsed: u.TotalUsed}
		}
		return out
	case []domain.InventoryItem:
		return toItemResponses(t)
	case []schedule.Day:
		out := make([]dayResponse, len(t))
		for i, d := range t {
			out[i] = dayResponse{Date: d.Date, Jobs: toJobResponses(d.Jobs)}
		}
		return out
	case []domain.Job:
		return toJobResponses(t)
	case []aggregate.JobSummary:
		out := make([]jobResponse, len(t))
		for i, s := range t {
			out[i] = toJobResponse(s.Job)
			out[i].CustomerName = s.CustomerName
			out[i].TechnicianName = s.TechnicianName
		}
		return out
	case aggregate.Reconciliation:
		drift := make([]stockDriftResponse, len(t.Drift))
		for i, d := range t.Drift {
			drift[i] = stockDriftResponse{
				ItemID:    d.ItemID.String(),
				ItemName:  d.ItemName,
				Recorded:  d.Recorded,
				Expected:  d.Expected,
				TotalUsed: d.TotalUsed,
			}
		}
		return reconciliationResponse{
			Checked:    t.Checked,
			Consistent: t.Consistent(),
			Drift:      drift,
			Dangling:   toUsageResponses(t.Dangling),
		}
	}
	return v
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
