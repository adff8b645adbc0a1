package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/fieldops"
)

type invoiceService interface {
	ListInvoices(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	CreateInvoice(ctx context.Context, input fieldops.InvoiceInput) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id uuid.UUID, input fieldops.InvoiceInput) (*domain.Invoice, error)
	SetInvoiceStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

// InvoiceHandler serves invoice endpoints.
type InvoiceHandler struct {
	svc invoiceService
	log *slog.Logger
}

// NewInvoiceHandler creates an InvoiceHandler.
func NewInvoiceHandler(svc invoiceService, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, log: logger.With("handler", "invoices")}
}

type lineItemRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// invoiceRequest carries no totals: they are always derived from the line
// items.
type invoiceRequest struct {
	InvoiceNumber string            `json:"invoiceNumber"`
	CustomerID    string            `json:"customerId"`
	JobID         *string           `json:"jobId"`
	IssueDate     time.Time         `json:"issueDate"`
	DueDate       time.Time         `json:"dueDate"`
	LineItems     []lineItemRequest `json:"lineItems"`
	TaxRate       *decimal.Decimal  `json:"taxRate"`
	PaymentStatus string            `json:"paymentStatus"`
	Notes         string            `json:"notes"`
}

func (req invoiceRequest) input() (fieldops.InvoiceInput, error) {
	customerID, err := bodyUUID("customer_id", req.CustomerID)
	if err != nil {
		return fieldops.InvoiceInput{}, err
	}
	jobID, err := bodyUUIDPtr("job_id", req.JobID)
	if err != nil {
		return fieldops.InvoiceInput{}, err
	}

	items := make([]domain.LineItem, len(req.LineItems))
	for i, li := range req.LineItems {
		items[i] = domain.LineItem{Description: li.Description, Quantity: li.Quantity, UnitPrice: li.UnitPrice}
	}

	return fieldops.InvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    customerID,
		JobID:         jobID,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		LineItems:     items,
		TaxRate:       req.TaxRate,
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
		Notes:         req.Notes,
	}, nil
}

type invoiceStatusRequest struct {
	Status string `json:"status"`
}

// List returns the invoices matching the query filter.
// GET /api/invoices?customer=&status=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var f domain.InvoiceFilter
	q := r.URL.Query()
	if v := q.Get("customer"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("customer", "must be a uuid"))
			return
		}
		f.CustomerID = &id
	}
	if v := q.Get("status"); v != "" {
		s := domain.PaymentStatus(v)
		f.Status = &s
	}

	invs, err := h.svc.ListInvoices(r.Context(), f)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		out[i] = toInvoiceResponse(inv)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one invoice.
// GET /api/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invoice")
	if !ok {
		return
	}

	inv, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceResponse(*inv))
}

// Create stores a new invoice. A blank invoiceNumber is generated.
// POST /api/invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input, err := req.input()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	inv, err := h.svc.CreateInvoice(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInvoiceResponse(*inv))
}

// Update replaces the writable fields of an invoice. A blank invoiceNumber
// keeps the current one.
// PUT /api/invoices/{id}
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invoice")
	if !ok {
		return
	}

	var req invoiceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input, err := req.input()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	inv, err := h.svc.UpdateInvoice(r.Context(), id, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceResponse(*inv))
}

// SetStatus changes an invoice's payment status.
// PUT /api/invoices/{id}/status
func (h *InvoiceHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invoice")
	if !ok {
		return
	}

	var req invoiceStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.svc.SetInvoiceStatus(r.Context(), id, domain.PaymentStatus(req.Status))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceResponse(*inv))
}

// MarkPaid sets an invoice's payment status to paid.
// POST /api/invoices/{id}/pay
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invoice")
	if !ok {
		return
	}

	inv, err := h.svc.MarkInvoicePaid(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceResponse(*inv))
}

// Delete removes an invoice.
// DELETE /api/invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invoice")
	if !ok {
		return
	}

	if err := h.svc.DeleteInvoice(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
