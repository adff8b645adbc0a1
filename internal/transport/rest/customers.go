package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/fieldops"
)

type customerService interface {
	SearchCustomers(ctx context.Context, text string) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, input fieldops.CustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, input fieldops.CustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

// CustomerHandler serves customer CRUD endpoints.
type CustomerHandler struct {
	svc customerService
	log *slog.Logger
}

// NewCustomerHandler creates a CustomerHandler.
func NewCustomerHandler(svc customerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: logger.With("handler", "customers")}
}

type customerRequest struct {
	Name         string `json:"name"`
	Company      string `json:"company"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	CustomerType string `json:"customerType"`
	Notes        string `json:"notes"`
}

func (req customerRequest) input() fieldops.CustomerInput {
	return fieldops.CustomerInput{
		Name:         req.Name,
		Company:      req.Company,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		CustomerType: domain.CustomerType(req.CustomerType),
		Notes:        req.Notes,
	}
}

// List returns customers matching q against name, company and email, or
// every customer when q is blank.
// GET /api/customers?q=
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.SearchCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]customerResponse, len(cs))
	for i, c := range cs {
		out[i] = toCustomerResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one customer.
// GET /api/customers/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "customer")
	if !ok {
		return
	}

	c, err := h.svc.GetCustomer(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(*c))
}

// Create stores a new customer.
// POST /api/customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.CreateCustomer(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(*c))
}

// Update replaces the writable fields of a customer.
// PUT /api/customers/{id}
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "customer")
	if !ok {
		return
	}

	var req customerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.UpdateCustomer(r.Context(), id, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(*c))
}

// Delete removes a customer.
// DELETE /api/customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "customer")
	if !ok {
		return
	}

	if err := h.svc.DeleteCustomer(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
