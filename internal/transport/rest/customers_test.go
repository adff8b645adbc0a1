package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/fieldops"
)

type customerServiceMock struct {
	gotQuery string
	gotInput fieldops.CustomerInput
	deleted  uuid.UUID
	list     []domain.Customer
	err      error
}

func (m *customerServiceMock) SearchCustomers(_ context.Context, text string) ([]domain.Customer, error) {
	m.gotQuery = text
	return m.list, m.err
}

func (m *customerServiceMock) GetCustomer(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Customer{ID: id, Name: "James Wilson", CustomerType: domain.CustomerTypeResidential}, nil
}

func (m *customerServiceMock) CreateCustomer(_ context.Context, input fieldops.CustomerInput) (*domain.Customer, error) {
	m.gotInput = input
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Customer{ID: uuid.New(), Name: input.Name, CustomerType: input.CustomerType}, nil
}

func (m *customerServiceMock) UpdateCustomer(_ context.Context, id uuid.UUID, input fieldops.CustomerInput) (*domain.Customer, error) {
	m.gotInput = input
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Customer{ID: id, Name: input.Name, CustomerType: input.CustomerType}, nil
}

func (m *customerServiceMock) DeleteCustomer(_ context.Context, id uuid.UUID) error {
	m.deleted = id
	return m.err
}

func serveCustomers(h *CustomerHandler, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/customers", h.List)
	mux.HandleFunc("GET /api/customers/{id}", h.Get)
	mux.HandleFunc("POST /api/customers", h.Create)
	mux.HandleFunc("PUT /api/customers/{id}", h.Update)
	mux.HandleFunc("DELETE /api/customers/{id}", h.Delete)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestCustomerHandler_List_PassesQuery(t *testing.T) {
	t.Parallel()

	m := &customerServiceMock{list: []domain.Customer{{ID: uuid.New(), Name: "Wilson HVAC", CustomerType: domain.CustomerTypeCommercial}}}
	rec := serveCustomers(NewCustomerHandler(m, testLogger()), http.MethodGet, "/api/customers?q=wilson", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if m.gotQuery != "wilson" {
		t.Errorf("expected query %q, got %q", "wilson", m.gotQuery)
	}

	var resp []customerResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].CustomerType != "commercial" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCustomerHandler_Create(t *testing.T) {
	t.Parallel()

	m := &customerServiceMock{}
	rec := serveCustomers(NewCustomerHandler(m, testLogger()), http.MethodPost, "/api/customers",
		`{"name":"Maria Garcia","email":"maria@example.com","customerType":"residential"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if m.gotInput.Name != "Maria Garcia" || m.gotInput.CustomerType != domain.CustomerTypeResidential {
		t.Errorf("unexpected input: %+v", m.gotInput)
	}
}

func TestCustomerHandler_Delete(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	m := &customerServiceMock{}
	rec := serveCustomers(NewCustomerHandler(m, testLogger()), http.MethodDelete, "/api/customers/"+id.String(), "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if m.deleted != id {
		t.Errorf("expected %s deleted, got %s", id, m.deleted)
	}
}

func TestCustomerHandler_Errors(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	tests := []struct {
		name   string
		method string
		target string
		body   string
		err    error
		want   int
	}{
		{"bad id", http.MethodGet, "/api/customers/nope", "", nil, http.StatusBadRequest},
		{"missing", http.MethodGet, "/api/customers/" + id, "", domain.ErrNotFound, http.StatusNotFound},
		{"bad body", http.MethodPost, "/api/customers", `{`, nil, http.StatusBadRequest},
		{"validation", http.MethodPost, "/api/customers", `{"name":""}`, domain.NewValidationError("name", "required"), http.StatusBadRequest},
		{"update missing", http.MethodPut, "/api/customers/" + id, `{"name":"x"}`, domain.ErrNotFound, http.StatusNotFound},
		{"delete bad id", http.MethodDelete, "/api/customers/nope", "", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serveCustomers(NewCustomerHandler(&customerServiceMock{err: tt.err}, testLogger()), tt.method, tt.target, tt.body)
			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
