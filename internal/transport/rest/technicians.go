package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/fieldops"
)

type technicianService interface {
	ListTechnicians(ctx context.Context) ([]domain.Technician, error)
	GetTechnician(ctx context.Context, id uuid.UUID) (*domain.Technician, error)
	CreateTechnician(ctx context.Context, input fieldops.TechnicianInput) (*domain.Technician, error)
	UpdateTechnician(ctx context.Context, id uuid.UUID, input fieldops.TechnicianInput) (*domain.Technician, error)
	DeactivateTechnician(ctx context.Context, id uuid.UUID) (*domain.Technician, error)
	DeleteTechnician(ctx context.Context, id uuid.UUID) error
}

// TechnicianHandler serves technician CRUD endpoints.
type TechnicianHandler struct {
	svc technicianService
	log *slog.Logger
}

// NewTechnicianHandler creates a TechnicianHandler.
func NewTechnicianHandler(svc technicianService, logger *slog.Logger) *TechnicianHandler {
	return &TechnicianHandler{svc: svc, log: logger.With("handler", "technicians")}
}

type technicianRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Specialization string   `json:"specialization"`
	Skills         []string `json:"skills"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes"`
}

func (req technicianRequest) input() fieldops.TechnicianInput {
	return fieldops.TechnicianInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Skills:         req.Skills,
		Status:         domain.TechnicianStatus(req.Status),
		Notes:          req.Notes,
	}
}

// List returns every technician.
// GET /api/technicians
func (h *TechnicianHandler) List(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.ListTechnicians(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]technicianResponse, len(ts))
	for i, t := range ts {
		out[i] = toTechnicianResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one technician.
// GET /api/technicians/{id}
func (h *TechnicianHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "technician")
	if !ok {
		return
	}

	t, err := h.svc.GetTechnician(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTechnicianResponse(*t))
}

// Create stores a new technician.
// POST /api/technicians
func (h *TechnicianHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req technicianRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.CreateTechnician(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTechnicianResponse(*t))
}

// Update replaces the writable fields of a technician.
// PUT /api/technicians/{id}
func (h *TechnicianHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "technician")
	if !ok {
		return
	}

	var req technicianRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.UpdateTechnician(r.Context(), id, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTechnicianResponse(*t))
}

// Deactivate marks a technician inactive.
// POST /api/technicians/{id}/deactivate
func (h *TechnicianHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "technician")
	if !ok {
		return
	}

	t, err := h.svc.DeactivateTechnician(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTechnicianResponse(*t))
}

// Delete removes a technician.
// DELETE /api/technicians/{id}
func (h *TechnicianHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "technician")
	if !ok {
		return
	}

	if err := h.svc.DeleteTechnician(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
