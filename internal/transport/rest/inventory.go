package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/inventory"
)

type usageService interface {
	RecordUsage(ctx context.Context, input inventory.RecordUsageInput) (*domain.StockUsageRecord, error)
	UsageByJob(ctx context.Context, jobID uuid.UUID) ([]domain.StockUsageRecord, error)
}

// InventoryHandler serves stock usage endpoints.
type InventoryHandler struct {
	svc usageService
	log *slog.Logger
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(svc usageService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, log: logger.With("handler", "inventory")}
}

type recordUsageRequest struct {
	JobID    string `json:"jobId"`
	Quantity int    `json:"quantity"`
}

// RecordUsage records a quantity of an item consumed by a job and
// decrements its stock.
// POST /api/inventory/{id}/usage
func (h *InventoryHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req recordUsageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("job_id", "must be a uuid"))
		return
	}

	rec, err := h.svc.RecordUsage(r.Context(), inventory.RecordUsageInput{
		ItemID:   itemID,
		JobID:    jobID,
		Quantity: req.Quantity,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUsageResponse(*rec))
}

// UsageByJob lists the usage records of one job.
// GET /api/jobs/{id}/usage
func (h *InventoryHandler) UsageByJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	records, err := h.svc.UsageByJob(r.Context(), jobID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUsageResponses(records))
}
