package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

type mutationNotifier interface {
	NotifyMutation(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error
}

// MutationHandler lets external writers report committed mutations so the
// dependent views are invalidated.
type MutationHandler struct {
	notify mutationNotifier
	log    *slog.Logger
}

// NewMutationHandler creates a MutationHandler.
func NewMutationHandler(notify mutationNotifier, logger *slog.Logger) *MutationHandler {
	return &MutationHandler{notify: notify, log: logger.With("handler", "mutations")}
}

type mutationRequest struct {
	Kind   string `json:"kind"`
	Action string `json:"action,omitempty"`
	ID     string `json:"id"`
}

// Notify handles POST /api/mutations.
func (h *MutationHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req mutationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Action != "" && !domain.MutationAction(req.Action).IsValid() {
		handleError(h.log, w, r, domain.NewValidationError("action", "must be created, updated or deleted"))
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("id", "must be a uuid"))
		return
	}

	if err := h.notify.NotifyMutation(r.Context(), domain.EntityKind(req.Kind), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
