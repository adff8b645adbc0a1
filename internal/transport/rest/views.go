package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/fieldservice-backend/internal/service/views"
	"github.com/heartmarshall/fieldservice-backend/internal/viewcache"
)

type viewReader interface {
	Read(ctx context.Context, view viewcache.View, p views.Params) (views.Result, error)
}

// ViewHandler serves derived views.
type ViewHandler struct {
	views viewReader
	log   *slog.Logger
}

// NewViewHandler creates a ViewHandler.
func NewViewHandler(v viewReader, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{views: v, log: logger.With("handler", "views")}
}

type viewResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Get returns one derived view. A view that could not be refreshed is served
// from its last known value with status "fallback", or as 503 "unavailable"
// when there is none. A value invalidated while it was computed carries
// status "superseded".
// GET /api/views/{key}?limit=&month=
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	var p views.Params
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		p.Limit = n
	}
	p.Month = q.Get("month")

	res, err := h.views.Read(r.Context(), viewcache.View(r.PathValue("key")), p)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	switch res.Status {
	case views.StatusUnavailable:
		writeJSON(w, http.StatusServiceUnavailable, viewResponse{
			Status: string(res.Status),
			Error:  "view temporarily unavailable",
		})
	case views.StatusFallback:
		writeJSON(w, http.StatusOK, viewResponse{
			Status: string(res.Status),
			Data:   viewData(res.Value),
			Error:  "serving last known value",
		})
	default:
		writeJSON(w, http.StatusOK, viewResponse{
			Status: string(res.Status),
			Data:   viewData(res.Value),
		})
	}
}
