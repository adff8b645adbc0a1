package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/fieldops"
)

type itemService interface {
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	CreateItem(ctx context.Context, input fieldops.ItemInput) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input fieldops.ItemInput) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// ItemHandler serves inventory item CRUD endpoints. Stock consumption goes
// through InventoryHandler.RecordUsage instead.
type ItemHandler struct {
	svc itemService
	log *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(svc itemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: logger.With("handler", "items")}
}

type itemRequest struct {
	SKU                   string          `json:"sku"`
	Name                  string          `json:"name"`
	Category              string          `json:"category"`
	QuantityInStock       int             `json:"quantityInStock"`
	MinimumStockThreshold int             `json:"minimumStockThreshold"`
	UnitCost              decimal.Decimal `json:"unitCost"`
	Supplier              string          `json:"supplier"`
	Notes                 string          `json:"notes"`
}

func (req itemRequest) input() fieldops.ItemInput {
	return fieldops.ItemInput{
		SKU:                   req.SKU,
		Name:                  req.Name,
		Category:              req.Category,
		QuantityInStock:       req.QuantityInStock,
		MinimumStockThreshold: req.MinimumStockThreshold,
		UnitCost:              req.UnitCost,
		Supplier:              req.Supplier,
		Notes:                 req.Notes,
	}
}

// List returns every inventory item.
// GET /api/inventory
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponses(items))
}

// Get returns one inventory item.
// GET /api/inventory/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	it, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(*it))
}

// Create stores a new inventory item.
// POST /api/inventory
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.svc.CreateItem(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(*it))
}

// Update replaces the writable fields of an item. A stock change here is a
// manual adjustment and moves the reconciliation baseline with it.
// PUT /api/inventory/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.svc.UpdateItem(r.Context(), id, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(*it))
}

// Delete removes an inventory item.
// DELETE /api/inventory/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
