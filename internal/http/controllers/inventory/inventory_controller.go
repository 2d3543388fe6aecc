// Package inventory expone los lotes de ingredientes y el stock agregado.
package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/http/dto"
	httperrors "github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/http/helpers"
	"github.com/dropDatabas3/comanda/internal/http/services"
)

type Controller struct {
	service *services.InventoryService
}

func NewController(service *services.InventoryService) *Controller {
	return &Controller{service: service}
}

// ListBatches maneja GET /v1/inventory/batches?ingredient_id=...
func (c *Controller) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := c.service.ListBatches(r.Context(), r.URL.Query().Get("ingredient_id"))
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.NewBatchResponse(b))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// CreateBatch maneja POST /v1/inventory/batches.
func (c *Controller) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBatchRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.IngredientID == "" || req.Quantity <= 0 {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("ingrediente y cantidad positiva son obligatorios"))
		return
	}

	b, err := c.service.CreateBatch(r.Context(), req.IngredientID, req.Quantity, req.UnitCostCents, req.ExpiresAt)
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.NewBatchResponse(*b))
}

// DeleteBatch maneja DELETE /v1/inventory/batches/{id}.
func (c *Controller) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	if err := c.service.DeleteBatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.NoContent(w)
}

// Stock maneja GET /v1/inventory/stock: cantidades agregadas por ingrediente.
func (c *Controller) Stock(w http.ResponseWriter, r *http.Request) {
	stock, err := c.service.Stock(r.Context())
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, stock)
}
