// Package orders expone el ciclo de vida de las órdenes de mesa.
package orders

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/http/dto"
	httperrors "github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/http/helpers"
	mw "github.com/dropDatabas3/comanda/internal/http/middlewares"
	"github.com/dropDatabas3/comanda/internal/http/services"
)

type Controller struct {
	service *services.OrderService
}

func NewController(service *services.OrderService) *Controller {
	return &Controller{service: service}
}

// List maneja GET /v1/orders?status=...
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	all, err := c.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		c.writeError(w, err)
		return
	}
	out := make([]dto.OrderResponse, 0, len(all))
	for _, o := range all {
		out = append(out, dto.NewOrderResponse(o))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Get maneja GET /v1/orders/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	o, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.writeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewOrderResponse(*o))
}

// Open maneja POST /v1/orders: abre una orden sobre una mesa. El mozo es el
// empleado autenticado.
func (c *Controller) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenOrderRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.TableID == "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("table_id es obligatorio"))
		return
	}

	sess := mw.GetSession(r.Context())
	o, err := c.service.Open(r.Context(), req.TableID, sess.StaffID, toItemInputs(req.Items))
	if err != nil {
		c.writeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.NewOrderResponse(*o))
}

// AddItems maneja POST /v1/orders/{id}/items.
func (c *Controller) AddItems(w http.ResponseWriter, r *http.Request) {
	var items []dto.OrderItemRequest
	if !helpers.ReadJSON(w, r, &items) {
		return
	}
	if len(items) == 0 {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("la lista de ítems está vacía"))
		return
	}

	o, err := c.service.AddItems(r.Context(), chi.URLParam(r, "id"), toItemInputs(items))
	if err != nil {
		c.writeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewOrderResponse(*o))
}

// RemoveItem maneja DELETE /v1/orders/{id}/items/{itemID}.
func (c *Controller) RemoveItem(w http.ResponseWriter, r *http.Request) {
	o, err := c.service.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	if err != nil {
		c.writeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewOrderResponse(*o))
}

// Transition maneja POST /v1/orders/{id}/status.
func (c *Controller) Transition(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderStatusRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	o, err := c.service.Transition(r.Context(), chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	if err != nil {
		c.writeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewOrderResponse(*o))
}

func (c *Controller) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("estado inválido"))
	case errors.Is(err, services.ErrInvalidTransition):
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("transición de estado inválida"))
	case errors.Is(err, services.ErrEmptyItem):
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("cada ítem requiere producto y cantidad positiva"))
	default:
		httperrors.WriteStoreError(w, err)
	}
}

func toItemInputs(items []dto.OrderItemRequest) []services.ItemInput {
	out := make([]services.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, services.ItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Note:      it.Note,
		})
	}
	return out
}
