// Package registers expone los turnos de caja y el cobro de órdenes.
package registers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/http/dto"
	httperrors "github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/http/helpers"
	mw "github.com/dropDatabas3/comanda/internal/http/middlewares"
	"github.com/dropDatabas3/comanda/internal/http/services"
)

type Controller struct {
	service *services.RegisterService
}

func NewController(service *services.RegisterService) *Controller {
	return &Controller{service: service}
}

// List maneja GET /v1/registers.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	all, err := c.service.List(r.Context())
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	out := make([]dto.RegisterResponse, 0, len(all))
	for _, reg := range all {
		out = append(out, dto.NewRegisterResponse(reg))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Open maneja POST /v1/registers: abre el turno del cajero autenticado.
func (c *Controller) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenRegisterRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.FloatCents < 0 {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("el fondo inicial no puede ser negativo"))
		return
	}

	sess := mw.GetSession(r.Context())
	reg, err := c.service.Open(r.Context(), sess.StaffID, req.FloatCents)
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.NewRegisterResponse(*reg))
}

// Close maneja POST /v1/registers/{id}/close.
func (c *Controller) Close(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseRegisterRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	reg, err := c.service.Close(r.Context(), chi.URLParam(r, "id"), req.CountedCents)
	if err != nil {
		if errors.Is(err, services.ErrRegisterClosed) {
			httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("la caja ya está cerrada"))
			return
		}
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewRegisterResponse(*reg))
}

// Payments maneja GET /v1/registers/{id}/payments.
func (c *Controller) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := c.service.PaymentsByRegister(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.NewPaymentResponse(p))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Checkout maneja POST /v1/checkout: cobra una orden contra la caja abierta
// del cajero autenticado.
func (c *Controller) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.OrderID == "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("order_id es obligatorio"))
		return
	}

	sess := mw.GetSession(r.Context())
	p, err := c.service.Checkout(r.Context(), sess.StaffID, req.OrderID, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMethod):
			httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("medio de pago inválido"))
		case errors.Is(err, services.ErrNoOpenRegister):
			httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("no hay caja abierta para este cajero"))
		case errors.Is(err, services.ErrOrderNotPayable):
			httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("la orden no está servida"))
		default:
			httperrors.WriteStoreError(w, err)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.NewPaymentResponse(*p))
}
