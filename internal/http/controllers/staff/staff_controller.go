// Package staff expone la administración de cuentas de empleados.
package staff

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/http/dto"
	httperrors "github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/http/helpers"
	mw "github.com/dropDatabas3/comanda/internal/http/middlewares"
	"github.com/dropDatabas3/comanda/internal/http/services"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
)

type Controller struct {
	service *services.StaffService
}

func NewController(service *services.StaffService) *Controller {
	return &Controller{service: service}
}

// List maneja GET /v1/staff.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	all, err := c.service.List(r.Context())
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	out := make([]dto.StaffResponse, 0, len(all))
	for _, st := range all {
		out = append(out, dto.NewStaffResponse(st, c.service.ImageURL(st)))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Create maneja POST /v1/staff.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStaffRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.DisplayName == "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("email y display_name son obligatorios"))
		return
	}

	st, err := c.service.Create(r.Context(), req.Email, req.DisplayName, req.Role, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("rol inválido"))
			return
		}
		httperrors.WriteStoreError(w, err)
		return
	}

	logger.From(r.Context()).Info("empleado creado",
		logger.StaffID(st.ID), logger.Role(string(st.Role)))
	helpers.WriteJSON(w, http.StatusCreated, dto.NewStaffResponse(*st, c.service.ImageURL(*st)))
}

// Update maneja PATCH /v1/staff/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateStaffRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	st, err := c.service.Update(r.Context(), id, services.UpdateInput{
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Active:      req.Active,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("rol inválido"))
			return
		}
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewStaffResponse(*st, c.service.ImageURL(*st)))
}

// Delete maneja DELETE /v1/staff/{id}. Un admin no puede borrarse a sí mismo.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if sess := mw.GetSession(r.Context()); sess.StaffID == id {
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("no podés borrar tu propia cuenta"))
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.NoContent(w)
}
