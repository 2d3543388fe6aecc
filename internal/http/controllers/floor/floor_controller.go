// Package floor expone las zonas y mesas del salón.
package floor

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/http/dto"
	httperrors "github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/http/helpers"
	"github.com/dropDatabas3/comanda/internal/http/services"
)

type Controller struct {
	service *services.FloorService
}

func NewController(service *services.FloorService) *Controller {
	return &Controller{service: service}
}

// ListSections maneja GET /v1/sections.
func (c *Controller) ListSections(w http.ResponseWriter, r *http.Request) {
	secs, err := c.service.ListSections(r.Context())
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	out := make([]dto.SectionResponse, 0, len(secs))
	for _, s := range secs {
		out = append(out, dto.NewSectionResponse(s))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// CreateSection maneja POST /v1/sections.
func (c *Controller) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSectionRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("title es obligatorio"))
		return
	}
	sec, err := c.service.CreateSection(r.Context(), req.Title)
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.NewSectionResponse(*sec))
}

// DeleteSection maneja DELETE /v1/sections/{id}.
func (c *Controller) DeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := c.service.DeleteSection(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.NoContent(w)
}

// ListTables maneja GET /v1/tables?section_id=...
func (c *Controller) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := c.service.ListTables(r.Context(), r.URL.Query().Get("section_id"))
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	out := make([]dto.TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, dto.NewTableResponse(t))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// CreateTable maneja POST /v1/tables.
func (c *Controller) CreateTable(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTableRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.SectionID == "" || req.Number <= 0 || req.Seats <= 0 {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("section_id, number y seats positivos son obligatorios"))
		return
	}
	t, err := c.service.CreateTable(r.Context(), req.SectionID, req.Number, req.Seats)
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.NewTableResponse(*t))
}

// UpdateTable maneja PATCH /v1/tables/{id}.
func (c *Controller) UpdateTable(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTableRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	t, err := c.service.UpdateTable(r.Context(), chi.URLParam(r, "id"), req.Seats, req.State)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTableState) {
			httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("estado de mesa inválido"))
			return
		}
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewTableResponse(*t))
}

// DeleteTable maneja DELETE /v1/tables/{id}.
func (c *Controller) DeleteTable(w http.ResponseWriter, r *http.Request) {
	if err := c.service.DeleteTable(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.NoContent(w)
}
