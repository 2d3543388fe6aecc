// Package auth expone el login y el bootstrap de sesión del panel.
package auth

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/comanda/internal/http/dto"
	httperrors "github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/http/helpers"
	mw "github.com/dropDatabas3/comanda/internal/http/middlewares"
	"github.com/dropDatabas3/comanda/internal/http/services"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
)

type Controller struct {
	service *services.AuthService
}

func NewController(service *services.AuthService) *Controller {
	return &Controller{service: service}
}

// Login maneja POST /v1/auth/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("auth.Login"))

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	sess, err := c.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
			return
		}
		log.Error("login falló", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		Token:       sess.Token,
		StaffID:     sess.StaffID,
		Role:        string(sess.Role),
		DisplayName: sess.DisplayName,
	})
}

// Me maneja GET /v1/auth/me: el bootstrap de identidad del cliente.
// La sesión ya viene re-validada por el middleware; acá solo se refleja.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r.Context())
	if !sess.IsAuthenticated() {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MeResponse{
		StaffID:     sess.StaffID,
		Role:        string(sess.Role),
		DisplayName: sess.DisplayName,
	})
}
