package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
	jwtx "github.com/dropDatabas3/comanda/internal/jwt"
	"github.com/dropDatabas3/comanda/internal/metrics"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
	"github.com/dropDatabas3/comanda/internal/security/password"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

// ErrInvalidCredentials cubre email inexistente, password incorrecto y cuenta
// desactivada: el cliente no distingue causa.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// AuthService emite y valida sesiones del panel.
type AuthService struct {
	repo   core.Repository
	issuer *jwtx.Issuer
}

// Login verifica credenciales y devuelve la sesión con su token firmado.
func (s *AuthService) Login(ctx context.Context, email, plain string) (domain.Session, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Login"),
	)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || plain == "" {
		metrics.RecordLogin("invalid")
		return domain.Session{}, ErrInvalidCredentials
	}

	st, err := s.repo.GetStaffByEmail(ctx, email)
	if err != nil {
		log.Debug("empleado no encontrado")
		metrics.RecordLogin("invalid")
		return domain.Session{}, ErrInvalidCredentials
	}
	if !st.Active {
		log.Info("login de cuenta desactivada", logger.StaffID(st.ID))
		metrics.RecordLogin("invalid")
		return domain.Session{}, ErrInvalidCredentials
	}
	if !password.Verify(plain, st.PasswordHash) {
		log.Debug("password incorrecto", logger.StaffID(st.ID))
		metrics.RecordLogin("invalid")
		return domain.Session{}, ErrInvalidCredentials
	}

	tok, err := s.issuer.Sign(st, time.Now())
	if err != nil {
		return domain.Session{}, err
	}

	log.Info("login ok", logger.StaffID(st.ID), logger.Role(string(st.Role)))
	metrics.RecordLogin("ok")
	return domain.Session{
		StaffID:     st.ID,
		Token:       tok,
		Role:        st.Role,
		DisplayName: st.DisplayName,
	}, nil
}
