// Package session implementa el bootstrap de identidad: leer la credencial
// persistida, validar el token y cargar el empleado. Cualquier fallo se trata
// como "no autenticado" sin distinguir causa (expirado, malformado, revocado).
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dropDatabas3/comanda/internal/domain"
	jwtx "github.com/dropDatabas3/comanda/internal/jwt"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
)

// ErrUnauthenticated señala que no hay sesión válida. Es el ÚNICO error que
// sale del bootstrap: las causas quedan en el log, no en el contrato.
var ErrUnauthenticated = errors.New("session: not authenticated")

// TokenVerifier valida una credencial cruda y devuelve sus claims.
type TokenVerifier interface {
	Verify(raw string) (*jwtx.SessionClaims, error)
}

// StaffSource carga el registro del empleado. Lo satisface core.Repository.
type StaffSource interface {
	GetStaff(ctx context.Context, id string) (*domain.Staff, error)
}

// Authenticator resuelve una credencial cruda a una Session fresca.
// Se invoca en cada request protegido: cada navegación re-valida la sesión.
type Authenticator struct {
	Verifier TokenVerifier
	Staff    StaffSource
}

// Authenticate valida el token, carga el empleado y arma la Session.
// Cualquier fallo colapsa a ErrUnauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (domain.Session, error) {
	if raw == "" {
		return domain.Session{}, ErrUnauthenticated
	}
	claims, err := a.Verifier.Verify(raw)
	if err != nil {
		logger.From(ctx).Debug("token inválido", logger.Err(err))
		return domain.Session{}, ErrUnauthenticated
	}
	st, err := a.Staff.GetStaff(ctx, claims.Subject)
	if err != nil || st == nil {
		logger.From(ctx).Debug("empleado no encontrado para token", logger.Err(err))
		return domain.Session{}, ErrUnauthenticated
	}
	if !st.Active {
		return domain.Session{}, ErrUnauthenticated
	}
	// El rol sale del registro fresco, no del token: un cambio de rol
	// aplica en la próxima navegación sin esperar a que el token expire.
	return domain.Session{
		StaffID:     st.ID,
		Token:       raw,
		Role:        st.Role,
		DisplayName: st.DisplayName,
	}, nil
}

// =================================================================================
// MANAGER (estado compartido de sesión, single-writer)
// =================================================================================

// Manager es el único escritor del estado de sesión compartido.
// Bootstrap, Login y Logout escriben; todo lo demás solo lee (Current/Ready).
type Manager struct {
	Creds CredentialStore
	Auth  *Authenticator

	mu      sync.RWMutex
	current domain.Session
	ready   bool
}

// Bootstrap establece la identidad al inicio:
//   - sin credencial persistida → no autenticado, SIN llamada de red;
//   - con credencial → validar y cargar empleado;
//   - cualquier fallo → limpiar TODO el estado persistido y reportar
//     ErrUnauthenticated (el caller redirige a login).
//
// Al terminar (éxito o fallo) el Manager queda "ready": la decisión de
// autorización se deriva de este flag, nunca de una espera fija.
func (m *Manager) Bootstrap(ctx context.Context) (domain.Session, error) {
	staffID, tok, ok := m.Creds.Load()
	if !ok {
		m.setSession(domain.Session{})
		return domain.Session{}, ErrUnauthenticated
	}

	sess, err := m.Auth.Authenticate(ctx, tok)
	if err != nil || sess.StaffID != staffID {
		// Credencial presente pero inservible: limpiar estado persistido.
		_ = m.Creds.Clear()
		m.setSession(domain.Session{})
		if err == nil {
			err = fmt.Errorf("%w: credential/staff mismatch", ErrUnauthenticated)
		}
		return domain.Session{}, ErrUnauthenticated
	}

	m.setSession(sess)
	return sess, nil
}

// Login guarda la sesión y la credencial durable.
func (m *Manager) Login(sess domain.Session) error {
	if !sess.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if err := m.Creds.Save(sess.StaffID, sess.Token); err != nil {
		return err
	}
	m.setSession(sess)
	return nil
}

// Logout limpia sesión y credencial durable.
func (m *Manager) Logout() {
	_ = m.Creds.Clear()
	m.setSession(domain.Session{})
}

// Current devuelve la sesión actual (cero si no hay).
func (m *Manager) Current() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Ready indica si el bootstrap ya corrió (con o sin éxito).
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

func (m *Manager) setSession(s domain.Session) {
	m.mu.Lock()
	m.current = s
	m.ready = true
	m.mu.Unlock()
}
