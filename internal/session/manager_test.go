package session_test

import (
	"context"
	"errors"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/comanda/internal/domain"
	jwtx "github.com/dropDatabas3/comanda/internal/jwt"
	"github.com/dropDatabas3/comanda/internal/session"
)

// fakeVerifier cuenta las validaciones para poder afirmar "sin credencial no
// hay llamada de red".
type fakeVerifier struct {
	calls int
	fail  bool
	sub   string
}

func (f *fakeVerifier) Verify(raw string) (*jwtx.SessionClaims, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("token roto")
	}
	return &jwtx.SessionClaims{
		Role:             string(domain.RoleManager),
		DisplayName:      "Encargada",
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: f.sub},
	}, nil
}

type fakeStaff struct {
	staff map[string]*domain.Staff
}

func (f *fakeStaff) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	st, ok := f.staff[id]
	if !ok {
		return nil, errors.New("no existe")
	}
	return st, nil
}

func newManager(v *fakeVerifier, staff *fakeStaff) (*session.Manager, *session.MemStore) {
	creds := &session.MemStore{}
	m := &session.Manager{
		Creds: creds,
		Auth:  &session.Authenticator{Verifier: v, Staff: staff},
	}
	return m, creds
}

func TestBootstrap_NoCredentialSkipsNetwork(t *testing.T) {
	v := &fakeVerifier{}
	m, _ := newManager(v, &fakeStaff{})

	_, err := m.Bootstrap(context.Background())
	if !errors.Is(err, session.ErrUnauthenticated) {
		t.Fatalf("quiero ErrUnauthenticated, tengo %v", err)
	}
	if v.calls != 0 {
		t.Fatalf("sin credencial persistida no hay validación: %d llamadas", v.calls)
	}
	if !m.Ready() {
		t.Fatal("el manager queda ready aunque no haya sesión")
	}
}

func TestBootstrap_BadCredentialClearsStore(t *testing.T) {
	v := &fakeVerifier{fail: true}
	m, creds := newManager(v, &fakeStaff{})
	_ = creds.Save("s-1", "token-roto")

	_, err := m.Bootstrap(context.Background())
	if !errors.Is(err, session.ErrUnauthenticated) {
		t.Fatalf("quiero ErrUnauthenticated, tengo %v", err)
	}
	if _, _, ok := creds.Load(); ok {
		t.Fatal("la credencial inservible debe limpiarse")
	}
	if m.Current().IsAuthenticated() {
		t.Fatal("no debe quedar sesión")
	}
	if !m.Ready() {
		t.Fatal("el fallo también deja el manager ready")
	}
}

func TestBootstrap_StaffMismatchClearsStore(t *testing.T) {
	// El token valida pero pertenece a otro empleado que el persistido
	v := &fakeVerifier{sub: "s-2"}
	staff := &fakeStaff{staff: map[string]*domain.Staff{
		"s-2": {ID: "s-2", Role: domain.RoleManager, DisplayName: "Encargada", Active: true},
	}}
	m, creds := newManager(v, staff)
	_ = creds.Save("s-1", "token-ajeno")

	if _, err := m.Bootstrap(context.Background()); !errors.Is(err, session.ErrUnauthenticated) {
		t.Fatalf("mismatch de identidad: %v", err)
	}
	if _, _, ok := creds.Load(); ok {
		t.Fatal("el mismatch limpia la credencial")
	}
}

func TestBootstrap_Success(t *testing.T) {
	v := &fakeVerifier{sub: "s-1"}
	staff := &fakeStaff{staff: map[string]*domain.Staff{
		"s-1": {ID: "s-1", Role: domain.RoleManager, DisplayName: "Encargada", Active: true},
	}}
	m, creds := newManager(v, staff)
	_ = creds.Save("s-1", "token-ok")

	sess, err := m.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if sess.StaffID != "s-1" || sess.Role != domain.RoleManager {
		t.Fatalf("sesión: %+v", sess)
	}
	if got := m.Current(); got.StaffID != "s-1" {
		t.Fatalf("current: %+v", got)
	}
	if !m.Ready() {
		t.Fatal("ready tras bootstrap exitoso")
	}
}

func TestAuthenticate_InactiveStaff(t *testing.T) {
	v := &fakeVerifier{sub: "s-1"}
	staff := &fakeStaff{staff: map[string]*domain.Staff{
		"s-1": {ID: "s-1", Role: domain.RoleWaiter, Active: false},
	}}
	auth := &session.Authenticator{Verifier: v, Staff: staff}

	if _, err := auth.Authenticate(context.Background(), "tok"); !errors.Is(err, session.ErrUnauthenticated) {
		t.Fatalf("empleado inactivo: %v", err)
	}
}

// El rol sale del registro fresco, no de los claims: un cambio de rol aplica
// en la próxima validación.
func TestAuthenticate_RoleFromFreshRecord(t *testing.T) {
	v := &fakeVerifier{sub: "s-1"} // claims dicen manager
	staff := &fakeStaff{staff: map[string]*domain.Staff{
		"s-1": {ID: "s-1", Role: domain.RoleWaiter, DisplayName: "Luz", Active: true},
	}}
	auth := &session.Authenticator{Verifier: v, Staff: staff}

	sess, err := auth.Authenticate(context.Background(), "tok")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.Role != domain.RoleWaiter {
		t.Fatalf("el rol viene del registro: %v", sess.Role)
	}
}

func TestLoginAndLogout(t *testing.T) {
	m, creds := newManager(&fakeVerifier{}, &fakeStaff{})

	if err := m.Login(domain.Session{}); !errors.Is(err, session.ErrUnauthenticated) {
		t.Fatalf("login con sesión vacía: %v", err)
	}

	sess := domain.Session{StaffID: "s-1", Token: "tok", Role: domain.RoleAdmin}
	if err := m.Login(sess); err != nil {
		t.Fatalf("login: %v", err)
	}
	if id, tok, ok := creds.Load(); !ok || id != "s-1" || tok != "tok" {
		t.Fatalf("credencial persistida: %q %q %v", id, tok, ok)
	}

	m.Logout()
	if _, _, ok := creds.Load(); ok {
		t.Fatal("logout limpia la credencial")
	}
	if m.Current().IsAuthenticated() {
		t.Fatal("logout limpia la sesión")
	}
}
