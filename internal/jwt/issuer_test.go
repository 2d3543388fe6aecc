package jwt_test

import (
	"testing"
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
	jwtx "github.com/dropDatabas3/comanda/internal/jwt"
)

func testStaff() *domain.Staff {
	return &domain.Staff{
		ID:          "11111111-1111-1111-1111-111111111111",
		Role:        domain.RoleManager,
		DisplayName: "Encargada",
	}
}

func TestSignVerify_Roundtrip(t *testing.T) {
	iss := jwtx.NewIssuer("comanda", "secreto-de-test", time.Hour)

	tok, err := iss.Sign(testStaff(), time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "11111111-1111-1111-1111-111111111111" {
		t.Fatalf("subject: %q", claims.Subject)
	}
	if claims.Role != string(domain.RoleManager) {
		t.Fatalf("role: %q", claims.Role)
	}
	if claims.DisplayName != "Encargada" {
		t.Fatalf("name: %q", claims.DisplayName)
	}
}

func TestVerify_Expired(t *testing.T) {
	iss := jwtx.NewIssuer("comanda", "secreto-de-test", time.Minute)

	tok, err := iss.Sign(testStaff(), time.Now().Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := iss.Verify(tok); err == nil {
		t.Fatal("un token vencido no debe verificar")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	a := jwtx.NewIssuer("comanda", "secreto-a", time.Hour)
	b := jwtx.NewIssuer("comanda", "secreto-b", time.Hour)

	tok, _ := a.Sign(testStaff(), time.Now())
	if _, err := b.Verify(tok); err == nil {
		t.Fatal("otra firma no debe verificar")
	}
}

func TestVerify_WrongIssuer(t *testing.T) {
	a := jwtx.NewIssuer("otro-servicio", "mismo-secreto", time.Hour)
	b := jwtx.NewIssuer("comanda", "mismo-secreto", time.Hour)

	tok, _ := a.Sign(testStaff(), time.Now())
	if _, err := b.Verify(tok); err == nil {
		t.Fatal("otro issuer no debe verificar")
	}
}

func TestVerify_Garbage(t *testing.T) {
	iss := jwtx.NewIssuer("comanda", "secreto", time.Hour)
	for _, raw := range []string{"", "abc", "a.b.c"} {
		if _, err := iss.Verify(raw); err == nil {
			t.Fatalf("token basura %q no debe verificar", raw)
		}
	}
}

// Sin secreto configurado el issuer genera uno efímero: firma y verifica
// dentro del proceso, pero dos issuers no comparten sesiones.
func TestNewIssuer_EphemeralSecret(t *testing.T) {
	a := jwtx.NewIssuer("comanda", "", time.Hour)
	tok, err := a.Sign(testStaff(), time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := a.Verify(tok); err != nil {
		t.Fatalf("verify local: %v", err)
	}

	b := jwtx.NewIssuer("comanda", "", time.Hour)
	if _, err := b.Verify(tok); err == nil {
		t.Fatal("issuers efímeros distintos no comparten secreto")
	}
}
