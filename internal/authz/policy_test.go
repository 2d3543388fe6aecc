package authz_test

import (
	"testing"

	"github.com/dropDatabas3/comanda/internal/authz"
	"github.com/dropDatabas3/comanda/internal/domain"
)

func sessionWithRole(r domain.Role) domain.Session {
	return domain.Session{StaffID: "s-1", Token: "tok", Role: r}
}

func TestEvaluate_Checking(t *testing.T) {
	p := authz.NewPolicy().Allow("menu.write", domain.RoleAdmin)
	if d := p.Evaluate("menu.write", sessionWithRole(domain.RoleAdmin), false); d != authz.DecisionChecking {
		t.Fatalf("sin readiness la decisión es checking: %v", d)
	}
}

func TestEvaluate_Unauthenticated(t *testing.T) {
	p := authz.NewPolicy().AllowAny("menu.read")
	if d := p.Evaluate("menu.read", domain.Session{}, true); d != authz.DecisionDenied {
		t.Fatalf("sin sesión: %v", d)
	}
}

func TestEvaluate_AllowList(t *testing.T) {
	p := authz.NewPolicy().Allow("staff.manage", domain.RoleAdmin)

	if d := p.Evaluate("staff.manage", sessionWithRole(domain.RoleAdmin), true); d != authz.DecisionAllowed {
		t.Fatalf("admin debe entrar: %v", d)
	}
	if d := p.Evaluate("staff.manage", sessionWithRole(domain.RoleWaiter), true); d != authz.DecisionDenied {
		t.Fatalf("mozo no debe entrar: %v", d)
	}
}

func TestEvaluate_AllowAny(t *testing.T) {
	p := authz.NewPolicy().AllowAny("menu.read")
	for _, r := range domain.AllRoles {
		if d := p.Evaluate("menu.read", sessionWithRole(r), true); d != authz.DecisionAllowed {
			t.Fatalf("rol %s en ruta abierta: %v", r, d)
		}
	}
}

// Una ruta no declarada se niega aunque la sesión sea de admin: fail-closed.
func TestEvaluate_UndeclaredRouteFailsClosed(t *testing.T) {
	p := authz.NewPolicy()
	if d := p.Evaluate("no.declarada", sessionWithRole(domain.RoleAdmin), true); d != authz.DecisionDenied {
		t.Fatalf("ruta sin entrada: %v", d)
	}
}

func TestAllow_PanicsWithoutRoles(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Allow sin roles debe panichear")
		}
	}()
	authz.NewPolicy().Allow("ruta.mala")
}

func TestValidate(t *testing.T) {
	p := authz.NewPolicy().
		AllowAny("menu.read").
		Allow("menu.write", domain.RoleAdmin)

	if err := p.Validate([]string{"menu.read", "menu.write"}); err != nil {
		t.Fatalf("tabla completa: %v", err)
	}
	if err := p.Validate([]string{"menu.read", "orders.read"}); err == nil {
		t.Fatal("ruta declarada sin entrada debe fallar el arranque")
	}
}

func TestEvaluateAnonymous(t *testing.T) {
	if d := authz.EvaluateAnonymous(domain.Session{}, false); d != authz.DecisionChecking {
		t.Fatalf("sin readiness: %v", d)
	}
	if d := authz.EvaluateAnonymous(domain.Session{}, true); d != authz.DecisionAllowed {
		t.Fatalf("sin sesión la página de login se sirve: %v", d)
	}
	if d := authz.EvaluateAnonymous(sessionWithRole(domain.RoleWaiter), true); d != authz.DecisionDenied {
		t.Fatalf("con sesión la página de login se niega: %v", d)
	}
}
