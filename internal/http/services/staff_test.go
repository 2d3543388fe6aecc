package services_test

import (
	"errors"
	"testing"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/http/services"
	"github.com/dropDatabas3/comanda/internal/security/password"
)

// Sin contraseña explícita se genera una temporal (camino de invitación;
// sin SMTP configurado el mail es no-op y el alta igual queda).
func TestCreateStaff_GeneratedPassword(t *testing.T) {
	svcs, store := newServices(t)

	st, err := svcs.Staff.Create(ctx, "  Ana@Resto.Test ", "Ana", "waiter", "")
	if err != nil {
		t.Fatalf("alta con invitación: %v", err)
	}
	if st.Email != "ana@resto.test" {
		t.Fatalf("email normalizado: %q", st.Email)
	}
	if st.Role != domain.RoleWaiter || !st.Active {
		t.Fatalf("rol/estado: %+v", st)
	}
	if st.PasswordHash == "" {
		t.Fatal("la contraseña generada debe quedar hasheada")
	}

	persisted, err := store.GetStaff(ctx, st.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if persisted.PasswordHash != st.PasswordHash {
		t.Fatal("el hash persistido no coincide")
	}
}

func TestCreateStaff_ExplicitPassword(t *testing.T) {
	svcs, _ := newServices(t)

	st, err := svcs.Staff.Create(ctx, "bruno@resto.test", "Bruno", "cashier", "secreto123")
	if err != nil {
		t.Fatalf("alta: %v", err)
	}
	if !password.Verify("secreto123", st.PasswordHash) {
		t.Fatal("la contraseña explícita debe verificar contra el hash")
	}
}

func TestCreateStaff_InvalidRole(t *testing.T) {
	svcs, _ := newServices(t)
	if _, err := svcs.Staff.Create(ctx, "x@resto.test", "X", "gerente-general", ""); !errors.Is(err, services.ErrInvalidRole) {
		t.Fatalf("rol inválido: %v", err)
	}
}
