package listsync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/comanda/internal/listsync"
)

type row struct {
	ID    string
	Title string
}

func seeded(ids ...string) *listsync.Mirror[row] {
	m := listsync.New(func(r row) string { return r.ID })
	items := make([]row, 0, len(ids))
	for _, id := range ids {
		items = append(items, row{ID: id})
	}
	m.Seed(items)
	return m
}

func idsOf(m *listsync.Mirror[row]) []string {
	var out []string
	for _, r := range m.Items() {
		out = append(out, r.ID)
	}
	return out
}

func TestDelete_ConfirmFirst(t *testing.T) {
	m := seeded("a", "b", "c")

	confirmed := false
	err := m.Delete(context.Background(), "b", func(ctx context.Context) error {
		// En el momento de confirmar la lista todavía está completa
		if m.Len() != 3 {
			t.Fatalf("la lista no debe mutar antes de confirmar: %d", m.Len())
		}
		confirmed = true
		return nil
	})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !confirmed {
		t.Fatal("confirm no corrió")
	}
	if got := idsOf(m); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("lista tras borrar: %v", got)
	}
}

// Si la confirmación remota falla la lista queda intacta: nada desaparece en
// silencio.
func TestDelete_FailureLeavesListIntact(t *testing.T) {
	m := seeded("a", "b", "c")
	boom := errors.New("409 en uso")

	err := m.Delete(context.Background(), "b", func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("quiero el error de confirm, tengo %v", err)
	}
	if got := idsOf(m); len(got) != 3 {
		t.Fatalf("la lista no debe cambiar: %v", got)
	}
}

func TestDeleteOptimistic_RollbackRestoresPosition(t *testing.T) {
	m := seeded("a", "b", "c")
	boom := errors.New("red caída")

	err := m.DeleteOptimistic(context.Background(), "b", func(ctx context.Context) error {
		// Feedback inmediato: el item ya no está mientras se confirma
		if m.Len() != 2 {
			t.Fatalf("el item debe salir antes de confirmar: %d", m.Len())
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error de confirm: %v", err)
	}
	if got := idsOf(m); len(got) != 3 || got[1] != "b" {
		t.Fatalf("rollback en la posición original: %v", got)
	}
}

func TestDeleteOptimistic_Success(t *testing.T) {
	m := seeded("a", "b")
	if err := m.DeleteOptimistic(context.Background(), "a", func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := idsOf(m); len(got) != 1 || got[0] != "b" {
		t.Fatalf("lista: %v", got)
	}
}

func TestReplace(t *testing.T) {
	m := seeded("a", "b")

	if ok := m.Replace(row{ID: "b", Title: "editado"}); !ok {
		t.Fatal("replace de id presente")
	}
	if items := m.Items(); items[1].Title != "editado" {
		t.Fatalf("item reemplazado: %+v", items[1])
	}
	if ok := m.Replace(row{ID: "zzz"}); ok {
		t.Fatal("replace de id ausente devuelve false")
	}
}

func TestSeedCopiesInput(t *testing.T) {
	src := []row{{ID: "a"}}
	m := listsync.New(func(r row) string { return r.ID })
	m.Seed(src)
	src[0].ID = "mutado"

	if got := m.Items(); got[0].ID != "a" {
		t.Fatalf("el seed debe copiar: %v", got)
	}
}

func TestEmptyAndInsert(t *testing.T) {
	m := listsync.New(func(r row) string { return r.ID })
	if !m.Empty() {
		t.Fatal("espejo nuevo vacío")
	}
	m.Insert(row{ID: "a"})
	if m.Empty() || m.Len() != 1 {
		t.Fatalf("tras insert: len=%d", m.Len())
	}
}
