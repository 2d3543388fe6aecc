package services_test

import (
	"testing"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// Re-parentar una subcategoría mueve el registro y purga las listas
// filtradas de la categoría vieja y de la nueva.
func TestUpdateSubcategory_Reparent(t *testing.T) {
	svcs, st := newCachedServices(t)
	if err := st.CreateCategory(ctx, &domain.Category{ID: "c-2", Title: "Postres"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}

	count := func(categoryID string) int {
		t.Helper()
		subs, err := svcs.Catalog.ListSubcategories(ctx, categoryID)
		if err != nil {
			t.Fatalf("listar subcategorías de %s: %v", categoryID, err)
		}
		return len(subs)
	}

	// Calentar ambas listas filtradas
	if n := count("c-1"); n != 1 {
		t.Fatalf("estado inicial c-1: %d", n)
	}
	if n := count("c-2"); n != 0 {
		t.Fatalf("estado inicial c-2: %d", n)
	}

	sc, err := svcs.Catalog.UpdateSubcategory(ctx, "sc-1", "c-2", "Dulces", "")
	if err != nil {
		t.Fatalf("re-parentar: %v", err)
	}
	if sc.CategoryID != "c-2" || sc.Title != "Dulces" {
		t.Fatalf("subcategoría movida: %+v", sc)
	}

	if n := count("c-1"); n != 0 {
		t.Fatal("la lista de la categoría vieja quedó cacheada")
	}
	if n := count("c-2"); n != 1 {
		t.Fatal("la lista de la categoría nueva quedó cacheada")
	}
}

// Sin category_id la subcategoría conserva su padre.
func TestUpdateSubcategory_KeepsParentWhenOmitted(t *testing.T) {
	svcs, _ := newServices(t)

	sc, err := svcs.Catalog.UpdateSubcategory(ctx, "sc-1", "", "Gaseosas", "")
	if err != nil {
		t.Fatalf("editar: %v", err)
	}
	if sc.CategoryID != "c-1" {
		t.Fatalf("el padre no debe cambiar: %q", sc.CategoryID)
	}
}
