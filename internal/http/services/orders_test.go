package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	cachemem "github.com/dropDatabas3/comanda/internal/cache/memory"
	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/http/services"
	"github.com/dropDatabas3/comanda/internal/store/core"
	"github.com/dropDatabas3/comanda/internal/store/memory"
)

var ctx = context.Background()

// seedStore arma un store en memoria con una mesa y un producto listos.
func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	st := memory.New()

	if err := st.CreateSection(ctx, &domain.Section{ID: "sec-1", Title: "Salón"}); err != nil {
		t.Fatalf("seed section: %v", err)
	}
	if err := st.CreateTable(ctx, &domain.Table{ID: "t-1", SectionID: "sec-1", Number: 1, Seats: 4, State: domain.TableFree}); err != nil {
		t.Fatalf("seed table: %v", err)
	}
	_ = st.CreateCategory(ctx, &domain.Category{ID: "c-1"})
	_ = st.CreateSubcategory(ctx, &domain.Subcategory{ID: "sc-1", CategoryID: "c-1"})
	if err := st.CreateProduct(ctx, &domain.Product{ID: "p-1", SubcategoryID: "sc-1", Title: "Café", PriceCents: 250000, Available: true}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return st
}

func newServices(t *testing.T) (*services.Services, *memory.Store) {
	t.Helper()
	st := seedStore(t)
	return services.New(services.Deps{Repo: st, CacheTTL: time.Minute}), st
}

// newCachedServices suma un cache real para verificar invalidaciones.
func newCachedServices(t *testing.T) (*services.Services, *memory.Store) {
	t.Helper()
	st := seedStore(t)
	return services.New(services.Deps{Repo: st, Cache: cachemem.New(time.Minute), CacheTTL: time.Minute}), st
}

func TestOpenOrder_FreezesPriceAndOccupiesTable(t *testing.T) {
	svcs, st := newServices(t)

	o, err := svcs.Orders.Open(ctx, "t-1", "w-1", []services.ItemInput{
		{ProductID: "p-1", Quantity: 2, Note: "sin azúcar"},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(o.Items) != 1 || o.Items[0].UnitPriceCents != 250000 {
		t.Fatalf("precio congelado del producto: %+v", o.Items)
	}
	if o.TotalCents() != 500000 {
		t.Fatalf("total: %d", o.TotalCents())
	}

	tb, _ := st.GetTable(ctx, "t-1")
	if tb.State != domain.TableOccupied {
		t.Fatalf("la mesa queda ocupada: %v", tb.State)
	}

	// El precio del producto puede cambiar después sin tocar la orden
	p, _ := st.GetProduct(ctx, "p-1")
	p.PriceCents = 999
	_ = st.UpdateProduct(ctx, p)
	again, _ := svcs.Orders.Get(ctx, o.ID)
	if again.Items[0].UnitPriceCents != 250000 {
		t.Fatal("el precio de la orden no sigue al producto")
	}
}

func TestOpenOrder_RejectsEmptyItem(t *testing.T) {
	svcs, _ := newServices(t)
	_, err := svcs.Orders.Open(ctx, "t-1", "w-1", []services.ItemInput{{ProductID: "p-1", Quantity: 0}})
	if !errors.Is(err, services.ErrEmptyItem) {
		t.Fatalf("cantidad cero: %v", err)
	}
}

func TestTransition_Lifecycle(t *testing.T) {
	svcs, st := newServices(t)
	o, _ := svcs.Orders.Open(ctx, "t-1", "w-1", []services.ItemInput{{ProductID: "p-1", Quantity: 1}})

	steps := []domain.OrderStatus{domain.OrderSubmitted, domain.OrderServed, domain.OrderClosed}
	for _, to := range steps {
		got, err := svcs.Orders.Transition(ctx, o.ID, to)
		if err != nil {
			t.Fatalf("transición a %s: %v", to, err)
		}
		if got.Status != to {
			t.Fatalf("estado: %v", got.Status)
		}
	}

	final, _ := svcs.Orders.Get(ctx, o.ID)
	if final.ClosedAt == nil {
		t.Fatal("cerrar setea ClosedAt")
	}
	tb, _ := st.GetTable(ctx, "t-1")
	if tb.State != domain.TableFree {
		t.Fatalf("cerrar libera la mesa: %v", tb.State)
	}
}

func TestTransition_InvalidPaths(t *testing.T) {
	svcs, _ := newServices(t)
	o, _ := svcs.Orders.Open(ctx, "t-1", "w-1", nil)

	// open no puede saltar a served ni a closed
	for _, to := range []domain.OrderStatus{domain.OrderServed, domain.OrderClosed} {
		if _, err := svcs.Orders.Transition(ctx, o.ID, to); !errors.Is(err, services.ErrInvalidTransition) {
			t.Fatalf("open a %s: %v", to, err)
		}
	}
	if _, err := svcs.Orders.Transition(ctx, o.ID, "inventado"); !errors.Is(err, services.ErrInvalidStatus) {
		t.Fatalf("estado desconocido: %v", err)
	}

	// cancelada es terminal
	if _, err := svcs.Orders.Transition(ctx, o.ID, domain.OrderCancelled); err != nil {
		t.Fatalf("cancelar desde open: %v", err)
	}
	if _, err := svcs.Orders.Transition(ctx, o.ID, domain.OrderSubmitted); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("salir de cancelada: %v", err)
	}
}

func TestTransition_CancelFreesTable(t *testing.T) {
	svcs, st := newServices(t)
	o, _ := svcs.Orders.Open(ctx, "t-1", "w-1", nil)

	if _, err := svcs.Orders.Transition(ctx, o.ID, domain.OrderCancelled); err != nil {
		t.Fatalf("cancelar: %v", err)
	}
	tb, _ := st.GetTable(ctx, "t-1")
	if tb.State != domain.TableFree {
		t.Fatalf("cancelar libera la mesa: %v", tb.State)
	}
}

func TestAddItems_OnlyWhileOpen(t *testing.T) {
	svcs, _ := newServices(t)
	o, _ := svcs.Orders.Open(ctx, "t-1", "w-1", nil)

	got, err := svcs.Orders.AddItems(ctx, o.ID, []services.ItemInput{{ProductID: "p-1", Quantity: 3}})
	if err != nil {
		t.Fatalf("agregar a orden abierta: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items: %d", len(got.Items))
	}

	_, _ = svcs.Orders.Transition(ctx, o.ID, domain.OrderSubmitted)
	if _, err := svcs.Orders.AddItems(ctx, o.ID, []services.ItemInput{{ProductID: "p-1", Quantity: 1}}); !errors.Is(err, core.ErrOrderNotOpen) {
		t.Fatalf("agregar a orden enviada: %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	svcs, _ := newServices(t)
	o, _ := svcs.Orders.Open(ctx, "t-1", "w-1", []services.ItemInput{{ProductID: "p-1", Quantity: 1}})
	itemID := o.Items[0].ID

	got, err := svcs.Orders.RemoveItem(ctx, o.ID, itemID)
	if err != nil {
		t.Fatalf("quitar: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("items tras quitar: %d", len(got.Items))
	}
	if _, err := svcs.Orders.RemoveItem(ctx, o.ID, "fantasma"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("ítem inexistente: %v", err)
	}
}

// El estado de mesa cacheado no sobrevive a una orden: abrir y cancelar
// invalidan las listas de mesas (la global y la de la zona).
func TestOrderLifecycle_InvalidatesTablesCache(t *testing.T) {
	svcs, _ := newCachedServices(t)

	tableState := func(sectionID string) domain.TableState {
		t.Helper()
		tables, err := svcs.Floor.ListTables(ctx, sectionID)
		if err != nil || len(tables) != 1 {
			t.Fatalf("listar mesas (%q): %v %v", sectionID, tables, err)
		}
		return tables[0].State
	}

	// Calentar ambas listas con la mesa libre
	if st := tableState(""); st != domain.TableFree {
		t.Fatalf("estado inicial: %v", st)
	}
	if st := tableState("sec-1"); st != domain.TableFree {
		t.Fatalf("estado inicial por zona: %v", st)
	}

	o, err := svcs.Orders.Open(ctx, "t-1", "w-1", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if st := tableState(""); st != domain.TableOccupied {
		t.Fatalf("abrir la orden debe invalidar la lista global: %v", st)
	}
	if st := tableState("sec-1"); st != domain.TableOccupied {
		t.Fatalf("abrir la orden debe invalidar la lista de la zona: %v", st)
	}

	if _, err := svcs.Orders.Transition(ctx, o.ID, domain.OrderCancelled); err != nil {
		t.Fatalf("cancelar: %v", err)
	}
	if st := tableState(""); st != domain.TableFree {
		t.Fatalf("cancelar debe invalidar la lista de mesas: %v", st)
	}
}

func TestListOrders_InvalidStatusFilter(t *testing.T) {
	svcs, _ := newServices(t)
	if _, err := svcs.Orders.List(ctx, "inventado"); !errors.Is(err, services.ErrInvalidStatus) {
		t.Fatalf("filtro inválido: %v", err)
	}
}
