package services_test

import (
	"errors"
	"testing"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/http/services"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

// servedOrder deja una orden lista para cobrar: abierta, enviada y servida.
func servedOrder(t *testing.T, svcs *services.Services, qty int) *domain.Order {
	t.Helper()
	o, err := svcs.Orders.Open(ctx, "t-1", "w-1", []services.ItemInput{{ProductID: "p-1", Quantity: qty}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, st := range []domain.OrderStatus{domain.OrderSubmitted, domain.OrderServed} {
		if _, err := svcs.Orders.Transition(ctx, o.ID, st); err != nil {
			t.Fatalf("a %s: %v", st, err)
		}
	}
	got, _ := svcs.Orders.Get(ctx, o.ID)
	return got
}

func TestCheckout_HappyPath(t *testing.T) {
	svcs, st := newServices(t)
	o := servedOrder(t, svcs, 2) // 2 x 250000

	if _, err := svcs.Registers.Open(ctx, "cashier-1", 100000); err != nil {
		t.Fatalf("abrir caja: %v", err)
	}

	p, err := svcs.Registers.Checkout(ctx, "cashier-1", o.ID, "cash")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if p.TotalCents != 500000 {
		t.Fatalf("total del pago: %d", p.TotalCents)
	}

	closed, _ := svcs.Orders.Get(ctx, o.ID)
	if closed.Status != domain.OrderClosed || closed.ClosedAt == nil {
		t.Fatalf("la orden queda cerrada: %+v", closed.Status)
	}
	tb, _ := st.GetTable(ctx, "t-1")
	if tb.State != domain.TableFree {
		t.Fatalf("el cobro libera la mesa: %v", tb.State)
	}
}

func TestCheckout_Guards(t *testing.T) {
	svcs, _ := newServices(t)
	o := servedOrder(t, svcs, 1)

	// Medio de pago desconocido
	if _, err := svcs.Registers.Checkout(ctx, "cashier-1", o.ID, "cheque"); !errors.Is(err, services.ErrInvalidMethod) {
		t.Fatalf("medio inválido: %v", err)
	}
	// Sin caja abierta
	if _, err := svcs.Registers.Checkout(ctx, "cashier-1", o.ID, "cash"); !errors.Is(err, services.ErrNoOpenRegister) {
		t.Fatalf("sin caja: %v", err)
	}

	// Orden no servida
	if _, err := svcs.Registers.Open(ctx, "cashier-1", 0); err != nil {
		t.Fatalf("abrir caja: %v", err)
	}
	_, _ = svcs.Registers.Checkout(ctx, "cashier-1", o.ID, "cash") // cierra o
	notServed, _ := svcs.Orders.Open(ctx, "t-1", "w-1", []services.ItemInput{{ProductID: "p-1", Quantity: 1}})
	if _, err := svcs.Registers.Checkout(ctx, "cashier-1", notServed.ID, "cash"); !errors.Is(err, services.ErrOrderNotPayable) {
		t.Fatalf("orden abierta no se cobra: %v", err)
	}
}

// El esperado al cierre es fondo + cobros en efectivo; la tarjeta no suma.
func TestCloseRegister_ExpectedMath(t *testing.T) {
	svcs, _ := newServices(t)

	reg, err := svcs.Registers.Open(ctx, "cashier-1", 100000)
	if err != nil {
		t.Fatalf("abrir caja: %v", err)
	}

	cash := servedOrder(t, svcs, 2) // 500000 en efectivo
	if _, err := svcs.Registers.Checkout(ctx, "cashier-1", cash.ID, "cash"); err != nil {
		t.Fatalf("cobro efectivo: %v", err)
	}
	card := servedOrder(t, svcs, 1) // 250000 con tarjeta
	if _, err := svcs.Registers.Checkout(ctx, "cashier-1", card.ID, "card"); err != nil {
		t.Fatalf("cobro tarjeta: %v", err)
	}

	closed, err := svcs.Registers.Close(ctx, reg.ID, 600000)
	if err != nil {
		t.Fatalf("cerrar: %v", err)
	}
	if closed.ExpectedCents == nil || *closed.ExpectedCents != 600000 {
		t.Fatalf("esperado = fondo + efectivo: %+v", closed.ExpectedCents)
	}
	if closed.CountedCents == nil || *closed.CountedCents != 600000 {
		t.Fatalf("contado: %+v", closed.CountedCents)
	}
	if closed.ClosedAt == nil {
		t.Fatal("ClosedAt seteado")
	}

	// Doble cierre
	if _, err := svcs.Registers.Close(ctx, reg.ID, 0); !errors.Is(err, services.ErrRegisterClosed) {
		t.Fatalf("cerrar dos veces: %v", err)
	}
}

// El cobro libera la mesa y esa liberación debe verse en la próxima lista,
// no cuando venza el TTL del cache.
func TestCheckout_InvalidatesTablesCache(t *testing.T) {
	svcs, _ := newCachedServices(t)
	o := servedOrder(t, svcs, 1)
	if _, err := svcs.Registers.Open(ctx, "cashier-1", 0); err != nil {
		t.Fatalf("abrir caja: %v", err)
	}

	// Calentar el cache con la mesa ocupada
	tables, err := svcs.Floor.ListTables(ctx, "sec-1")
	if err != nil || len(tables) != 1 || tables[0].State != domain.TableOccupied {
		t.Fatalf("lista previa al cobro: %+v %v", tables, err)
	}

	if _, err := svcs.Registers.Checkout(ctx, "cashier-1", o.ID, "cash"); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	tables, err = svcs.Floor.ListTables(ctx, "sec-1")
	if err != nil || len(tables) != 1 {
		t.Fatalf("lista posterior al cobro: %+v %v", tables, err)
	}
	if tables[0].State != domain.TableFree {
		t.Fatalf("el cobro debe invalidar la lista de mesas: %v", tables[0].State)
	}
}

func TestOpenRegister_SecondOpenConflicts(t *testing.T) {
	svcs, _ := newServices(t)
	if _, err := svcs.Registers.Open(ctx, "cashier-1", 0); err != nil {
		t.Fatalf("primera: %v", err)
	}
	if _, err := svcs.Registers.Open(ctx, "cashier-1", 0); !errors.Is(err, core.ErrRegisterOpen) {
		t.Fatalf("segunda: %v", err)
	}
}
