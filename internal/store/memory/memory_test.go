package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
	"github.com/dropDatabas3/comanda/internal/store/memory"
)

var ctx = context.Background()

func seedFloor(t *testing.T, s *memory.Store) (sectionID, tableID string) {
	t.Helper()
	sec := domain.Section{ID: "sec-1", Title: "Terraza", CreatedAt: time.Now()}
	if err := s.CreateSection(ctx, &sec); err != nil {
		t.Fatalf("create section: %v", err)
	}
	tb := domain.Table{ID: "t-1", SectionID: sec.ID, Number: 1, Seats: 4, State: domain.TableFree}
	if err := s.CreateTable(ctx, &tb); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return sec.ID, tb.ID
}

func TestCreateOrder_OneOpenPerTable(t *testing.T) {
	s := memory.New()
	_, tableID := seedFloor(t, s)

	first := domain.Order{ID: "o-1", TableID: tableID, WaiterID: "w-1", Status: domain.OrderOpen}
	if err := s.CreateOrder(ctx, &first); err != nil {
		t.Fatalf("primera orden: %v", err)
	}

	second := domain.Order{ID: "o-2", TableID: tableID, WaiterID: "w-1", Status: domain.OrderOpen}
	if err := s.CreateOrder(ctx, &second); !errors.Is(err, core.ErrTableOccupied) {
		t.Fatalf("mesa ocupada: %v", err)
	}

	// Cerrada la primera, la mesa vuelve a aceptar órdenes
	first.Status = domain.OrderClosed
	if err := s.UpdateOrder(ctx, &first); err != nil {
		t.Fatalf("cerrar orden: %v", err)
	}
	if err := s.CreateOrder(ctx, &second); err != nil {
		t.Fatalf("orden tras cierre: %v", err)
	}
}

func TestCreateOrder_TableMustExist(t *testing.T) {
	s := memory.New()
	o := domain.Order{ID: "o-1", TableID: "fantasma", Status: domain.OrderOpen}
	if err := s.CreateOrder(ctx, &o); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("mesa inexistente: %v", err)
	}
}

func TestOpenRegister_OnePerCashier(t *testing.T) {
	s := memory.New()

	first := domain.CashRegister{ID: "r-1", CashierID: "c-1", OpenedAt: time.Now(), FloatCents: 10000}
	if err := s.OpenRegister(ctx, &first); err != nil {
		t.Fatalf("primera caja: %v", err)
	}
	second := domain.CashRegister{ID: "r-2", CashierID: "c-1", OpenedAt: time.Now()}
	if err := s.OpenRegister(ctx, &second); !errors.Is(err, core.ErrRegisterOpen) {
		t.Fatalf("segunda caja del mismo cajero: %v", err)
	}

	// Otro cajero abre sin problema
	other := domain.CashRegister{ID: "r-3", CashierID: "c-2", OpenedAt: time.Now()}
	if err := s.OpenRegister(ctx, &other); err != nil {
		t.Fatalf("caja de otro cajero: %v", err)
	}

	// Cerrada la primera, el cajero puede abrir otra
	now := time.Now()
	first.ClosedAt = &now
	if err := s.CloseRegister(ctx, &first); err != nil {
		t.Fatalf("cerrar caja: %v", err)
	}
	if err := s.OpenRegister(ctx, &second); err != nil {
		t.Fatalf("reabrir: %v", err)
	}
}

func TestDeleteCategory_InUse(t *testing.T) {
	s := memory.New()
	cat := domain.Category{ID: "c-1", Title: "Bebidas"}
	_ = s.CreateCategory(ctx, &cat)
	sub := domain.Subcategory{ID: "sc-1", CategoryID: "c-1", Title: "Gaseosas"}
	if err := s.CreateSubcategory(ctx, &sub); err != nil {
		t.Fatalf("create sub: %v", err)
	}

	if err := s.DeleteCategory(ctx, "c-1"); !errors.Is(err, core.ErrInUse) {
		t.Fatalf("categoría referenciada: %v", err)
	}
	if err := s.DeleteSubcategory(ctx, "sc-1"); err != nil {
		t.Fatalf("delete sub: %v", err)
	}
	if err := s.DeleteCategory(ctx, "c-1"); err != nil {
		t.Fatalf("ya sin referencias: %v", err)
	}
}

func TestDeleteIngredient_InUseByRecipe(t *testing.T) {
	s := memory.New()
	_ = s.CreateCategory(ctx, &domain.Category{ID: "c-1", Title: "Comidas"})
	_ = s.CreateSubcategory(ctx, &domain.Subcategory{ID: "sc-1", CategoryID: "c-1", Title: "Minutas"})
	_ = s.CreateIngredient(ctx, &domain.Ingredient{ID: "i-1", Title: "Harina", Unit: "g"})
	_ = s.CreateProduct(ctx, &domain.Product{ID: "p-1", SubcategoryID: "sc-1", Title: "Pizza", PriceCents: 500000})
	err := s.UpsertRecipe(ctx, &domain.Recipe{
		ID: "r-1", ProductID: "p-1",
		Items: []domain.RecipeItem{{IngredientID: "i-1", Quantity: 300}},
	})
	if err != nil {
		t.Fatalf("upsert recipe: %v", err)
	}

	if err := s.DeleteIngredient(ctx, "i-1"); !errors.Is(err, core.ErrInUse) {
		t.Fatalf("ingrediente en receta: %v", err)
	}
	if err := s.DeleteRecipe(ctx, "p-1"); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}
	if err := s.DeleteIngredient(ctx, "i-1"); err != nil {
		t.Fatalf("ya sin receta: %v", err)
	}
}

func TestCreateStaff_DuplicateEmail(t *testing.T) {
	s := memory.New()
	a := domain.Staff{ID: "s-1", Email: "ana@resto.test", Role: domain.RoleAdmin}
	if err := s.CreateStaff(ctx, &a); err != nil {
		t.Fatalf("alta: %v", err)
	}
	b := domain.Staff{ID: "s-2", Email: "ana@resto.test", Role: domain.RoleWaiter}
	if err := s.CreateStaff(ctx, &b); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("email duplicado: %v", err)
	}
}

func TestCreateTable_DuplicateNumberInSection(t *testing.T) {
	s := memory.New()
	sectionID, _ := seedFloor(t, s)

	dup := domain.Table{ID: "t-2", SectionID: sectionID, Number: 1, Seats: 2}
	if err := s.CreateTable(ctx, &dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("número repetido en la sección: %v", err)
	}

	// Mismo número en otra sección está permitido
	_ = s.CreateSection(ctx, &domain.Section{ID: "sec-2", Title: "Interior"})
	ok := domain.Table{ID: "t-3", SectionID: "sec-2", Number: 1, Seats: 2}
	if err := s.CreateTable(ctx, &ok); err != nil {
		t.Fatalf("mismo número, otra sección: %v", err)
	}
}

func TestGetOrder_CopiesItems(t *testing.T) {
	s := memory.New()
	_, tableID := seedFloor(t, s)
	o := domain.Order{
		ID: "o-1", TableID: tableID, Status: domain.OrderOpen,
		Items: []domain.OrderItem{{ID: "it-1", ProductID: "p-1", Quantity: 1, UnitPriceCents: 100}},
	}
	_ = s.CreateOrder(ctx, &o)

	got, err := s.GetOrder(ctx, "o-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Items[0].Quantity = 99

	again, _ := s.GetOrder(ctx, "o-1")
	if again.Items[0].Quantity != 1 {
		t.Fatal("mutar la copia no debe tocar el store")
	}
}

func TestCreatePayment_Atomic(t *testing.T) {
	s := memory.New()
	_, tableID := seedFloor(t, s)
	order := domain.Order{ID: "o-1", TableID: tableID, Status: domain.OrderServed}
	_ = s.CreateOrder(ctx, &order)
	reg := domain.CashRegister{ID: "r-1", CashierID: "c-1", OpenedAt: time.Now()}
	_ = s.OpenRegister(ctx, &reg)

	// Caja inexistente: ni el pago ni la orden se tocan
	p := domain.Payment{ID: "pay-1", OrderID: "o-1", RegisterID: "fantasma", Method: domain.PayCash}
	closed := order
	closed.Status = domain.OrderClosed
	if err := s.CreatePayment(ctx, &p, &closed); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("caja inexistente: %v", err)
	}
	got, _ := s.GetOrder(ctx, "o-1")
	if got.Status != domain.OrderServed {
		t.Fatalf("la orden no debe cambiar en un pago fallido: %v", got.Status)
	}

	// Pago válido: orden cerrada y pago listado
	p.RegisterID = "r-1"
	if err := s.CreatePayment(ctx, &p, &closed); err != nil {
		t.Fatalf("pago: %v", err)
	}
	got, _ = s.GetOrder(ctx, "o-1")
	if got.Status != domain.OrderClosed {
		t.Fatalf("orden cerrada tras el pago: %v", got.Status)
	}
	pays, _ := s.ListPaymentsByRegister(ctx, "r-1")
	if len(pays) != 1 || pays[0].ID != "pay-1" {
		t.Fatalf("pagos de la caja: %+v", pays)
	}
}

func TestListProducts_FilterBySubcategory(t *testing.T) {
	s := memory.New()
	_ = s.CreateCategory(ctx, &domain.Category{ID: "c-1"})
	_ = s.CreateSubcategory(ctx, &domain.Subcategory{ID: "sc-1", CategoryID: "c-1"})
	_ = s.CreateSubcategory(ctx, &domain.Subcategory{ID: "sc-2", CategoryID: "c-1"})
	_ = s.CreateProduct(ctx, &domain.Product{ID: "p-1", SubcategoryID: "sc-1", CreatedAt: time.Unix(1, 0)})
	_ = s.CreateProduct(ctx, &domain.Product{ID: "p-2", SubcategoryID: "sc-2", CreatedAt: time.Unix(2, 0)})

	all, _ := s.ListProducts(ctx, "")
	if len(all) != 2 {
		t.Fatalf("sin filtro: %d", len(all))
	}
	scoped, _ := s.ListProducts(ctx, "sc-2")
	if len(scoped) != 1 || scoped[0].ID != "p-2" {
		t.Fatalf("con filtro: %+v", scoped)
	}
}
