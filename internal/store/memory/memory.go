// Package memory implementa core.Repository en memoria.
// Se usa en tests y en modo demo (sin Postgres). Mismo contrato de errores
// sentinela que el adapter pg.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

type Store struct {
	mu sync.RWMutex

	staff         map[string]domain.Staff
	categories    map[string]domain.Category
	subcategories map[string]domain.Subcategory
	ingredients   map[string]domain.Ingredient
	products      map[string]domain.Product
	recipes       map[string]domain.Recipe // keyed por productID
	batches       map[string]domain.InventoryBatch
	sections      map[string]domain.Section
	tables        map[string]domain.Table
	orders        map[string]domain.Order
	registers     map[string]domain.CashRegister
	payments      map[string]domain.Payment
}

func New() *Store {
	return &Store{
		staff:         make(map[string]domain.Staff),
		categories:    make(map[string]domain.Category),
		subcategories: make(map[string]domain.Subcategory),
		ingredients:   make(map[string]domain.Ingredient),
		products:      make(map[string]domain.Product),
		recipes:       make(map[string]domain.Recipe),
		batches:       make(map[string]domain.InventoryBatch),
		sections:      make(map[string]domain.Section),
		tables:        make(map[string]domain.Table),
		orders:        make(map[string]domain.Order),
		registers:     make(map[string]domain.CashRegister),
		payments:      make(map[string]domain.Payment),
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

// =================================================================================
// STAFF
// =================================================================================

func (s *Store) GetStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.staff {
		if st.Email == email {
			cp := st
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.staff[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := st
	return &cp, nil
}

func (s *Store) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Staff, 0, len(s.staff))
	for _, st := range s.staff {
		out = append(out, st)
	}
	sortByCreated(out, func(v domain.Staff) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *Store) CreateStaff(ctx context.Context, st *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.staff {
		if existing.Email == st.Email {
			return core.ErrConflict
		}
	}
	s.staff[st.ID] = *st
	return nil
}

func (s *Store) UpdateStaff(ctx context.Context, st *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[st.ID]; !ok {
		return core.ErrNotFound
	}
	s.staff[st.ID] = *st
	return nil
}

func (s *Store) DeleteStaff(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.staff, id)
	return nil
}

// =================================================================================
// MENÚ
// =================================================================================

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sortByCreated(out, func(v domain.Category) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = *c
	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return core.ErrNotFound
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return core.ErrNotFound
	}
	for _, sub := range s.subcategories {
		if sub.CategoryID == id {
			return core.ErrInUse
		}
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) ListSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Subcategory
	for _, sc := range s.subcategories {
		if categoryID == "" || sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	sortByCreated(out, func(v domain.Subcategory) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *Store) GetSubcategory(ctx context.Context, id string) (*domain.Subcategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.subcategories[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := sc
	return &cp, nil
}

func (s *Store) CreateSubcategory(ctx context.Context, sc *domain.Subcategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[sc.CategoryID]; !ok {
		return core.ErrNotFound
	}
	s.subcategories[sc.ID] = *sc
	return nil
}

func (s *Store) UpdateSubcategory(ctx context.Context, sc *domain.Subcategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subcategories[sc.ID]; !ok {
		return core.ErrNotFound
	}
	s.subcategories[sc.ID] = *sc
	return nil
}

func (s *Store) DeleteSubcategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subcategories[id]; !ok {
		return core.ErrNotFound
	}
	for _, p := range s.products {
		if p.SubcategoryID == id {
			return core.ErrInUse
		}
	}
	delete(s.subcategories, id)
	return nil
}

func (s *Store) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ingredient, 0, len(s.ingredients))
	for _, i := range s.ingredients {
		out = append(out, i)
	}
	sortByCreated(out, func(v domain.Ingredient) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *Store) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.ingredients[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := i
	return &cp, nil
}

func (s *Store) CreateIngredient(ctx context.Context, i *domain.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients[i.ID] = *i
	return nil
}

func (s *Store) UpdateIngredient(ctx context.Context, i *domain.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ingredients[i.ID]; !ok {
		return core.ErrNotFound
	}
	s.ingredients[i.ID] = *i
	return nil
}

func (s *Store) DeleteIngredient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ingredients[id]; !ok {
		return core.ErrNotFound
	}
	for _, r := range s.recipes {
		for _, it := range r.Items {
			if it.IngredientID == id {
				return core.ErrInUse
			}
		}
	}
	delete(s.ingredients, id)
	return nil
}

func (s *Store) ListProducts(ctx context.Context, subcategoryID string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if subcategoryID == "" || p.SubcategoryID == subcategoryID {
			out = append(out, p)
		}
	}
	sortByCreated(out, func(v domain.Product) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subcategories[p.SubcategoryID]; !ok {
		return core.ErrNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return core.ErrNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.products, id)
	delete(s.recipes, id)
	return nil
}

func (s *Store) GetRecipeByProduct(ctx context.Context, productID string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[productID]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := r
	cp.Items = append([]domain.RecipeItem(nil), r.Items...)
	return &cp, nil
}

func (s *Store) UpsertRecipe(ctx context.Context, r *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[r.ProductID]; !ok {
		return core.ErrNotFound
	}
	cp := *r
	cp.Items = append([]domain.RecipeItem(nil), r.Items...)
	s.recipes[r.ProductID] = cp
	return nil
}

func (s *Store) DeleteRecipe(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[productID]; !ok {
		return core.ErrNotFound
	}
	delete(s.recipes, productID)
	return nil
}

// =================================================================================
// INVENTARIO
// =================================================================================

func (s *Store) ListBatches(ctx context.Context, ingredientID string) ([]domain.InventoryBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.InventoryBatch
	for _, b := range s.batches {
		if ingredientID == "" || b.IngredientID == ingredientID {
			out = append(out, b)
		}
	}
	sortByCreated(out, func(v domain.InventoryBatch) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *Store) CreateBatch(ctx context.Context, b *domain.InventoryBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ingredients[b.IngredientID]; !ok {
		return core.ErrNotFound
	}
	s.batches[b.ID] = *b
	return nil
}

func (s *Store) DeleteBatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batches[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.batches, id)
	return nil
}

// =================================================================================
// SALÓN
// =================================================================================

func (s *Store) ListSections(ctx context.Context) ([]domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Section, 0, len(s.sections))
	for _, sec := range s.sections {
		out = append(out, sec)
	}
	sortByCreated(out, func(v domain.Section) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *Store) CreateSection(ctx context.Context, sec *domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[sec.ID] = *sec
	return nil
}

func (s *Store) DeleteSection(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[id]; !ok {
		return core.ErrNotFound
	}
	for _, t := range s.tables {
		if t.SectionID == id {
			return core.ErrInUse
		}
	}
	delete(s.sections, id)
	return nil
}

func (s *Store) ListTables(ctx context.Context, sectionID string) ([]domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Table
	for _, t := range s.tables {
		if sectionID == "" || t.SectionID == sectionID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *Store) GetTable(ctx context.Context, id string) (*domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (s *Store) CreateTable(ctx context.Context, t *domain.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[t.SectionID]; !ok {
		return core.ErrNotFound
	}
	for _, existing := range s.tables {
		if existing.SectionID == t.SectionID && existing.Number == t.Number {
			return core.ErrConflict
		}
	}
	s.tables[t.ID] = *t
	return nil
}

func (s *Store) UpdateTable(ctx context.Context, t *domain.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[t.ID]; !ok {
		return core.ErrNotFound
	}
	s.tables[t.ID] = *t
	return nil
}

func (s *Store) DeleteTable(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.tables, id)
	return nil
}

// =================================================================================
// ÓRDENES
// =================================================================================

func (s *Store) ListOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Order
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, copyOrder(o))
		}
	}
	sortByCreated(out, func(v domain.Order) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := copyOrder(o)
	return &cp, nil
}

func (s *Store) GetOpenOrderByTable(ctx context.Context, tableID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.TableID == tableID && o.Status != domain.OrderClosed && o.Status != domain.OrderCancelled {
			cp := copyOrder(o)
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[o.TableID]; !ok {
		return core.ErrNotFound
	}
	for _, existing := range s.orders {
		if existing.TableID == o.TableID && existing.Status != domain.OrderClosed && existing.Status != domain.OrderCancelled {
			return core.ErrTableOccupied
		}
	}
	s.orders[o.ID] = copyOrder(*o)
	return nil
}

func (s *Store) UpdateOrder(ctx context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return core.ErrNotFound
	}
	s.orders[o.ID] = copyOrder(*o)
	return nil
}

// =================================================================================
// CAJA
// =================================================================================

func (s *Store) GetOpenRegisterByCashier(ctx context.Context, cashierID string) (*domain.CashRegister, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.registers {
		if r.CashierID == cashierID && r.ClosedAt == nil {
			cp := r
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) GetRegister(ctx context.Context, id string) (*domain.CashRegister, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.registers[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := r
	return &cp, nil
}

func (s *Store) ListRegisters(ctx context.Context) ([]domain.CashRegister, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CashRegister, 0, len(s.registers))
	for _, r := range s.registers {
		out = append(out, r)
	}
	sortByCreated(out, func(v domain.CashRegister) time.Time { return v.OpenedAt })
	return out, nil
}

func (s *Store) OpenRegister(ctx context.Context, r *domain.CashRegister) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.registers {
		if existing.CashierID == r.CashierID && existing.ClosedAt == nil {
			return core.ErrRegisterOpen
		}
	}
	s.registers[r.ID] = *r
	return nil
}

func (s *Store) CloseRegister(ctx context.Context, r *domain.CashRegister) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registers[r.ID]; !ok {
		return core.ErrNotFound
	}
	s.registers[r.ID] = *r
	return nil
}

func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; !ok {
		return core.ErrNotFound
	}
	if _, ok := s.registers[p.RegisterID]; !ok {
		return core.ErrNotFound
	}
	s.payments[p.ID] = *p
	s.orders[order.ID] = copyOrder(*order)
	return nil
}

func (s *Store) ListPaymentsByRegister(ctx context.Context, registerID string) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.RegisterID == registerID {
			out = append(out, p)
		}
	}
	sortByCreated(out, func(v domain.Payment) time.Time { return v.CreatedAt })
	return out, nil
}

// =================================================================================
// HELPERS
// =================================================================================

func copyOrder(o domain.Order) domain.Order {
	cp := o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return cp
}

func sortByCreated[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return at(items[i]).Before(at(items[j])) })
}
