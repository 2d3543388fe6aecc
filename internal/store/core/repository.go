package core

import (
	"context"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// Repository es el contrato de persistencia del servicio.
// Implementaciones: store/pg (pgxpool) y store/memory (tests / demo).
type Repository interface {
	Ping(ctx context.Context) error
	Close()

	// ------- Staff -------
	GetStaffByEmail(ctx context.Context, email string) (*domain.Staff, error)
	GetStaff(ctx context.Context, id string) (*domain.Staff, error)
	ListStaff(ctx context.Context) ([]domain.Staff, error)
	CreateStaff(ctx context.Context, s *domain.Staff) error
	UpdateStaff(ctx context.Context, s *domain.Staff) error
	DeleteStaff(ctx context.Context, id string) error

	// ------- Menú -------
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error)
	GetSubcategory(ctx context.Context, id string) (*domain.Subcategory, error)
	CreateSubcategory(ctx context.Context, s *domain.Subcategory) error
	UpdateSubcategory(ctx context.Context, s *domain.Subcategory) error
	DeleteSubcategory(ctx context.Context, id string) error

	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	CreateIngredient(ctx context.Context, i *domain.Ingredient) error
	UpdateIngredient(ctx context.Context, i *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, id string) error

	ListProducts(ctx context.Context, subcategoryID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	GetRecipeByProduct(ctx context.Context, productID string) (*domain.Recipe, error)
	UpsertRecipe(ctx context.Context, r *domain.Recipe) error
	DeleteRecipe(ctx context.Context, productID string) error

	// ------- Inventario -------
	ListBatches(ctx context.Context, ingredientID string) ([]domain.InventoryBatch, error)
	CreateBatch(ctx context.Context, b *domain.InventoryBatch) error
	DeleteBatch(ctx context.Context, id string) error

	// ------- Salón -------
	ListSections(ctx context.Context) ([]domain.Section, error)
	CreateSection(ctx context.Context, s *domain.Section) error
	DeleteSection(ctx context.Context, id string) error

	ListTables(ctx context.Context, sectionID string) ([]domain.Table, error)
	GetTable(ctx context.Context, id string) (*domain.Table, error)
	CreateTable(ctx context.Context, t *domain.Table) error
	UpdateTable(ctx context.Context, t *domain.Table) error
	DeleteTable(ctx context.Context, id string) error

	// ------- Órdenes -------
	ListOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	GetOpenOrderByTable(ctx context.Context, tableID string) (*domain.Order, error)
	CreateOrder(ctx context.Context, o *domain.Order) error
	UpdateOrder(ctx context.Context, o *domain.Order) error

	// ------- Caja -------
	GetOpenRegisterByCashier(ctx context.Context, cashierID string) (*domain.CashRegister, error)
	GetRegister(ctx context.Context, id string) (*domain.CashRegister, error)
	ListRegisters(ctx context.Context) ([]domain.CashRegister, error)
	OpenRegister(ctx context.Context, r *domain.CashRegister) error
	CloseRegister(ctx context.Context, r *domain.CashRegister) error

	// CreatePayment registra el pago y cierra la orden en una sola transacción.
	CreatePayment(ctx context.Context, p *domain.Payment, order *domain.Order) error
	ListPaymentsByRegister(ctx context.Context, registerID string) ([]domain.Payment, error)
}
