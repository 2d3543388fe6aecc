package domain

import "time"

// =================================================================================
// IDENTIDAD
// =================================================================================

// Session es la prueba de identidad del cliente actual: empleado + credencial.
// Invariante: StaffID y Token están ambos presentes o ambos vacíos. Una sesión
// a medias se trata como deslogueada (ver IsAuthenticated).
type Session struct {
	StaffID     string
	Token       string
	Role        Role
	DisplayName string
}

// IsAuthenticated aplica el invariante de sesión: ambos campos o ninguno.
func (s Session) IsAuthenticated() bool {
	return s.StaffID != "" && s.Token != ""
}

// Staff es un empleado del restaurante.
type Staff struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	Role         Role       `json:"role"`
	PasswordHash string     `json:"-"`
	ImagePath    string     `json:"image_path,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DisabledAt   *time.Time `json:"disabled_at,omitempty"`
}

// =================================================================================
// MENÚ
// =================================================================================

type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Subcategory struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Title      string    `json:"title"`
	ImagePath  string    `json:"image_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Ingredient struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Unit      string    `json:"unit"` // g | ml | unit
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID            string    `json:"id"`
	SubcategoryID string    `json:"subcategory_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	PriceCents    int64     `json:"price_cents"`
	ImagePath     string    `json:"image_path,omitempty"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Recipe asocia un producto con sus ingredientes y cantidades.
type Recipe struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Items     []RecipeItem `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type RecipeItem struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// =================================================================================
// INVENTARIO
// =================================================================================

// InventoryBatch es un lote de un ingrediente comprado.
type InventoryBatch struct {
	ID            string     `json:"id"`
	IngredientID  string     `json:"ingredient_id"`
	Quantity      float64    `json:"quantity"`
	UnitCostCents int64      `json:"unit_cost_cents"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// =================================================================================
// SALÓN
// =================================================================================

type Section struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type TableState string

const (
	TableFree     TableState = "free"
	TableOccupied TableState = "occupied"
	TableReserved TableState = "reserved"
)

type Table struct {
	ID        string     `json:"id"`
	SectionID string     `json:"section_id"`
	Number    int        `json:"number"`
	Seats     int        `json:"seats"`
	State     TableState `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// =================================================================================
// ÓRDENES Y CAJA
// =================================================================================

type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderSubmitted OrderStatus = "submitted"
	OrderServed    OrderStatus = "served"
	OrderClosed    OrderStatus = "closed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID        string      `json:"id"`
	TableID   string      `json:"table_id"`
	WaiterID  string      `json:"waiter_id"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	ClosedAt  *time.Time  `json:"closed_at,omitempty"`
}

type OrderItem struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"` // precio congelado al agregar
	Note           string `json:"note,omitempty"`
}

// TotalCents suma los items de la orden.
func (o Order) TotalCents() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total
}

type PaymentMethod string

const (
	PayCash PaymentMethod = "cash"
	PayCard PaymentMethod = "card"
)

// CashRegister es un turno de caja de un cajero.
// Invariante: un cajero tiene a lo sumo una caja abierta a la vez.
type CashRegister struct {
	ID            string     `json:"id"`
	CashierID     string     `json:"cashier_id"`
	OpenedAt      time.Time  `json:"opened_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	FloatCents    int64      `json:"float_cents"`    // fondo inicial
	CountedCents  *int64     `json:"counted_cents,omitempty"`  // contado al cierre
	ExpectedCents *int64     `json:"expected_cents,omitempty"` // calculado al cierre
}

// Payment registra el cobro de una orden contra una caja.
type Payment struct {
	ID         string        `json:"id"`
	OrderID    string        `json:"order_id"`
	RegisterID string        `json:"register_id"`
	Method     PaymentMethod `json:"method"`
	TotalCents int64         `json:"total_cents"`
	CreatedAt  time.Time     `json:"created_at"`
}
