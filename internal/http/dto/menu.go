package dto

import (
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// ResourceResponse es la vista genérica de un recurso con imagen del menú
// (categorías, subcategorías, ingredientes). Preview se devuelve solo en la
// respuesta inmediata de un alta/edición con archivo nuevo.
type ResourceResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ParentID  string    `json:"parent_id,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Preview   string    `json:"preview,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductResponse es la vista de un producto del menú.
type ProductResponse struct {
	ID            string    `json:"id"`
	SubcategoryID string    `json:"subcategory_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	PriceCents    int64     `json:"price_cents"`
	ImageURL      string    `json:"image_url,omitempty"`
	Preview       string    `json:"preview,omitempty"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewProductResponse(p domain.Product, imageURL string) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SubcategoryID: p.SubcategoryID,
		Title:         p.Title,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		ImageURL:      imageURL,
		Available:     p.Available,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// RecipeRequest reemplaza la receta completa de un producto.
type RecipeRequest struct {
	Items []RecipeItemRequest `json:"items"`
}

type RecipeItemRequest struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// RecipeResponse es la vista de la receta de un producto.
type RecipeResponse struct {
	ProductID string              `json:"product_id"`
	Items     []RecipeItemRequest `json:"items"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewRecipeResponse(r domain.Recipe) RecipeResponse {
	out := RecipeResponse{ProductID: r.ProductID, UpdatedAt: r.UpdatedAt}
	for _, it := range r.Items {
		out.Items = append(out.Items, RecipeItemRequest{IngredientID: it.IngredientID, Quantity: it.Quantity})
	}
	return out
}
