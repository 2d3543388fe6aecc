// Package catalog expone las operaciones del menú que no entran en el
// controller genérico de recursos: las recetas de productos.
package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/http/dto"
	httperrors "github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/http/helpers"
	"github.com/dropDatabas3/comanda/internal/http/services"
)

type RecipesController struct {
	service *services.CatalogService
}

func NewRecipesController(service *services.CatalogService) *RecipesController {
	return &RecipesController{service: service}
}

// Get maneja GET /v1/products/{id}/recipe.
func (c *RecipesController) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	rec, err := c.service.GetRecipe(r.Context(), productID)
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewRecipeResponse(*rec))
}

// Put maneja PUT /v1/products/{id}/recipe: reemplaza la receta completa.
func (c *RecipesController) Put(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var req dto.RecipeRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	items := make([]domain.RecipeItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.IngredientID == "" || it.Quantity <= 0 {
			httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("cada ítem requiere ingrediente y cantidad positiva"))
			return
		}
		items = append(items, domain.RecipeItem{IngredientID: it.IngredientID, Quantity: it.Quantity})
	}

	rec, err := c.service.SetRecipe(r.Context(), productID, items)
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewRecipeResponse(*rec))
}

// Delete maneja DELETE /v1/products/{id}/recipe.
func (c *RecipesController) Delete(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if err := c.service.DeleteRecipe(r.Context(), productID); err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.NoContent(w)
}
