package resources

import (
	"context"
	"errors"
	"strconv"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/forms"
	"github.com/dropDatabas3/comanda/internal/http/dto"
	"github.com/dropDatabas3/comanda/internal/http/services"
	"github.com/dropDatabas3/comanda/internal/upload"
)

// ─── Bindings concretos ───
//
// Cada constructor arma el Binding de una entidad del menú sobre el
// CatalogService. Acá vive lo único que difiere entre recursos: campos,
// requisito de imagen y la adaptación valores → llamada tipada.

func titleField() forms.FieldRule {
	return forms.FieldRule{Name: "title", Required: true, MaxLen: 80}
}

func NewCategoriesController(svc *services.CatalogService, media upload.Config) *Controller {
	return NewController(Binding{
		Name:          "categories",
		RequiresImage: true,
		Fields:        []forms.FieldRule{titleField()},

		List: func(ctx context.Context, _ string) (any, error) {
			cats, err := svc.ListCategories(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]dto.ResourceResponse, 0, len(cats))
			for _, c := range cats {
				out = append(out, dto.ResourceResponse{
					ID: c.ID, Title: c.Title,
					ImageURL:  svc.ImageURL(c.ImagePath),
					CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
				})
			}
			return out, nil
		},
		Get: func(ctx context.Context, id string) (string, error) {
			c, err := svc.GetCategory(ctx, id)
			if err != nil {
				return "", err
			}
			return c.ImagePath, nil
		},
		Create: func(ctx context.Context, values map[string]string, imagePath, preview string) (any, error) {
			c, err := svc.CreateCategory(ctx, values["title"], imagePath)
			if err != nil {
				return nil, err
			}
			return categoryResponse(svc, *c, preview), nil
		},
		Update: func(ctx context.Context, id string, values map[string]string, imagePath, preview string) (any, error) {
			c, err := svc.UpdateCategory(ctx, id, values["title"], imagePath)
			if err != nil {
				return nil, err
			}
			return categoryResponse(svc, *c, preview), nil
		},
		Delete: svc.DeleteCategory,
	}, media)
}

func categoryResponse(svc *services.CatalogService, c domain.Category, preview string) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID: c.ID, Title: c.Title,
		ImageURL: svc.ImageURL(c.ImagePath), Preview: preview,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func NewSubcategoriesController(svc *services.CatalogService, media upload.Config) *Controller {
	return NewController(Binding{
		Name:          "subcategories",
		RequiresImage: true,
		FilterParam:   "category_id",
		Fields: []forms.FieldRule{
			titleField(),
			{Name: "category_id", Required: true},
		},

		List: func(ctx context.Context, categoryID string) (any, error) {
			subs, err := svc.ListSubcategories(ctx, categoryID)
			if err != nil {
				return nil, err
			}
			out := make([]dto.ResourceResponse, 0, len(subs))
			for _, sc := range subs {
				out = append(out, subcategoryResponse(svc, sc, ""))
			}
			return out, nil
		},
		Get: func(ctx context.Context, id string) (string, error) {
			sc, err := svc.GetSubcategory(ctx, id)
			if err != nil {
				return "", err
			}
			return sc.ImagePath, nil
		},
		Create: func(ctx context.Context, values map[string]string, imagePath, preview string) (any, error) {
			sc, err := svc.CreateSubcategory(ctx, values["category_id"], values["title"], imagePath)
			if err != nil {
				return nil, err
			}
			return subcategoryResponse(svc, *sc, preview), nil
		},
		Update: func(ctx context.Context, id string, values map[string]string, imagePath, preview string) (any, error) {
			sc, err := svc.UpdateSubcategory(ctx, id, values["category_id"], values["title"], imagePath)
			if err != nil {
				return nil, err
			}
			return subcategoryResponse(svc, *sc, preview), nil
		},
		Delete: svc.DeleteSubcategory,
	}, media)
}

func subcategoryResponse(svc *services.CatalogService, sc domain.Subcategory, preview string) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID: sc.ID, Title: sc.Title, ParentID: sc.CategoryID,
		ImageURL: svc.ImageURL(sc.ImagePath), Preview: preview,
		CreatedAt: sc.CreatedAt, UpdatedAt: sc.UpdatedAt,
	}
}

func validUnit(v string) error {
	switch v {
	case "g", "ml", "unit":
		return nil
	}
	return errors.New("unidad inválida (g, ml o unit)")
}

// Los ingredientes no exigen imagen: ejercitan la rama opcional del schema.
func NewIngredientsController(svc *services.CatalogService, media upload.Config) *Controller {
	return NewController(Binding{
		Name:          "ingredients",
		RequiresImage: false,
		Fields: []forms.FieldRule{
			titleField(),
			{Name: "unit", Required: true, Check: validUnit},
		},

		List: func(ctx context.Context, _ string) (any, error) {
			ings, err := svc.ListIngredients(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]dto.ResourceResponse, 0, len(ings))
			for _, i := range ings {
				out = append(out, ingredientResponse(svc, i, ""))
			}
			return out, nil
		},
		Get: func(ctx context.Context, id string) (string, error) {
			i, err := svc.GetIngredient(ctx, id)
			if err != nil {
				return "", err
			}
			return i.ImagePath, nil
		},
		Create: func(ctx context.Context, values map[string]string, imagePath, preview string) (any, error) {
			i, err := svc.CreateIngredient(ctx, values["title"], values["unit"], imagePath)
			if err != nil {
				return nil, err
			}
			return ingredientResponse(svc, *i, preview), nil
		},
		Update: func(ctx context.Context, id string, values map[string]string, imagePath, preview string) (any, error) {
			i, err := svc.UpdateIngredient(ctx, id, values["title"], values["unit"], imagePath)
			if err != nil {
				return nil, err
			}
			return ingredientResponse(svc, *i, preview), nil
		},
		Delete: svc.DeleteIngredient,
	}, media)
}

func ingredientResponse(svc *services.CatalogService, i domain.Ingredient, preview string) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID: i.ID, Title: i.Title, Unit: i.Unit,
		ImageURL: svc.ImageURL(i.ImagePath), Preview: preview,
		CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
	}
}

func NewProductsController(svc *services.CatalogService, media upload.Config) *Controller {
	return NewController(Binding{
		Name:          "products",
		RequiresImage: true,
		FilterParam:   "subcategory_id",
		Fields: []forms.FieldRule{
			titleField(),
			{Name: "subcategory_id", Required: true},
			{Name: "description", MaxLen: 500},
			{Name: "price_cents", Required: true, Numeric: true},
		},

		List: func(ctx context.Context, subcategoryID string) (any, error) {
			prods, err := svc.ListProducts(ctx, subcategoryID)
			if err != nil {
				return nil, err
			}
			out := make([]dto.ProductResponse, 0, len(prods))
			for _, p := range prods {
				out = append(out, dto.NewProductResponse(p, svc.ImageURL(p.ImagePath)))
			}
			return out, nil
		},
		Get: func(ctx context.Context, id string) (string, error) {
			p, err := svc.GetProduct(ctx, id)
			if err != nil {
				return "", err
			}
			return p.ImagePath, nil
		},
		Create: func(ctx context.Context, values map[string]string, imagePath, preview string) (any, error) {
			p, err := svc.CreateProduct(ctx, productInput(values, imagePath))
			if err != nil {
				return nil, err
			}
			return productResponse(svc, *p, preview), nil
		},
		Update: func(ctx context.Context, id string, values map[string]string, imagePath, preview string) (any, error) {
			p, err := svc.UpdateProduct(ctx, id, productInput(values, imagePath))
			if err != nil {
				return nil, err
			}
			return productResponse(svc, *p, preview), nil
		},
		Delete: svc.DeleteProduct,
	}, media)
}

func productInput(values map[string]string, imagePath string) services.ProductInput {
	// price_cents ya pasó la regla Numeric del schema
	price, _ := strconv.ParseInt(values["price_cents"], 10, 64)
	return services.ProductInput{
		SubcategoryID: values["subcategory_id"],
		Title:         values["title"],
		Description:   values["description"],
		PriceCents:    price,
		Available:     values["available"] != "false",
		ImagePath:     imagePath,
	}
}

func productResponse(svc *services.CatalogService, p domain.Product, preview string) dto.ProductResponse {
	out := dto.NewProductResponse(p, svc.ImageURL(p.ImagePath))
	out.Preview = preview
	return out
}
