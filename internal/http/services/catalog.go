package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/comanda/internal/cache"
	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/metrics"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
	"github.com/dropDatabas3/comanda/internal/store/core"
	"github.com/dropDatabas3/comanda/internal/upload"
)

// CatalogService administra las entidades del menú: categorías,
// subcategorías, ingredientes, productos y recetas. Las listas pasan por el
// cache de colecciones; cada mutación invalida SOLO la colección afectada.
type CatalogService struct {
	repo  core.Repository
	cache cache.Cache
	ttl   time.Duration
	media upload.Config
}

// cachedList es el read-through genérico de una colección.
func cachedList[T any](ctx context.Context, c cache.Cache, ttl time.Duration, key, collection string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if c != nil {
		if raw, ok := c.Get(key); ok {
			var out []T
			if err := json.Unmarshal(raw, &out); err == nil {
				metrics.RecordCache(collection, "hit")
				return out, nil
			}
			// Entrada corrupta: se descarta y se re-fetchea
			c.Delete(key)
		}
	}
	metrics.RecordCache(collection, "miss")

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if c != nil {
		if raw, err := json.Marshal(out); err == nil {
			c.Set(key, raw, ttl)
		}
	}
	return out, nil
}

func (s *CatalogService) invalidate(ctx context.Context, key, collection string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(key)
	metrics.RecordCache(collection, "invalidate")
	logger.From(ctx).Debug("cache invalidado", logger.Key(key))
}

// ImageURL arma la URL pública de un path relativo de imagen.
func (s *CatalogService) ImageURL(relPath string) string { return s.media.URL(relPath) }

// replaceImage borra la imagen anterior si cambió.
func (s *CatalogService) replaceImage(oldPath, newPath string) {
	if oldPath != "" && oldPath != newPath {
		_ = s.media.Remove(oldPath)
	}
}

// =================================================================================
// CATEGORÍAS
// =================================================================================

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return cachedList(ctx, s.cache, s.ttl, cache.KeyCategories, "categories", s.repo.ListCategories)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, title, imagePath string) (*domain.Category, error) {
	now := time.Now().UTC()
	c := &domain.Category{
		ID:        uuid.NewString(),
		Title:     title,
		ImagePath: imagePath,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.KeyCategories, "categories")
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id, title, imagePath string) (*domain.Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	old := c.ImagePath
	c.Title = title
	c.ImagePath = imagePath
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.replaceImage(old, imagePath)
	s.invalidate(ctx, cache.KeyCategories, "categories")
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	if c.ImagePath != "" {
		_ = s.media.Remove(c.ImagePath)
	}
	s.invalidate(ctx, cache.KeyCategories, "categories")
	return nil
}

// =================================================================================
// SUBCATEGORÍAS
// =================================================================================

func (s *CatalogService) ListSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	key := cache.ScopedKey(cache.KeySubcategories, categoryID)
	return cachedList(ctx, s.cache, s.ttl, key, "subcategories", func(ctx context.Context) ([]domain.Subcategory, error) {
		return s.repo.ListSubcategories(ctx, categoryID)
	})
}

func (s *CatalogService) GetSubcategory(ctx context.Context, id string) (*domain.Subcategory, error) {
	return s.repo.GetSubcategory(ctx, id)
}

func (s *CatalogService) invalidateSubcategories(ctx context.Context, categoryID string) {
	// La lista global y la filtrada por categoría viven bajo claves distintas
	s.invalidate(ctx, cache.KeySubcategories, "subcategories")
	if categoryID != "" {
		s.invalidate(ctx, cache.ScopedKey(cache.KeySubcategories, categoryID), "subcategories")
	}
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, categoryID, title, imagePath string) (*domain.Subcategory, error) {
	now := time.Now().UTC()
	sc := &domain.Subcategory{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Title:      title,
		ImagePath:  imagePath,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateSubcategory(ctx, sc); err != nil {
		return nil, err
	}
	s.invalidateSubcategories(ctx, categoryID)
	return sc, nil
}

// UpdateSubcategory edita título, imagen y, si categoryID viene, la
// re-parenta: las listas filtradas de la categoría vieja y la nueva se
// invalidan las dos.
func (s *CatalogService) UpdateSubcategory(ctx context.Context, id, categoryID, title, imagePath string) (*domain.Subcategory, error) {
	sc, err := s.repo.GetSubcategory(ctx, id)
	if err != nil {
		return nil, err
	}
	old := sc.ImagePath
	oldCat := sc.CategoryID
	if categoryID != "" {
		sc.CategoryID = categoryID
	}
	sc.Title = title
	sc.ImagePath = imagePath
	sc.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateSubcategory(ctx, sc); err != nil {
		return nil, err
	}
	s.replaceImage(old, imagePath)
	s.invalidateSubcategories(ctx, oldCat)
	if sc.CategoryID != oldCat {
		s.invalidateSubcategories(ctx, sc.CategoryID)
	}
	return sc, nil
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, id string) error {
	sc, err := s.repo.GetSubcategory(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSubcategory(ctx, id); err != nil {
		return err
	}
	if sc.ImagePath != "" {
		_ = s.media.Remove(sc.ImagePath)
	}
	s.invalidateSubcategories(ctx, sc.CategoryID)
	return nil
}

// =================================================================================
// INGREDIENTES
// =================================================================================

func (s *CatalogService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return cachedList(ctx, s.cache, s.ttl, cache.KeyIngredients, "ingredients", s.repo.ListIngredients)
}

func (s *CatalogService) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

func (s *CatalogService) CreateIngredient(ctx context.Context, title, unit, imagePath string) (*domain.Ingredient, error) {
	now := time.Now().UTC()
	i := &domain.Ingredient{
		ID:        uuid.NewString(),
		Title:     title,
		Unit:      unit,
		ImagePath: imagePath,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateIngredient(ctx, i); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.KeyIngredients, "ingredients")
	return i, nil
}

func (s *CatalogService) UpdateIngredient(ctx context.Context, id, title, unit, imagePath string) (*domain.Ingredient, error) {
	i, err := s.repo.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	old := i.ImagePath
	i.Title = title
	i.Unit = unit
	i.ImagePath = imagePath
	i.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateIngredient(ctx, i); err != nil {
		return nil, err
	}
	s.replaceImage(old, imagePath)
	s.invalidate(ctx, cache.KeyIngredients, "ingredients")
	return i, nil
}

func (s *CatalogService) DeleteIngredient(ctx context.Context, id string) error {
	i, err := s.repo.GetIngredient(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteIngredient(ctx, id); err != nil {
		return err
	}
	if i.ImagePath != "" {
		_ = s.media.Remove(i.ImagePath)
	}
	s.invalidate(ctx, cache.KeyIngredients, "ingredients")
	return nil
}

// =================================================================================
// PRODUCTOS
// =================================================================================

func (s *CatalogService) ListProducts(ctx context.Context, subcategoryID string) ([]domain.Product, error) {
	key := cache.ScopedKey(cache.KeyProducts, subcategoryID)
	return cachedList(ctx, s.cache, s.ttl, key, "products", func(ctx context.Context) ([]domain.Product, error) {
		return s.repo.ListProducts(ctx, subcategoryID)
	})
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *CatalogService) invalidateProducts(ctx context.Context, subcategoryID string) {
	s.invalidate(ctx, cache.KeyProducts, "products")
	if subcategoryID != "" {
		s.invalidate(ctx, cache.ScopedKey(cache.KeyProducts, subcategoryID), "products")
	}
}

// ProductInput agrupa los campos de alta/edición de un producto.
type ProductInput struct {
	SubcategoryID string
	Title         string
	Description   string
	PriceCents    int64
	Available     bool
	ImagePath     string
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		ID:            uuid.NewString(),
		SubcategoryID: in.SubcategoryID,
		Title:         in.Title,
		Description:   in.Description,
		PriceCents:    in.PriceCents,
		ImagePath:     in.ImagePath,
		Available:     in.Available,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateProducts(ctx, in.SubcategoryID)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	old := p.ImagePath
	oldSub := p.SubcategoryID
	if in.SubcategoryID != "" {
		p.SubcategoryID = in.SubcategoryID
	}
	p.Title = in.Title
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.Available = in.Available
	p.ImagePath = in.ImagePath
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.replaceImage(old, in.ImagePath)
	s.invalidateProducts(ctx, oldSub)
	if p.SubcategoryID != oldSub {
		s.invalidateProducts(ctx, p.SubcategoryID)
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	if p.ImagePath != "" {
		_ = s.media.Remove(p.ImagePath)
	}
	s.invalidateProducts(ctx, p.SubcategoryID)
	return nil
}

// =================================================================================
// RECETAS
// =================================================================================

func (s *CatalogService) GetRecipe(ctx context.Context, productID string) (*domain.Recipe, error) {
	return s.repo.GetRecipeByProduct(ctx, productID)
}

// SetRecipe reemplaza la receta completa del producto.
func (s *CatalogService) SetRecipe(ctx context.Context, productID string, items []domain.RecipeItem) (*domain.Recipe, error) {
	now := time.Now().UTC()
	r := &domain.Recipe{
		ID:        uuid.NewString(),
		ProductID: productID,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.UpsertRecipe(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *CatalogService) DeleteRecipe(ctx context.Context, productID string) error {
	return s.repo.DeleteRecipe(ctx, productID)
}
