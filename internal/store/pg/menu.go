package pg

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

// =================================================================================
// CATEGORÍAS
// =================================================================================

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const query = `
		SELECT id, title, COALESCE(image_path, ''), created_at, updated_at
		FROM category ORDER BY created_at
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pg: list categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.ImagePath, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
		SELECT id, title, COALESCE(image_path, ''), created_at, updated_at
		FROM category WHERE id = $1
	`
	var c domain.Category
	err := s.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Title, &c.ImagePath, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	const query = `
		INSERT INTO category (id, title, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.pool.Exec(ctx, query, c.ID, c.Title, nullIfEmpty(c.ImagePath), c.CreatedAt, c.UpdatedAt)
	return mapInsertErr(err)
}

func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	const query = `UPDATE category SET title = $2, image_path = $3, updated_at = $4 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, c.ID, c.Title, nullIfEmpty(c.ImagePath), c.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// =================================================================================
// SUBCATEGORÍAS
// =================================================================================

func (s *Store) ListSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	query := `
		SELECT id, category_id, title, COALESCE(image_path, ''), created_at, updated_at
		FROM subcategory
	`
	var args []any
	if categoryID != "" {
		query += ` WHERE category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list subcategories: %w", err)
	}
	defer rows.Close()

	var out []domain.Subcategory
	for rows.Next() {
		var sc domain.Subcategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Title, &sc.ImagePath, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan subcategory: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *Store) GetSubcategory(ctx context.Context, id string) (*domain.Subcategory, error) {
	const query = `
		SELECT id, category_id, title, COALESCE(image_path, ''), created_at, updated_at
		FROM subcategory WHERE id = $1
	`
	var sc domain.Subcategory
	err := s.pool.QueryRow(ctx, query, id).Scan(&sc.ID, &sc.CategoryID, &sc.Title, &sc.ImagePath, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &sc, nil
}

func (s *Store) CreateSubcategory(ctx context.Context, sc *domain.Subcategory) error {
	const query = `
		INSERT INTO subcategory (id, category_id, title, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query, sc.ID, sc.CategoryID, sc.Title, nullIfEmpty(sc.ImagePath), sc.CreatedAt, sc.UpdatedAt)
	return mapInsertErr(err)
}

func (s *Store) UpdateSubcategory(ctx context.Context, sc *domain.Subcategory) error {
	const query = `UPDATE subcategory SET category_id = $2, title = $3, image_path = $4, updated_at = $5 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, sc.ID, sc.CategoryID, sc.Title, nullIfEmpty(sc.ImagePath), sc.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSubcategory(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM subcategory WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// =================================================================================
// INGREDIENTES
// =================================================================================

func (s *Store) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	const query = `
		SELECT id, title, unit, COALESCE(image_path, ''), created_at, updated_at
		FROM ingredient ORDER BY created_at
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pg: list ingredients: %w", err)
	}
	defer rows.Close()

	var out []domain.Ingredient
	for rows.Next() {
		var i domain.Ingredient
		if err := rows.Scan(&i.ID, &i.Title, &i.Unit, &i.ImagePath, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan ingredient: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (s *Store) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	const query = `
		SELECT id, title, unit, COALESCE(image_path, ''), created_at, updated_at
		FROM ingredient WHERE id = $1
	`
	var i domain.Ingredient
	err := s.pool.QueryRow(ctx, query, id).Scan(&i.ID, &i.Title, &i.Unit, &i.ImagePath, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &i, nil
}

func (s *Store) CreateIngredient(ctx context.Context, i *domain.Ingredient) error {
	const query = `
		INSERT INTO ingredient (id, title, unit, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query, i.ID, i.Title, i.Unit, nullIfEmpty(i.ImagePath), i.CreatedAt, i.UpdatedAt)
	return mapInsertErr(err)
}

func (s *Store) UpdateIngredient(ctx context.Context, i *domain.Ingredient) error {
	const query = `UPDATE ingredient SET title = $2, unit = $3, image_path = $4, updated_at = $5 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, i.ID, i.Title, i.Unit, nullIfEmpty(i.ImagePath), i.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteIngredient(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM ingredient WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// =================================================================================
// PRODUCTOS
// =================================================================================

func (s *Store) ListProducts(ctx context.Context, subcategoryID string) ([]domain.Product, error) {
	query := `
		SELECT id, subcategory_id, title, COALESCE(description, ''), price_cents,
		       COALESCE(image_path, ''), available, created_at, updated_at
		FROM product
	`
	var args []any
	if subcategoryID != "" {
		query += ` WHERE subcategory_id = $1`
		args = append(args, subcategoryID)
	}
	query += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.SubcategoryID, &p.Title, &p.Description, &p.PriceCents,
			&p.ImagePath, &p.Available, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
		SELECT id, subcategory_id, title, COALESCE(description, ''), price_cents,
		       COALESCE(image_path, ''), available, created_at, updated_at
		FROM product WHERE id = $1
	`
	var p domain.Product
	err := s.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.SubcategoryID, &p.Title, &p.Description,
		&p.PriceCents, &p.ImagePath, &p.Available, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	const query = `
		INSERT INTO product (id, subcategory_id, title, description, price_cents, image_path, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.pool.Exec(ctx, query,
		p.ID, p.SubcategoryID, p.Title, nullIfEmpty(p.Description), p.PriceCents,
		nullIfEmpty(p.ImagePath), p.Available, p.CreatedAt, p.UpdatedAt,
	)
	return mapInsertErr(err)
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	const query = `
		UPDATE product SET subcategory_id = $2, title = $3, description = $4, price_cents = $5,
			image_path = $6, available = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		p.ID, p.SubcategoryID, p.Title, nullIfEmpty(p.Description), p.PriceCents,
		nullIfEmpty(p.ImagePath), p.Available, p.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	// La receta se borra en cascada dentro de la misma TX
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_item WHERE recipe_id IN (SELECT id FROM recipe WHERE product_id = $1)`, id); err != nil {
		return mapErr(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe WHERE product_id = $1`, id); err != nil {
		return mapErr(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return tx.Commit(ctx)
}

// =================================================================================
// RECETAS
// =================================================================================

func (s *Store) GetRecipeByProduct(ctx context.Context, productID string) (*domain.Recipe, error) {
	const query = `SELECT id, product_id, created_at, updated_at FROM recipe WHERE product_id = $1`
	var r domain.Recipe
	err := s.pool.QueryRow(ctx, query, productID).Scan(&r.ID, &r.ProductID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}

	rows, err := s.pool.Query(ctx, `SELECT ingredient_id, quantity FROM recipe_item WHERE recipe_id = $1 ORDER BY ingredient_id`, r.ID)
	if err != nil {
		return nil, fmt.Errorf("pg: list recipe items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.RecipeItem
		if err := rows.Scan(&it.IngredientID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("pg: scan recipe item: %w", err)
		}
		r.Items = append(r.Items, it)
	}
	return &r, rows.Err()
}

func (s *Store) UpsertRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const upsert = `
		INSERT INTO recipe (id, product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	var recipeID string
	if err := tx.QueryRow(ctx, upsert, r.ID, r.ProductID, r.CreatedAt, r.UpdatedAt).Scan(&recipeID); err != nil {
		return mapInsertErr(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_item WHERE recipe_id = $1`, recipeID); err != nil {
		return mapErr(err)
	}
	for _, it := range r.Items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO recipe_item (recipe_id, ingredient_id, quantity) VALUES ($1, $2, $3)`,
			recipeID, it.IngredientID, it.Quantity,
		); err != nil {
			return mapInsertErr(err)
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) DeleteRecipe(ctx context.Context, productID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_item WHERE recipe_id IN (SELECT id FROM recipe WHERE product_id = $1)`, productID); err != nil {
		return mapErr(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM recipe WHERE product_id = $1`, productID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return tx.Commit(ctx)
}
