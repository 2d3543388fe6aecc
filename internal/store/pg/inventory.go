package pg

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

func (s *Store) ListBatches(ctx context.Context, ingredientID string) ([]domain.InventoryBatch, error) {
	query := `
		SELECT id, ingredient_id, quantity, unit_cost_cents, expires_at, created_at
		FROM inventory_batch
	`
	var args []any
	if ingredientID != "" {
		query += ` WHERE ingredient_id = $1`
		args = append(args, ingredientID)
	}
	query += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list batches: %w", err)
	}
	defer rows.Close()

	var out []domain.InventoryBatch
	for rows.Next() {
		var b domain.InventoryBatch
		if err := rows.Scan(&b.ID, &b.IngredientID, &b.Quantity, &b.UnitCostCents, &b.ExpiresAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) CreateBatch(ctx context.Context, b *domain.InventoryBatch) error {
	const query = `
		INSERT INTO inventory_batch (id, ingredient_id, quantity, unit_cost_cents, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query, b.ID, b.IngredientID, b.Quantity, b.UnitCostCents, b.ExpiresAt, b.CreatedAt)
	return mapInsertErr(err)
}

func (s *Store) DeleteBatch(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM inventory_batch WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
