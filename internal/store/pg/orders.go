package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

const orderCols = `id, table_id, waiter_id, status, created_at, updated_at, closed_at`

func (s *Store) ListOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	query := `SELECT ` + orderCols + ` FROM restaurant_order`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.TableID, &o.WaiterID, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.ClosedAt); err != nil {
			return nil, fmt.Errorf("pg: scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := s.listOrderItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderCols + ` FROM restaurant_order WHERE id = $1`
	return s.scanOrderWithItems(ctx, s.pool.QueryRow(ctx, query, id))
}

func (s *Store) GetOpenOrderByTable(ctx context.Context, tableID string) (*domain.Order, error) {
	query := `
		SELECT ` + orderCols + ` FROM restaurant_order
		WHERE table_id = $1 AND status NOT IN ('closed', 'cancelled')
		LIMIT 1
	`
	return s.scanOrderWithItems(ctx, s.pool.QueryRow(ctx, query, tableID))
}

func (s *Store) scanOrderWithItems(ctx context.Context, row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.TableID, &o.WaiterID, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.ClosedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	items, err := s.listOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *Store) listOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const query = `
		SELECT id, product_id, quantity, unit_price_cents, COALESCE(note, '')
		FROM order_item WHERE order_id = $1 ORDER BY position
	`
	rows, err := s.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("pg: list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPriceCents, &it.Note); err != nil {
			return nil, fmt.Errorf("pg: scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Una orden activa por mesa: lo sostiene el índice único parcial sobre
	// table_id, no un chequeo previo que pueda perder la carrera.
	const insert = `
		INSERT INTO restaurant_order (id, table_id, waiter_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, insert, o.ID, o.TableID, o.WaiterID, o.Status, o.CreatedAt, o.UpdatedAt); err != nil {
		if uniqueViolation(err, "idx_order_table_open") {
			return core.ErrTableOccupied
		}
		return mapInsertErr(err)
	}
	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) UpdateOrder(ctx context.Context, o *domain.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const update = `
		UPDATE restaurant_order SET status = $2, updated_at = $3, closed_at = $4 WHERE id = $1
	`
	tag, err := tx.Exec(ctx, update, o.ID, o.Status, o.UpdatedAt, o.ClosedAt)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}

	// Los items se reemplazan completos: la orden en memoria es la verdad
	if _, err := tx.Exec(ctx, `DELETE FROM order_item WHERE order_id = $1`, o.ID); err != nil {
		return mapErr(err)
	}
	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.OrderItem) error {
	const insert = `
		INSERT INTO order_item (id, order_id, product_id, quantity, unit_price_cents, note, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, it := range items {
		if _, err := tx.Exec(ctx, insert,
			it.ID, orderID, it.ProductID, it.Quantity, it.UnitPriceCents, nullIfEmpty(it.Note), i,
		); err != nil {
			return mapInsertErr(err)
		}
	}
	return nil
}
