package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

const registerCols = `id, cashier_id, opened_at, closed_at, float_cents, counted_cents, expected_cents`

func scanRegister(row pgx.Row) (*domain.CashRegister, error) {
	var r domain.CashRegister
	err := row.Scan(&r.ID, &r.CashierID, &r.OpenedAt, &r.ClosedAt, &r.FloatCents, &r.CountedCents, &r.ExpectedCents)
	if err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (s *Store) GetOpenRegisterByCashier(ctx context.Context, cashierID string) (*domain.CashRegister, error) {
	query := `SELECT ` + registerCols + ` FROM cash_register WHERE cashier_id = $1 AND closed_at IS NULL LIMIT 1`
	return scanRegister(s.pool.QueryRow(ctx, query, cashierID))
}

func (s *Store) GetRegister(ctx context.Context, id string) (*domain.CashRegister, error) {
	query := `SELECT ` + registerCols + ` FROM cash_register WHERE id = $1`
	return scanRegister(s.pool.QueryRow(ctx, query, id))
}

func (s *Store) ListRegisters(ctx context.Context) ([]domain.CashRegister, error) {
	query := `SELECT ` + registerCols + ` FROM cash_register ORDER BY opened_at`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pg: list registers: %w", err)
	}
	defer rows.Close()

	var out []domain.CashRegister
	for rows.Next() {
		r, err := scanRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan register: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// OpenRegister inserta el turno; el índice único parcial sobre
// (cashier_id) WHERE closed_at IS NULL es quien garantiza "una caja abierta
// por cajero", incluso con aperturas concurrentes.
func (s *Store) OpenRegister(ctx context.Context, r *domain.CashRegister) error {
	const insert = `
		INSERT INTO cash_register (id, cashier_id, opened_at, float_cents)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.pool.Exec(ctx, insert, r.ID, r.CashierID, r.OpenedAt, r.FloatCents); err != nil {
		if uniqueViolation(err, "idx_register_cashier_open") {
			return core.ErrRegisterOpen
		}
		return mapInsertErr(err)
	}
	return nil
}

func (s *Store) CloseRegister(ctx context.Context, r *domain.CashRegister) error {
	const query = `
		UPDATE cash_register SET closed_at = $2, counted_cents = $3, expected_cents = $4 WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query, r.ID, r.ClosedAt, r.CountedCents, r.ExpectedCents)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// CreatePayment registra el cobro y cierra la orden en una misma TX:
// o quedan ambos o ninguno.
func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment, order *domain.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insert = `
		INSERT INTO payment (id, order_id, register_id, method, total_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, insert, p.ID, p.OrderID, p.RegisterID, p.Method, p.TotalCents, p.CreatedAt); err != nil {
		return mapInsertErr(err)
	}

	const update = `
		UPDATE restaurant_order SET status = $2, updated_at = $3, closed_at = $4 WHERE id = $1
	`
	tag, err := tx.Exec(ctx, update, order.ID, order.Status, order.UpdatedAt, order.ClosedAt)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) ListPaymentsByRegister(ctx context.Context, registerID string) ([]domain.Payment, error) {
	const query = `
		SELECT id, order_id, register_id, method, total_cents, created_at
		FROM payment WHERE register_id = $1 ORDER BY created_at
	`
	rows, err := s.pool.Query(ctx, query, registerID)
	if err != nil {
		return nil, fmt.Errorf("pg: list payments: %w", err)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.RegisterID, &p.Method, &p.TotalCents, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
