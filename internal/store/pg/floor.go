package pg

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

func (s *Store) ListSections(ctx context.Context) ([]domain.Section, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, title, created_at FROM section ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("pg: list sections: %w", err)
	}
	defer rows.Close()

	var out []domain.Section
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.ID, &sec.Title, &sec.CreatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan section: %w", err)
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *Store) CreateSection(ctx context.Context, sec *domain.Section) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO section (id, title, created_at) VALUES ($1, $2, $3)`,
		sec.ID, sec.Title, sec.CreatedAt,
	)
	return mapInsertErr(err)
}

func (s *Store) DeleteSection(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM section WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) ListTables(ctx context.Context, sectionID string) ([]domain.Table, error) {
	query := `
		SELECT id, section_id, number, seats, state, created_at, updated_at
		FROM dining_table
	`
	var args []any
	if sectionID != "" {
		query += ` WHERE section_id = $1`
		args = append(args, sectionID)
	}
	query += ` ORDER BY number`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list tables: %w", err)
	}
	defer rows.Close()

	var out []domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.SectionID, &t.Number, &t.Seats, &t.State, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan table: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTable(ctx context.Context, id string) (*domain.Table, error) {
	const query = `
		SELECT id, section_id, number, seats, state, created_at, updated_at
		FROM dining_table WHERE id = $1
	`
	var t domain.Table
	err := s.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.SectionID, &t.Number, &t.Seats, &t.State, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (s *Store) CreateTable(ctx context.Context, t *domain.Table) error {
	const query = `
		INSERT INTO dining_table (id, section_id, number, seats, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	// El índice único (section_id, number) dispara 23505 → ErrConflict
	_, err := s.pool.Exec(ctx, query, t.ID, t.SectionID, t.Number, t.Seats, t.State, t.CreatedAt, t.UpdatedAt)
	return mapInsertErr(err)
}

func (s *Store) UpdateTable(ctx context.Context, t *domain.Table) error {
	const query = `
		UPDATE dining_table SET section_id = $2, number = $3, seats = $4, state = $5, updated_at = $6
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query, t.ID, t.SectionID, t.Number, t.Seats, t.State, t.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTable(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM dining_table WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
