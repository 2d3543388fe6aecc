package pg

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

const staffCols = `id, email, display_name, role, password_hash, COALESCE(image_path, ''), active, created_at, updated_at, disabled_at`

func scanStaff(row interface{ Scan(...any) error }) (*domain.Staff, error) {
	var st domain.Staff
	err := row.Scan(
		&st.ID, &st.Email, &st.DisplayName, &st.Role, &st.PasswordHash,
		&st.ImagePath, &st.Active, &st.CreatedAt, &st.UpdatedAt, &st.DisabledAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &st, nil
}

func (s *Store) GetStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	query := `SELECT ` + staffCols + ` FROM staff WHERE email = $1`
	return scanStaff(s.pool.QueryRow(ctx, query, email))
}

func (s *Store) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	query := `SELECT ` + staffCols + ` FROM staff WHERE id = $1`
	return scanStaff(s.pool.QueryRow(ctx, query, id))
}

func (s *Store) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	query := `SELECT ` + staffCols + ` FROM staff ORDER BY created_at`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pg: list staff: %w", err)
	}
	defer rows.Close()

	var out []domain.Staff
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan staff: %w", err)
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

func (s *Store) CreateStaff(ctx context.Context, st *domain.Staff) error {
	const query = `
		INSERT INTO staff (id, email, display_name, role, password_hash, image_path, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.pool.Exec(ctx, query,
		st.ID, st.Email, st.DisplayName, st.Role, st.PasswordHash,
		nullIfEmpty(st.ImagePath), st.Active, st.CreatedAt, st.UpdatedAt,
	)
	return mapInsertErr(err)
}

func (s *Store) UpdateStaff(ctx context.Context, st *domain.Staff) error {
	const query = `
		UPDATE staff SET email = $2, display_name = $3, role = $4, password_hash = $5,
			image_path = $6, active = $7, updated_at = $8, disabled_at = $9
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		st.ID, st.Email, st.DisplayName, st.Role, st.PasswordHash,
		nullIfEmpty(st.ImagePath), st.Active, st.UpdatedAt, st.DisabledAt,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteStaff(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
