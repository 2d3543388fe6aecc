// Package pg implementa core.Repository sobre PostgreSQL.
// Usa pgxpool directamente y mapea errores del driver a los sentinelas de core.
package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/comanda/internal/store/core"
)

type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Store es la conexión activa a PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Connect abre el pool y verifica la conexión.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
func (s *Store) Close()                         { s.pool.Close() }

// Pool expone el pool para migraciones.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// nullIfEmpty devuelve nil para strings vacíos (columnas opcionales).
func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// mapErr traduce errores del driver a los sentinelas de core.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return core.ErrConflict
		case "23503": // foreign_key_violation
			return core.ErrInUse
		}
	}
	return err
}

// mapInsertErr es mapErr para INSERTs: una FK rota ahí significa que el
// padre referenciado no existe, no que el registro esté en uso.
func mapInsertErr(err error) error {
	err = mapErr(err)
	if errors.Is(err, core.ErrInUse) {
		return core.ErrNotFound
	}
	return err
}

// uniqueViolation reporta si err es un 23505 sobre la constraint dada.
// Los índices únicos parciales son los que sostienen los invariantes de
// concurrencia (una caja por cajero, una orden activa por mesa).
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
