// Package migrations embebe el esquema PostgreSQL del servicio y lo aplica
// en orden. Lleva el registro en schema_migrations: re-aplicar es idempotente.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var FS embed.FS

// Apply corre las migraciones pendientes en orden lexicográfico.
// Devuelve cuántas aplicó.
func Apply(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	const track = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := pool.Exec(ctx, track); err != nil {
		return 0, fmt.Errorf("migrations: creando schema_migrations: %w", err)
	}

	entries, err := FS.ReadDir(".")
	if err != nil {
		return 0, fmt.Errorf("migrations: leyendo embed: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		done, err := isApplied(ctx, pool, name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}
		if err := applyOne(ctx, pool, name); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func isApplied(ctx context.Context, pool *pgxpool.Pool, name string) (bool, error) {
	var n int
	err := pool.QueryRow(ctx, `SELECT count(*) FROM schema_migrations WHERE name = $1`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("migrations: consultando %s: %w", name, err)
	}
	return n > 0, nil
}

// applyOne corre un archivo completo dentro de una TX junto con su registro.
func applyOne(ctx context.Context, pool *pgxpool.Pool, name string) error {
	sql, err := FS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("migrations: leyendo %s: %w", name, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("migrations: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("migrations: aplicando %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("migrations: registrando %s: %w", name, err)
	}
	return tx.Commit(ctx)
}
