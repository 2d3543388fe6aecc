package pg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dropDatabas3/comanda/internal/store/core"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, core.ErrNotFound},
		{"unique", pgError("23505", "staff_email_key"), core.ErrConflict},
		{"fk", pgError("23503", "subcategory_category_id_fkey"), core.ErrInUse},
	}
	for _, tc := range cases {
		if got := mapErr(tc.in); !errors.Is(got, tc.want) {
			t.Fatalf("%s: %v", tc.name, got)
		}
	}

	// Errores ajenos pasan tal cual
	plain := fmt.Errorf("se cayó la red")
	if got := mapErr(plain); got != plain {
		t.Fatalf("error desconocido: %v", got)
	}
	if mapErr(nil) != nil {
		t.Fatal("nil se preserva")
	}
}

// En un INSERT la FK rota significa padre inexistente, no registro en uso.
func TestMapInsertErr_ForeignKey(t *testing.T) {
	got := mapInsertErr(pgError("23503", "restaurant_order_table_id_fkey"))
	if !errors.Is(got, core.ErrNotFound) {
		t.Fatalf("fk en insert: %v", got)
	}
}

// Los invariantes de concurrencia viven en índices únicos parciales: el 23505
// sobre ESA constraint se traduce al sentinela del invariante, cualquier otra
// sigue siendo un conflicto genérico.
func TestUniqueViolation_MatchesConstraint(t *testing.T) {
	err := pgError("23505", "idx_register_cashier_open")
	if !uniqueViolation(err, "idx_register_cashier_open") {
		t.Fatal("debe reconocer la constraint del invariante")
	}
	if uniqueViolation(err, "idx_order_table_open") {
		t.Fatal("otra constraint no debe matchear")
	}
	if uniqueViolation(pgError("23503", "idx_register_cashier_open"), "idx_register_cashier_open") {
		t.Fatal("un código distinto de 23505 no es violación de unicidad")
	}
	if uniqueViolation(errors.New("cualquier cosa"), "idx_register_cashier_open") {
		t.Fatal("errores no-pg no matchean")
	}
}
