package memory_test

import (
	"testing"
	"time"

	cachemem "github.com/dropDatabas3/comanda/internal/cache/memory"
)

func TestGetSetDelete(t *testing.T) {
	c := cachemem.New(time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("clave inexistente")
	}
	c.Set("k", []byte("v"), time.Minute)
	if got, ok := c.Get("k"); !ok || string(got) != "v" {
		t.Fatalf("get tras set: %q %v", got, ok)
	}
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("clave borrada")
	}
}

func TestIncr_Counts(t *testing.T) {
	c := cachemem.New(time.Minute)
	for want := int64(1); want <= 3; want++ {
		if n := c.Incr("hits", time.Minute); n != want {
			t.Fatalf("incr: %d, esperaba %d", n, want)
		}
	}
}

// La ventana del contador es fija: incrementar NO corre el vencimiento, así
// que pasado el TTL original el contador arranca de nuevo aunque haya habido
// hits en el medio.
func TestIncr_WindowDoesNotSlide(t *testing.T) {
	c := cachemem.New(time.Hour)
	const window = 120 * time.Millisecond

	if n := c.Incr("k", window); n != 1 {
		t.Fatalf("primer hit: %d", n)
	}
	time.Sleep(80 * time.Millisecond)
	if n := c.Incr("k", window); n != 2 {
		t.Fatalf("hit dentro de la ventana: %d", n)
	}
	// La ventana original (120ms) ya venció pese al hit de los 80ms
	time.Sleep(80 * time.Millisecond)
	if n := c.Incr("k", window); n != 1 {
		t.Fatalf("hit tras vencer la ventana: %d", n)
	}
}
