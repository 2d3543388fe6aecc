package rate_test

import (
	"testing"
	"time"

	cachemem "github.com/dropDatabas3/comanda/internal/cache/memory"
	"github.com/dropDatabas3/comanda/internal/rate"
)

func TestAllow_WithinLimit(t *testing.T) {
	l := rate.NewLimiter(cachemem.New(time.Minute), 3, time.Minute, "rate:test")

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("hit %d dentro del límite debe pasar", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("el cuarto hit excede el límite")
	}
	// Otra clave tiene su propio contador
	if !l.Allow("5.6.7.8") {
		t.Fatal("otra IP no comparte ventana")
	}
}

func TestAllow_NilLimiterFailsOpen(t *testing.T) {
	var l *rate.Limiter
	if !l.Allow("cualquiera") {
		t.Fatal("sin limitador configurado todo pasa")
	}
}

func TestAllow_NoCacheFailsOpen(t *testing.T) {
	l := rate.NewLimiter(nil, 1, time.Minute, "rate:test")
	for i := 0; i < 5; i++ {
		if !l.Allow("x") {
			t.Fatal("sin backend de cache el limitador no bloquea")
		}
	}
}
