// Package rate implementa un limitador de ventana fija sobre el cache
// (memoria o Redis, según despliegue). Se usa en login para frenar fuerza bruta.
package rate

import (
	"time"

	"github.com/dropDatabas3/comanda/internal/cache"
)

// Limiter cuenta hits por clave dentro de una ventana fija.
type Limiter struct {
	cache  cache.Cache
	limit  int64
	window time.Duration
	prefix string
}

func NewLimiter(c cache.Cache, limit int, window time.Duration, prefix string) *Limiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{cache: c, limit: int64(limit), window: window, prefix: prefix}
}

// Allow registra un hit y devuelve si la clave sigue dentro del límite.
func (l *Limiter) Allow(key string) bool {
	if l == nil || l.cache == nil {
		return true
	}
	n := l.cache.Incr(l.prefix+":"+key, l.window)
	// n==0 significa backend caído: fail-open, el login sigue protegido por argon2
	if n == 0 {
		return true
	}
	return n <= l.limit
}
