package cache

import "time"

// Cache es el contrato mínimo usado por el servicio: bytes con TTL.
// Implementaciones: memory (patrickmn/go-cache) y redis (go-redis).
type Cache interface {
	Get(k string) ([]byte, bool)
	Set(k string, v []byte, ttl time.Duration)
	Delete(k string)
	// Incr incrementa un contador con TTL (usado por rate limiting).
	// Devuelve el valor resultante.
	Incr(k string, ttl time.Duration) int64
}
