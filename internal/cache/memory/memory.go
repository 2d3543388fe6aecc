package memory

import (
	"sync"
	"time"

	"github.com/dropDatabas3/comanda/internal/cache"
	gocache "github.com/patrickmn/go-cache"
)

type Mem struct {
	c *gocache.Cache

	// go-cache no tiene incremento atómico con TTL de creación, lo serializamos
	mu sync.Mutex
}

func New(defaultTTL time.Duration) cache.Cache {
	return &Mem{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Mem) Get(k string) ([]byte, bool) {
	v, ok := m.c.Get(k)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	return b, true
}

func (m *Mem) Set(k string, v []byte, ttl time.Duration) { m.c.Set(k, v, ttl) }
func (m *Mem) Delete(k string)                           { m.c.Delete(k) }

func (m *Mem) Incr(k string, ttl time.Duration) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, exp, ok := m.c.GetWithExpiration(k); ok {
		n, _ := v.(int64)
		n++
		// Conservar el vencimiento original: la ventana no se corre con cada hit
		remaining := ttl
		if !exp.IsZero() {
			remaining = time.Until(exp)
		}
		m.c.Set(k, n, remaining)
		return n
	}
	m.c.Set(k, int64(1), ttl)
	return 1
}
