package redis

import (
	"context"
	"time"

	"github.com/dropDatabas3/comanda/internal/cache"
	rdb "github.com/redis/go-redis/v9"
)

type Redis struct {
	cli    *rdb.Client
	prefix string
}

// New crea un cache Redis. El prefix evita colisiones si la instancia se comparte.
func New(addr string, db int, prefix string) cache.Cache {
	cli := rdb.NewClient(&rdb.Options{Addr: addr, DB: db})
	return &Redis{cli: cli, prefix: prefix}
}

func (r *Redis) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Redis) Get(k string) ([]byte, bool) {
	b, err := r.cli.Get(context.Background(), r.key(k)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(k string, v []byte, ttl time.Duration) {
	_ = r.cli.Set(context.Background(), r.key(k), v, ttl).Err()
}

func (r *Redis) Delete(k string) {
	_ = r.cli.Del(context.Background(), r.key(k)).Err()
}

func (r *Redis) Incr(k string, ttl time.Duration) int64 {
	ctx := context.Background()
	key := r.key(k)
	n, err := r.cli.Incr(ctx, key).Result()
	if err != nil {
		return 0
	}
	if n == 1 && ttl > 0 {
		_ = r.cli.Expire(ctx, key, ttl).Err()
	}
	return n
}
