package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/metrics"
	"github.com/dropDatabas3/comanda/internal/rate"
)

// WithRateLimit limita requests por IP usando el limitador de ventana fija.
// Pensado para login: la clave es solo la IP, nunca se lee el body.
func WithRateLimit(limiter *rate.Limiter) Middleware {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				metrics.RecordLogin("rate_limited")
				errors.WriteError(w, errors.ErrTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
