package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/comanda/internal/authz"
	"github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
)

// RequireRoute aplica la tabla de acceso a una ruta administrativa.
// La sesión viene del contexto (WithSession debe correr antes). Del lado del
// servidor la identidad ya está resuelta, así que el estado "checking" no
// aplica: se evalúa con ready=true.
func RequireRoute(policy *authz.Policy, route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			switch policy.Evaluate(route, sess, true) {
			case authz.DecisionAllowed:
				next.ServeHTTP(w, r)
			default:
				if !sess.IsAuthenticated() {
					errors.WriteError(w, errors.ErrUnauthorized)
					return
				}
				logger.From(r.Context()).Warn("acceso denegado",
					logger.StaffID(sess.StaffID),
					logger.Role(string(sess.Role)),
					logger.String("route", route),
				)
				errors.WriteError(w, errors.ErrForbidden)
			}
		})
	}
}

// RequireAnonymous es el gate inverso: la ruta solo se sirve SIN sesión
// (login). Un cliente ya autenticado recibe conflicto, no otra sesión.
func RequireAnonymous() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			if authz.EvaluateAnonymous(sess, true) != authz.DecisionAllowed {
				errors.WriteError(w, errors.ErrConflict.WithDetail("ya hay una sesión activa"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
