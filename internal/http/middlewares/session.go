package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/comanda/internal/observability/logger"
	"github.com/dropDatabas3/comanda/internal/session"
)

// tokenFromRequest extrae la credencial cruda del request.
// Acepta Authorization: Bearer y el header propio del panel.
func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return strings.TrimSpace(auth[len("bearer "):])
		}
	}
	return r.Header.Get("X-Session-Token")
}

// WithSession resuelve la credencial del request a una Session fresca y la
// deja en el contexto. NO corta: eso es trabajo del gate de autorización por
// ruta. Cada request protegido re-valida la sesión contra el store, así un
// empleado desactivado o degradado pierde acceso en la próxima navegación.
func WithSession(auth *session.Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := auth.Authenticate(r.Context(), tokenFromRequest(r))
			if err != nil {
				// Sesión cero en el contexto: el gate decide qué hacer
				logger.From(r.Context()).Debug("request sin sesión válida")
			}
			next.ServeHTTP(w, r.WithContext(WithSessionValue(r.Context(), sess)))
		})
	}
}
