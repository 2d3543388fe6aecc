package middlewares

import (
	"context"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey string

const (
	// ctxSessionKey guarda la Session resuelta por el middleware de sesión
	ctxSessionKey ctxKey = "session"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// WithSessionValue inyecta la sesión en el contexto.
func WithSessionValue(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, ctxSessionKey, sess)
}

// GetSession obtiene la sesión del contexto.
// Devuelve la sesión cero (no autenticada) si el middleware no corrió.
func GetSession(ctx context.Context) domain.Session {
	if v := ctx.Value(ctxSessionKey); v != nil {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
