package errors

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/comanda/internal/store/core"
)

// WriteStoreError mapea los sentinelas del store a errores HTTP.
// Todo lo no reconocido colapsa a 500 sin filtrar detalles internos.
func WriteStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		WriteError(w, ErrNotFound)
	case errors.Is(err, core.ErrConflict):
		WriteError(w, ErrConflict)
	case errors.Is(err, core.ErrInUse):
		WriteError(w, ErrConflict.WithDetail("el recurso está referenciado por otros registros"))
	case errors.Is(err, core.ErrRegisterOpen):
		WriteError(w, ErrConflict.WithDetail("ya hay una caja abierta para este cajero"))
	case errors.Is(err, core.ErrOrderNotOpen):
		WriteError(w, ErrConflict.WithDetail("la orden no está abierta"))
	case errors.Is(err, core.ErrTableOccupied):
		WriteError(w, ErrConflict.WithDetail("la mesa ya tiene una orden activa"))
	default:
		WriteError(w, ErrInternalServerError.WithCause(err))
	}
}
