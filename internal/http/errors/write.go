package errors

import (
	"encoding/json"
	"net/http"
)

// errorResponse estructura interna para la serialización JSON.
// Esto nos permite controlar exactamente qué campos se envían al cliente.
type errorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Detail  string        `json:"detail,omitempty"`
	Fields  []FieldDetail `json:"fields,omitempty"`
}

// FieldDetail anota un error de validación sobre un campo puntual.
// El cliente lo usa para marcar el campo correspondiente en el formulario.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteError escribe una respuesta HTTP basada en el error proporcionado.
// Maneja automáticamente errores de tipo *AppError y errores genéricos.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	resp := errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteValidationError escribe un 400 con anotaciones por campo.
func WriteValidationError(w http.ResponseWriter, fields []FieldDetail) {
	resp := errorResponse{
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Fields:  fields,
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(ErrValidation.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}
