package forms

import (
	"fmt"
	"strconv"
	"strings"
)

// AttachmentRule es el requisito del adjunto derivado de (modo, hasExisting).
type AttachmentRule int

const (
	// AttachmentOptional: el recurso no exige imagen.
	AttachmentOptional AttachmentRule = iota
	// AttachmentRequiredNew: solo un archivo nuevo satisface.
	AttachmentRequiredNew
	// AttachmentExistingOrNew: el marcador existente o un archivo nuevo satisfacen.
	AttachmentExistingOrNew
)

// FieldRule valida un campo escalar del formulario.
type FieldRule struct {
	Name     string
	Required bool
	MaxLen   int
	// Numeric exige entero >= 0 (precios, cantidades).
	Numeric bool
	// Check es una validación adicional opcional; recibe el valor ya trimmeado.
	Check func(v string) error
}

// FieldError anota el fallo de un campo puntual; nunca llega a la red.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) Error() string { return f.Field + ": " + f.Message }

// Schema es el resultado de BuildSchema. NO se memoiza: se reconstruye en cada
// evaluación para que un flip de modo o de hasExisting nunca deje una
// validación vieja colgada (regla crítica de correctitud del formulario).
type Schema struct {
	Attachment AttachmentRule
	Fields     []FieldRule
}

// BuildSchema deriva el schema de validación. Función PURA de sus entradas:
//
//	create                → archivo nuevo obligatorio
//	edit + imagen previa  → existente o nuevo
//	edit sin imagen       → archivo nuevo obligatorio
//
// requiresImage=false degrada el requisito a opcional (recursos sin imagen).
func BuildSchema(mode Mode, hasExisting, requiresImage bool, fields ...FieldRule) Schema {
	rule := AttachmentOptional
	if requiresImage {
		if mode == ModeEdit && hasExisting {
			rule = AttachmentExistingOrNew
		} else {
			rule = AttachmentRequiredNew
		}
	}
	return Schema{Attachment: rule, Fields: fields}
}

// Validate corre el schema contra los valores y el estado del adjunto.
// Devuelve la lista de errores por campo (vacía si todo pasa).
func (s Schema) Validate(values map[string]string, att Attachment) []FieldError {
	var errs []FieldError

	for _, f := range s.Fields {
		v := strings.TrimSpace(values[f.Name])
		if v == "" {
			if f.Required {
				errs = append(errs, FieldError{f.Name, "campo obligatorio"})
			}
			continue
		}
		if f.MaxLen > 0 && len(v) > f.MaxLen {
			errs = append(errs, FieldError{f.Name, fmt.Sprintf("máximo %d caracteres", f.MaxLen)})
			continue
		}
		if f.Numeric {
			if n, err := strconv.ParseInt(v, 10, 64); err != nil || n < 0 {
				errs = append(errs, FieldError{f.Name, "debe ser un entero no negativo"})
				continue
			}
		}
		if f.Check != nil {
			if err := f.Check(v); err != nil {
				errs = append(errs, FieldError{f.Name, err.Error()})
			}
		}
	}

	switch s.Attachment {
	case AttachmentRequiredNew:
		if att.Kind() != AttachNew {
			errs = append(errs, FieldError{"image", "se requiere una imagen nueva"})
		}
	case AttachmentExistingOrNew:
		if att.Kind() == AttachNone {
			errs = append(errs, FieldError{"image", "se requiere una imagen"})
		}
	}

	return errs
}
