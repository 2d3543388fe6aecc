// Package upload maneja la entrada de archivos multipart: chequeo de tipo y
// tamaño, preview en data-URL y persistencia bajo el media root.
// El tipo MIME se DETECTA del contenido (sniffing), nunca se confía en el
// header del cliente.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge = errors.New("upload: el archivo excede el tamaño máximo")
	ErrBadType  = errors.New("upload: tipo de archivo no permitido")
)

// Config parametriza la entrada de archivos (viene de config.Media).
type Config struct {
	Root         string
	BaseURL      string
	MaxBytes     int64
	AllowedMIMEs []string
}

// Check valida tamaño y tipo. Devuelve el MIME detectado.
// Un rechazo NO debe alterar el estado de adjunto previo del caller.
func (c Config) Check(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrBadType
	}
	if c.MaxBytes > 0 && int64(len(data)) > c.MaxBytes {
		return "", fmt.Errorf("%w (%d bytes, máximo %d)", ErrTooLarge, len(data), c.MaxBytes)
	}
	mime := http.DetectContentType(data)
	// DetectContentType puede agregar parámetros ("; charset=...")
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	for _, allowed := range c.AllowedMIMEs {
		if strings.EqualFold(mime, allowed) {
			return mime, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrBadType, mime)
}

// PreviewDataURL arma el data-URL base64 para mostrar el archivo sin
// round-trip a la red (semántica read-as-data-URL).
func PreviewDataURL(data []byte, mime string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Store persiste los bytes bajo el media root con nombre generado.
// Devuelve el path RELATIVO que se guarda en el registro de la entidad.
func (c Config) Store(data []byte, mime string) (string, error) {
	if err := os.MkdirAll(c.Root, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + extFor(mime)
	if err := os.WriteFile(filepath.Join(c.Root, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// Remove borra un archivo previamente almacenado. Ignora paths sospechosos.
func (c Config) Remove(relPath string) error {
	if relPath == "" || strings.Contains(relPath, "..") || strings.ContainsRune(relPath, os.PathSeparator) {
		return nil
	}
	err := os.Remove(filepath.Join(c.Root, relPath))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// URL arma la URL pública de un path relativo almacenado.
func (c Config) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + relPath
}

func extFor(mime string) string {
	switch strings.ToLower(mime) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
