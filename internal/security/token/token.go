package token

import (
	"crypto/rand"
	"encoding/base64"
)

// NewOpaque genera un token opaco URL-safe de n bytes de entropía.
// Se usa para credenciales de dispositivo y secretos de un solo uso.
func NewOpaque(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
