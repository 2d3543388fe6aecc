// Package jwt emite y verifica los tokens de sesión del personal.
// Un solo secreto HS256: el servicio emite y consume sus propios tokens,
// no hay terceros que necesiten verificar firmas.
package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// SessionClaims son los claims de un token de sesión.
type SessionClaims struct {
	Role        string `json:"role"`
	DisplayName string `json:"name"`
	jwtlib.RegisteredClaims
}

// Issuer firma y verifica tokens de sesión.
type Issuer struct {
	Iss    string
	secret []byte
	ttl    time.Duration
}

// NewIssuer crea un issuer HS256. Si secret está vacío genera uno efímero
// (las sesiones no sobreviven al proceso; aceptable solo en dev).
func NewIssuer(iss, secret string, ttl time.Duration) *Issuer {
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Issuer{Iss: iss, secret: []byte(secret), ttl: ttl}
}

// Sign emite un token de sesión para el empleado dado.
func (i *Issuer) Sign(staff *domain.Staff, now time.Time) (string, error) {
	claims := SessionClaims{
		Role:        string(staff.Role),
		DisplayName: staff.DisplayName,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   staff.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(i.ttl)),
		},
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify valida firma, issuer y expiración, y devuelve los claims.
func (i *Issuer) Verify(raw string) (*SessionClaims, error) {
	var claims SessionClaims
	tok, err := jwtlib.ParseWithClaims(raw, &claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: método de firma inesperado %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwtlib.WithIssuer(i.Iss), jwtlib.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("jwt: token inválido")
	}
	return &claims, nil
}
