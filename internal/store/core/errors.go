package core

import "errors"

// Errores sentinela del layer de persistencia.
// Los services los traducen a AppError (ver internal/http/errors).
var (
	ErrNotFound      = errors.New("store: not found")
	ErrConflict      = errors.New("store: already exists")
	ErrInUse         = errors.New("store: resource in use")
	ErrRegisterOpen  = errors.New("store: cashier already has an open register")
	ErrOrderNotOpen  = errors.New("store: order is not open")
	ErrTableOccupied = errors.New("store: table already has an open order")
)
