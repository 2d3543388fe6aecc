package dto

import (
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// OpenRegisterRequest abre un turno de caja con su fondo inicial.
type OpenRegisterRequest struct {
	FloatCents int64 `json:"float_cents"`
}

// CloseRegisterRequest cierra el turno con el efectivo contado.
type CloseRegisterRequest struct {
	CountedCents int64 `json:"counted_cents"`
}

type RegisterResponse struct {
	ID            string     `json:"id"`
	CashierID     string     `json:"cashier_id"`
	OpenedAt      time.Time  `json:"opened_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	FloatCents    int64      `json:"float_cents"`
	CountedCents  *int64     `json:"counted_cents,omitempty"`
	ExpectedCents *int64     `json:"expected_cents,omitempty"`
}

func NewRegisterResponse(r domain.CashRegister) RegisterResponse {
	return RegisterResponse{
		ID:            r.ID,
		CashierID:     r.CashierID,
		OpenedAt:      r.OpenedAt,
		ClosedAt:      r.ClosedAt,
		FloatCents:    r.FloatCents,
		CountedCents:  r.CountedCents,
		ExpectedCents: r.ExpectedCents,
	}
}

// CheckoutRequest cobra una orden contra la caja abierta del cajero.
type CheckoutRequest struct {
	OrderID string `json:"order_id"`
	Method  string `json:"method"` // cash | card
}

type PaymentResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	RegisterID string    `json:"register_id"`
	Method     string    `json:"method"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		RegisterID: p.RegisterID,
		Method:     string(p.Method),
		TotalCents: p.TotalCents,
		CreatedAt:  p.CreatedAt,
	}
}
