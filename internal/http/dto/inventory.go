package dto

import (
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// CreateBatchRequest da de alta un lote de inventario.
type CreateBatchRequest struct {
	IngredientID  string     `json:"ingredient_id"`
	Quantity      float64    `json:"quantity"`
	UnitCostCents int64      `json:"unit_cost_cents"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// BatchResponse es la vista de un lote.
type BatchResponse struct {
	ID            string     `json:"id"`
	IngredientID  string     `json:"ingredient_id"`
	Quantity      float64    `json:"quantity"`
	UnitCostCents int64      `json:"unit_cost_cents"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewBatchResponse(b domain.InventoryBatch) BatchResponse {
	return BatchResponse{
		ID:            b.ID,
		IngredientID:  b.IngredientID,
		Quantity:      b.Quantity,
		UnitCostCents: b.UnitCostCents,
		ExpiresAt:     b.ExpiresAt,
		CreatedAt:     b.CreatedAt,
	}
}
