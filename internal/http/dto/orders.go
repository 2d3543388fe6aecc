package dto

import (
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// OpenOrderRequest abre una orden sobre una mesa.
type OpenOrderRequest struct {
	TableID string             `json:"table_id"`
	Items   []OrderItemRequest `json:"items,omitempty"`
}

// OrderItemRequest agrega un ítem a una orden abierta.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

// OrderStatusRequest transiciona el estado de una orden.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Note           string `json:"note,omitempty"`
}

type OrderResponse struct {
	ID         string              `json:"id"`
	TableID    string              `json:"table_id"`
	WaiterID   string              `json:"waiter_id"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	TotalCents int64               `json:"total_cents"`
	CreatedAt  time.Time           `json:"created_at"`
	ClosedAt   *time.Time          `json:"closed_at,omitempty"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	out := OrderResponse{
		ID:         o.ID,
		TableID:    o.TableID,
		WaiterID:   o.WaiterID,
		Status:     string(o.Status),
		TotalCents: o.TotalCents(),
		CreatedAt:  o.CreatedAt,
		ClosedAt:   o.ClosedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			Note:           it.Note,
		})
	}
	return out
}
