package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

// InventoryService administra los lotes de ingredientes.
type InventoryService struct {
	repo core.Repository
}

func (s *InventoryService) ListBatches(ctx context.Context, ingredientID string) ([]domain.InventoryBatch, error) {
	return s.repo.ListBatches(ctx, ingredientID)
}

func (s *InventoryService) CreateBatch(ctx context.Context, ingredientID string, qty float64, unitCostCents int64, expiresAt *time.Time) (*domain.InventoryBatch, error) {
	b := &domain.InventoryBatch{
		ID:            uuid.NewString(),
		IngredientID:  ingredientID,
		Quantity:      qty,
		UnitCostCents: unitCostCents,
		ExpiresAt:     expiresAt,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateBatch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *InventoryService) DeleteBatch(ctx context.Context, id string) error {
	return s.repo.DeleteBatch(ctx, id)
}

// Stock agrega las cantidades de los lotes por ingrediente.
func (s *InventoryService) Stock(ctx context.Context) (map[string]float64, error) {
	batches, err := s.repo.ListBatches(ctx, "")
	if err != nil {
		return nil, err
	}
	stock := make(map[string]float64)
	for _, b := range batches {
		stock[b.IngredientID] += b.Quantity
	}
	return stock, nil
}
