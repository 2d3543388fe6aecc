package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/comanda/internal/cache"
	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

var (
	ErrInvalidStatus     = errors.New("orders: estado inválido")
	ErrInvalidTransition = errors.New("orders: transición de estado inválida")
	ErrEmptyItem         = errors.New("orders: ítem sin producto o cantidad")
)

// transiciones válidas del ciclo de vida de una orden.
// open → submitted → served → closed; cancelled solo desde open/submitted.
var orderTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderOpen:      {domain.OrderSubmitted, domain.OrderCancelled},
	domain.OrderSubmitted: {domain.OrderServed, domain.OrderCancelled},
	domain.OrderServed:    {domain.OrderClosed},
}

func canTransition(from, to domain.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderService maneja el ciclo de vida de las órdenes de mesa.
type OrderService struct {
	repo  core.Repository
	cache cache.Cache
}

func (s *OrderService) List(ctx context.Context, status string) ([]domain.Order, error) {
	if status != "" && !validStatus(domain.OrderStatus(status)) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListOrders(ctx, domain.OrderStatus(status))
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ItemInput es un ítem a agregar: el precio NO viene del cliente, se congela
// del producto al momento de agregar.
type ItemInput struct {
	ProductID string
	Quantity  int
	Note      string
}

// Open abre una orden sobre una mesa y marca la mesa ocupada.
func (s *OrderService) Open(ctx context.Context, tableID, waiterID string, items []ItemInput) (*domain.Order, error) {
	built, err := s.buildItems(ctx, items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &domain.Order{
		ID:        uuid.NewString(),
		TableID:   tableID,
		WaiterID:  waiterID,
		Status:    domain.OrderOpen,
		Items:     built,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	if t, err := s.repo.GetTable(ctx, tableID); err == nil {
		t.State = domain.TableOccupied
		t.UpdatedAt = now
		if err := s.repo.UpdateTable(ctx, t); err != nil {
			logger.From(ctx).Warn("no se pudo marcar la mesa ocupada",
				logger.TableID(tableID), logger.Err(err))
		} else {
			invalidateTables(s.cache, t.SectionID)
		}
	}

	logger.From(ctx).Info("orden abierta", logger.OrderID(o.ID), logger.TableID(tableID))
	return o, nil
}

// AddItems agrega ítems a una orden abierta.
func (s *OrderService) AddItems(ctx context.Context, orderID string, items []ItemInput) (*domain.Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OrderOpen {
		return nil, core.ErrOrderNotOpen
	}

	built, err := s.buildItems(ctx, items)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, built...)
	o.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// RemoveItem quita un ítem de una orden abierta.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID string) (*domain.Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OrderOpen {
		return nil, core.ErrOrderNotOpen
	}

	kept := o.Items[:0]
	found := false
	for _, it := range o.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, core.ErrNotFound
	}
	o.Items = kept
	o.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Transition mueve la orden al estado pedido validando el ciclo de vida.
// Cerrar y cancelar liberan la mesa.
func (s *OrderService) Transition(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	if !validStatus(to) {
		return nil, ErrInvalidStatus
	}
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(o.Status, to) {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	o.Status = to
	o.UpdatedAt = now
	if to == domain.OrderClosed || to == domain.OrderCancelled {
		o.ClosedAt = &now
	}
	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}

	if o.ClosedAt != nil {
		s.freeTable(ctx, o.TableID)
	}
	logger.From(ctx).Info("orden transicionada",
		logger.OrderID(o.ID), logger.String("to", string(to)))
	return o, nil
}

func (s *OrderService) freeTable(ctx context.Context, tableID string) {
	t, err := s.repo.GetTable(ctx, tableID)
	if err != nil {
		return
	}
	t.State = domain.TableFree
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateTable(ctx, t); err != nil {
		logger.From(ctx).Warn("no se pudo liberar la mesa",
			logger.TableID(tableID), logger.Err(err))
		return
	}
	invalidateTables(s.cache, t.SectionID)
}

func (s *OrderService) buildItems(ctx context.Context, items []ItemInput) ([]domain.OrderItem, error) {
	var built []domain.OrderItem
	for _, in := range items {
		if in.ProductID == "" || in.Quantity <= 0 {
			return nil, ErrEmptyItem
		}
		p, err := s.repo.GetProduct(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		built = append(built, domain.OrderItem{
			ID:             uuid.NewString(),
			ProductID:      p.ID,
			Quantity:       in.Quantity,
			UnitPriceCents: p.PriceCents, // congelado acá, no en el cobro
			Note:           in.Note,
		})
	}
	return built, nil
}

func validStatus(st domain.OrderStatus) bool {
	switch st {
	case domain.OrderOpen, domain.OrderSubmitted, domain.OrderServed, domain.OrderClosed, domain.OrderCancelled:
		return true
	}
	return false
}
