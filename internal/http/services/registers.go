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
	ErrInvalidMethod   = errors.New("registers: medio de pago inválido")
	ErrRegisterClosed  = errors.New("registers: la caja ya está cerrada")
	ErrNoOpenRegister  = errors.New("registers: el cajero no tiene caja abierta")
	ErrOrderNotPayable = errors.New("registers: la orden no está lista para cobrar")
)

// RegisterService maneja los turnos de caja y el cobro de órdenes.
type RegisterService struct {
	repo  core.Repository
	cache cache.Cache
}

func (s *RegisterService) List(ctx context.Context) ([]domain.CashRegister, error) {
	return s.repo.ListRegisters(ctx)
}

func (s *RegisterService) Get(ctx context.Context, id string) (*domain.CashRegister, error) {
	return s.repo.GetRegister(ctx, id)
}

// Open abre un turno de caja. El invariante "una caja abierta por cajero" lo
// garantiza el store.
func (s *RegisterService) Open(ctx context.Context, cashierID string, floatCents int64) (*domain.CashRegister, error) {
	r := &domain.CashRegister{
		ID:         uuid.NewString(),
		CashierID:  cashierID,
		OpenedAt:   time.Now().UTC(),
		FloatCents: floatCents,
	}
	if err := s.repo.OpenRegister(ctx, r); err != nil {
		return nil, err
	}
	logger.From(ctx).Info("caja abierta", logger.RegisterID(r.ID), logger.StaffID(cashierID))
	return r, nil
}

// Close cierra el turno calculando el esperado: fondo + cobros en efectivo.
func (s *RegisterService) Close(ctx context.Context, registerID string, countedCents int64) (*domain.CashRegister, error) {
	r, err := s.repo.GetRegister(ctx, registerID)
	if err != nil {
		return nil, err
	}
	if r.ClosedAt != nil {
		return nil, ErrRegisterClosed
	}

	payments, err := s.repo.ListPaymentsByRegister(ctx, registerID)
	if err != nil {
		return nil, err
	}
	expected := r.FloatCents
	for _, p := range payments {
		if p.Method == domain.PayCash {
			expected += p.TotalCents
		}
	}

	now := time.Now().UTC()
	r.ClosedAt = &now
	r.CountedCents = &countedCents
	r.ExpectedCents = &expected
	if err := s.repo.CloseRegister(ctx, r); err != nil {
		return nil, err
	}

	logger.From(ctx).Info("caja cerrada",
		logger.RegisterID(r.ID),
		logger.Int("expected_cents", int(expected)),
		logger.Int("counted_cents", int(countedCents)),
	)
	return r, nil
}

// Checkout cobra una orden servida contra la caja abierta del cajero.
// El pago y el cierre de la orden son atómicos (misma TX en el store).
func (s *RegisterService) Checkout(ctx context.Context, cashierID, orderID, methodStr string) (*domain.Payment, error) {
	method := domain.PaymentMethod(methodStr)
	if method != domain.PayCash && method != domain.PayCard {
		return nil, ErrInvalidMethod
	}

	reg, err := s.repo.GetOpenRegisterByCashier(ctx, cashierID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNoOpenRegister
		}
		return nil, err
	}

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OrderServed {
		return nil, ErrOrderNotPayable
	}

	now := time.Now().UTC()
	p := &domain.Payment{
		ID:         uuid.NewString(),
		OrderID:    o.ID,
		RegisterID: reg.ID,
		Method:     method,
		TotalCents: o.TotalCents(),
		CreatedAt:  now,
	}
	o.Status = domain.OrderClosed
	o.UpdatedAt = now
	o.ClosedAt = &now

	if err := s.repo.CreatePayment(ctx, p, o); err != nil {
		return nil, err
	}

	// Liberar la mesa fuera de la TX: el cobro ya quedó firme
	if t, err := s.repo.GetTable(ctx, o.TableID); err == nil {
		t.State = domain.TableFree
		t.UpdatedAt = now
		if err := s.repo.UpdateTable(ctx, t); err == nil {
			invalidateTables(s.cache, t.SectionID)
		}
	}

	logger.From(ctx).Info("orden cobrada",
		logger.OrderID(o.ID),
		logger.RegisterID(reg.ID),
		logger.Int("total_cents", int(p.TotalCents)),
	)
	return p, nil
}

// PaymentsByRegister lista los cobros de un turno.
func (s *RegisterService) PaymentsByRegister(ctx context.Context, registerID string) ([]domain.Payment, error) {
	return s.repo.ListPaymentsByRegister(ctx, registerID)
}
