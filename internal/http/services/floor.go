package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/comanda/internal/cache"
	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/store/core"
)

var ErrInvalidTableState = errors.New("floor: estado de mesa inválido")

// FloorService administra zonas y mesas del salón.
type FloorService struct {
	repo  core.Repository
	cache cache.Cache
	ttl   time.Duration
}

func (s *FloorService) ListSections(ctx context.Context) ([]domain.Section, error) {
	return cachedList(ctx, s.cache, s.ttl, cache.KeySections, "sections", s.repo.ListSections)
}

func (s *FloorService) CreateSection(ctx context.Context, title string) (*domain.Section, error) {
	sec := &domain.Section{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateSection(ctx, sec); err != nil {
		return nil, err
	}
	s.invalidateFloor(ctx, "")
	return sec, nil
}

func (s *FloorService) DeleteSection(ctx context.Context, id string) error {
	if err := s.repo.DeleteSection(ctx, id); err != nil {
		return err
	}
	s.invalidateFloor(ctx, id)
	return nil
}

func (s *FloorService) ListTables(ctx context.Context, sectionID string) ([]domain.Table, error) {
	key := cache.ScopedKey(cache.KeyTables, sectionID)
	return cachedList(ctx, s.cache, s.ttl, key, "tables", func(ctx context.Context) ([]domain.Table, error) {
		return s.repo.ListTables(ctx, sectionID)
	})
}

func (s *FloorService) CreateTable(ctx context.Context, sectionID string, number, seats int) (*domain.Table, error) {
	now := time.Now().UTC()
	t := &domain.Table{
		ID:        uuid.NewString(),
		SectionID: sectionID,
		Number:    number,
		Seats:     seats,
		State:     domain.TableFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateTable(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateFloor(ctx, sectionID)
	return t, nil
}

func (s *FloorService) UpdateTable(ctx context.Context, id string, seats *int, state *string) (*domain.Table, error) {
	t, err := s.repo.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if seats != nil {
		t.Seats = *seats
	}
	if state != nil {
		switch domain.TableState(*state) {
		case domain.TableFree, domain.TableOccupied, domain.TableReserved:
			t.State = domain.TableState(*state)
		default:
			return nil, ErrInvalidTableState
		}
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateTable(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateFloor(ctx, t.SectionID)
	return t, nil
}

func (s *FloorService) DeleteTable(ctx context.Context, id string) error {
	t, err := s.repo.GetTable(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTable(ctx, id); err != nil {
		return err
	}
	s.invalidateFloor(ctx, t.SectionID)
	return nil
}

func (s *FloorService) invalidateFloor(ctx context.Context, sectionID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(cache.KeySections)
	invalidateTables(s.cache, sectionID)
}

// invalidateTables purga las listas de mesas (global y por zona). Lo usan
// también órdenes y caja: cualquier cambio de estado de mesa debe reflejarse
// en la próxima lista, no cuando venza el TTL.
func invalidateTables(c cache.Cache, sectionID string) {
	if c == nil {
		return
	}
	c.Delete(cache.KeyTables)
	if sectionID != "" {
		c.Delete(cache.ScopedKey(cache.KeyTables, sectionID))
	}
}
