// Package listsync mantiene un espejo local de una colección remota con la
// disciplina de borrado "confirmar y después mutar": el item sale de la lista
// SOLO cuando el borrado remoto resolvió bien, y si falla se restaura en su
// posición original. La lista nunca diverge del servidor más allá de un
// round-trip fallido.
package listsync

import (
	"context"
	"sync"
)

// Mirror es un espejo mutable de una colección, keyed por id.
// Es una COPIA local, no una referencia viva al cache de queries.
type Mirror[T any] struct {
	mu    sync.Mutex
	id    func(T) string
	items []T
}

// New crea un espejo vacío con el extractor de id dado.
func New[T any](id func(T) string) *Mirror[T] {
	return &Mirror[T]{id: id}
}

// Seed reemplaza el contenido con una copia del fetch inicial.
func (m *Mirror[T]) Seed(items []T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]T, len(items))
	copy(m.items, items)
}

// Items devuelve una copia del estado actual.
func (m *Mirror[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// Len devuelve la cantidad de items.
func (m *Mirror[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Empty reporta si la lista está vacía (estado de render de primera clase).
func (m *Mirror[T]) Empty() bool { return m.Len() == 0 }

// Replace sustituye el item con el mismo id (callback post-edición).
// No re-fetchea. Devuelve false si el id no está en la lista.
func (m *Mirror[T]) Replace(item T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := m.id(item)
	for i := range m.items {
		if m.id(m.items[i]) == want {
			m.items[i] = item
			return true
		}
	}
	return false
}

// Insert agrega un item al final (alta confirmada).
func (m *Mirror[T]) Insert(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
}

// Delete ejecuta confirm (la llamada de red) y SOLO si resuelve bien quita el
// item de la lista. En fallo la lista queda intacta: nada se pierde en
// silencio. Devuelve el error de confirm.
func (m *Mirror[T]) Delete(ctx context.Context, id string, confirm func(ctx context.Context) error) error {
	if err := confirm(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(id)
	return nil
}

// DeleteOptimistic quita el item ANTES de confirmar para feedback inmediato y
// lo re-inserta en su posición original si la confirmación falla. Preferir
// Delete salvo que la UI exija el feedback instantáneo.
func (m *Mirror[T]) DeleteOptimistic(ctx context.Context, id string, confirm func(ctx context.Context) error) error {
	m.mu.Lock()
	idx, item, found := m.findLocked(id)
	if found {
		m.items = append(m.items[:idx], m.items[idx+1:]...)
	}
	m.mu.Unlock()

	err := confirm(ctx)
	if err != nil && found {
		// Rollback: restaurar en la posición original
		m.mu.Lock()
		if idx > len(m.items) {
			idx = len(m.items)
		}
		m.items = append(m.items[:idx], append([]T{item}, m.items[idx:]...)...)
		m.mu.Unlock()
	}
	return err
}

func (m *Mirror[T]) findLocked(id string) (int, T, bool) {
	var zero T
	for i := range m.items {
		if m.id(m.items[i]) == id {
			return i, m.items[i], true
		}
	}
	return -1, zero, false
}

func (m *Mirror[T]) removeLocked(id string) {
	for i := range m.items {
		if m.id(m.items[i]) == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}
