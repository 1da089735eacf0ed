// Package storetest provides an in-memory store.Store implementation for
// service tests.
package storetest

import (
	"context"
	"sync"

	"education-backend-go/internal/apperrors"
	"education-backend-go/internal/store"
)

// Matcher reports whether an entity satisfies a filter. Tests supply one
// per entity type since field lookup by column name is entity-specific.
type Matcher[T store.Entity] func(entity T, filter store.Filter) bool

// MemStore keeps entities in insertion order and assigns sequential ids.
type MemStore[T store.Entity] struct {
	mu       sync.Mutex
	nextID   int64
	items    []T
	assignID func(entity T, id int64) T
	match    Matcher[T]
	singular string
}

func NewMemStore[T store.Entity](singular string, assignID func(T, int64) T, match Matcher[T]) *MemStore[T] {
	return &MemStore[T]{
		nextID:   1,
		assignID: assignID,
		match:    match,
		singular: singular,
	}
}

func (m *MemStore[T]) Create(_ context.Context, entity T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := m.assignID(entity, m.nextID)
	m.nextID++
	m.items = append(m.items, created)
	return created, nil
}

func (m *MemStore[T]) Get(_ context.Context, filter store.Filter) (T, error) {
	var zero T
	if err := filter.Validate(); err != nil {
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *T
	for i := range m.items {
		if !m.match(m.items[i], filter) {
			continue
		}
		if found == nil || m.items[i].EntityID() < (*found).EntityID() {
			found = &m.items[i]
		}
	}
	if found == nil {
		return zero, m.notFound(filter)
	}
	return *found, nil
}

func (m *MemStore[T]) GetMultiple(_ context.Context, filter store.Filter) ([]T, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []T{}
	for _, item := range m.items {
		if m.match(item, filter) {
			matched = append(matched, item)
		}
	}
	if len(matched) == 0 {
		return nil, m.notFound(filter)
	}
	return matched, nil
}

func (m *MemStore[T]) GetAll(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return nil, apperrors.NotFound("no %ss found", m.singular)
	}
	all := make([]T, len(m.items))
	copy(all, m.items)
	return all, nil
}

func (m *MemStore[T]) Update(ctx context.Context, entity T, filter store.Filter) (T, error) {
	var zero T
	if _, err := m.Exists(ctx, filter, true); err != nil {
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].EntityID() == entity.EntityID() {
			m.items[i] = entity
			return entity, nil
		}
	}
	return zero, m.notFound(filter)
}

func (m *MemStore[T]) Delete(ctx context.Context, filter store.Filter) error {
	if _, err := m.Exists(ctx, filter, true); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	for _, item := range m.items {
		if !m.match(item, filter) {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

func (m *MemStore[T]) Exists(ctx context.Context, filter store.Filter, raiseOnMissing bool) (bool, error) {
	_, err := m.Get(ctx, filter)
	if err == nil {
		return true, nil
	}
	if apperrors.IsKind(err, apperrors.KindNotFound) && !raiseOnMissing {
		return false, nil
	}
	return false, err
}

func (m *MemStore[T]) notFound(filter store.Filter) error {
	return apperrors.NotFound("no %s found for filter %s", m.singular, filter)
}
