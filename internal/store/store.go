// Package store implements a generic repository over entities with int64
// identifiers. Each entity type gets a SQLStore bound to its table; the
// same store code runs against the pool or a per-request transaction via
// sqlx.ExtContext.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"education-backend-go/internal/apperrors"
)

// Entity is a persisted record with an integer identifier.
type Entity interface {
	EntityID() int64
}

// Store is the entity-store contract the services depend on. SQLStore is
// the production implementation; tests substitute in-memory fakes.
type Store[T Entity] interface {
	Create(ctx context.Context, entity T) (T, error)
	Get(ctx context.Context, filter Filter) (T, error)
	GetMultiple(ctx context.Context, filter Filter) ([]T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity T, filter Filter) (T, error)
	Delete(ctx context.Context, filter Filter) error
	Exists(ctx context.Context, filter Filter, raiseOnMissing bool) (bool, error)
}

type SQLStore[T Entity] struct {
	ext      sqlx.ExtContext
	table    string
	singular string
	plural   string
	columns  []string // insertable/updatable columns, id excluded
}

func New[T Entity](ext sqlx.ExtContext, table, singular, plural string, columns []string) *SQLStore[T] {
	return &SQLStore[T]{
		ext:      ext,
		table:    table,
		singular: singular,
		plural:   plural,
		columns:  columns,
	}
}

func (s *SQLStore[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	query := "INSERT INTO " + s.table +
		" (" + strings.Join(s.columns, ", ") + ")" +
		" VALUES (:" + strings.Join(s.columns, ", :") + ")" +
		" RETURNING *"
	rows, err := sqlx.NamedQueryContext(ctx, s.ext, query, entity)
	if err != nil {
		return zero, apperrors.NotCreated(err, "could not create %s", s.singular)
	}
	defer rows.Close()
	if !rows.Next() {
		return zero, apperrors.NotCreated(nil, "could not create %s", s.singular)
	}
	var created T
	if err := rows.StructScan(&created); err != nil {
		return zero, apperrors.NotCreated(err, "could not create %s", s.singular)
	}
	return created, nil
}

// Get returns the first entity matching the filter. When several rows
// match, the lowest id wins so repeated calls stay deterministic.
func (s *SQLStore[T]) Get(ctx context.Context, filter Filter) (T, error) {
	var zero T
	if err := filter.Validate(); err != nil {
		return zero, err
	}
	where, args := filter.Clause()
	query := "SELECT * FROM " + s.table + " WHERE " + where + " ORDER BY id LIMIT 1"
	var entity T
	err := sqlx.GetContext(ctx, s.ext, &entity, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, s.notFoundByFilter(filter)
	}
	if err != nil {
		return zero, err
	}
	return entity, nil
}

func (s *SQLStore[T]) GetMultiple(ctx context.Context, filter Filter) ([]T, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	where, args := filter.Clause()
	query := "SELECT * FROM " + s.table + " WHERE " + where + " ORDER BY id"
	entities := []T{}
	if err := sqlx.SelectContext(ctx, s.ext, &entities, query, args...); err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, s.notFoundByFilter(filter)
	}
	return entities, nil
}

func (s *SQLStore[T]) GetAll(ctx context.Context) ([]T, error) {
	entities := []T{}
	query := "SELECT * FROM " + s.table + " ORDER BY id"
	if err := sqlx.SelectContext(ctx, s.ext, &entities, query); err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, apperrors.NotFound("no %s found", s.plural)
	}
	return entities, nil
}

// Update checks existence by the filter first, then merges the entity by
// its identifier.
func (s *SQLStore[T]) Update(ctx context.Context, entity T, filter Filter) (T, error) {
	var zero T
	if _, err := s.Exists(ctx, filter, true); err != nil {
		return zero, err
	}
	sets := make([]string, 0, len(s.columns))
	for _, column := range s.columns {
		sets = append(sets, column+" = :"+column)
	}
	query := "UPDATE " + s.table + " SET " + strings.Join(sets, ", ") +
		" WHERE id = :id RETURNING *"
	rows, err := sqlx.NamedQueryContext(ctx, s.ext, query, entity)
	if err != nil {
		return zero, err
	}
	defer rows.Close()
	if !rows.Next() {
		return zero, s.notFoundByFilter(Where("id", entity.EntityID()))
	}
	var updated T
	if err := rows.StructScan(&updated); err != nil {
		return zero, err
	}
	return updated, nil
}

func (s *SQLStore[T]) Delete(ctx context.Context, filter Filter) error {
	if _, err := s.Exists(ctx, filter, true); err != nil {
		return err
	}
	where, args := filter.Clause()
	_, err := s.ext.ExecContext(ctx, "DELETE FROM "+s.table+" WHERE "+where, args...)
	return err
}

// Exists wraps Get. With raiseOnMissing false a not-found result is
// swallowed and reported as a plain false.
func (s *SQLStore[T]) Exists(ctx context.Context, filter Filter, raiseOnMissing bool) (bool, error) {
	_, err := s.Get(ctx, filter)
	if err == nil {
		return true, nil
	}
	if apperrors.IsKind(err, apperrors.KindNotFound) && !raiseOnMissing {
		return false, nil
	}
	return false, err
}

func (s *SQLStore[T]) notFoundByFilter(filter Filter) error {
	return apperrors.NotFound("no %s found for filter %s", s.singular, filter)
}
