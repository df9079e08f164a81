package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// tableSpec describe cómo se mapea una colección a su tabla.
// fields devuelve punteros a los campos del registro en el mismo orden que columns;
// sirven tanto de destino para Scan como de argumentos para INSERT.
type tableSpec[T entity.Record] struct {
	table         string
	columns       []string // la primera columna es siempre id
	insertOnly    []string // columnas que el upsert no sobrescribe (created_at)
	dateColumn    string   // vacío = la colección no se filtra por fecha
	channelColumn string   // vacío = la colección no tiene canal
	orderBy       string
	newRecord     func() T
	fields        func(T) []any
}

// Collection repositorio genérico tabla-por-entidad sobre PostgreSQL (pool o tx).
type Collection[T entity.Record] struct {
	q    Querier
	spec tableSpec[T]

	selectSQL string
	upsertSQL string
}

func newCollection[T entity.Record](q Querier, spec tableSpec[T]) *Collection[T] {
	cols := strings.Join(spec.columns, ", ")
	placeholders := make([]string, len(spec.columns))
	for i := range spec.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	skip := map[string]bool{spec.columns[0]: true}
	for _, c := range spec.insertOnly {
		skip[c] = true
	}
	var sets []string
	for _, c := range spec.columns {
		if !skip[c] {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
	}

	return &Collection[T]{
		q:         q,
		spec:      spec,
		selectSQL: fmt.Sprintf("SELECT %s FROM %s", cols, spec.table),
		upsertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
			spec.table, cols, strings.Join(placeholders, ", "), spec.columns[0], strings.Join(sets, ", ")),
	}
}

// Upsert inserta o actualiza el registro por id.
func (c *Collection[T]) Upsert(ctx context.Context, rec T) error {
	if rec.GetID() == "" {
		return fmt.Errorf("%w: registro sin id", domain.ErrInvalidInput)
	}
	if _, err := c.q.Exec(ctx, c.upsertSQL, c.spec.fields(rec)...); err != nil {
		return fmt.Errorf("upsert %s: %w", c.spec.table, constraintError(err))
	}
	return nil
}

// GetByID devuelve nil, nil si el registro no existe.
func (c *Collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	rec := c.spec.newRecord()
	err := c.q.QueryRow(ctx, c.selectSQL+" WHERE id = $1", id).Scan(c.spec.fields(rec)...)
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, nil
		}
		return zero, fmt.Errorf("get %s: %w", c.spec.table, err)
	}
	return rec, nil
}

// Delete borra por id; domain.ErrNotFound si no existía.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	cmd, err := c.q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", c.spec.table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.spec.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List aplica el filtro de rango (inclusivo) y canal en SQL.
func (c *Collection[T]) List(ctx context.Context, f repository.RecordFilter) ([]T, error) {
	var where []string
	var args []any
	if c.spec.dateColumn != "" {
		if !f.Range.From.IsZero() {
			args = append(args, f.Range.From)
			where = append(where, fmt.Sprintf("%s >= $%d", c.spec.dateColumn, len(args)))
		}
		if !f.Range.To.IsZero() {
			args = append(args, f.Range.To)
			where = append(where, fmt.Sprintf("%s <= $%d", c.spec.dateColumn, len(args)))
		}
	}
	if c.spec.channelColumn != "" && f.Channel != "" {
		args = append(args, string(f.Channel))
		where = append(where, fmt.Sprintf("%s = $%d", c.spec.channelColumn, len(args)))
	}

	query := c.selectSQL
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + c.spec.orderBy

	rows, err := c.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.spec.table, err)
	}
	defer rows.Close()

	var list []T
	for rows.Next() {
		rec := c.spec.newRecord()
		if err := rows.Scan(c.spec.fields(rec)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.spec.table, err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
