package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

type whereClause struct {
	query string
	args  []any
}

// QueryBuilder provides a fluent, type-safe API for building database queries.
// All terminal operations apply the configured timeout and retry policy.
type QueryBuilder[T any] struct {
	conn      bun.IDB
	wheres    []whereClause
	orders    []string
	relations []string
	limitVal  int
	offsetVal int
	timeout   time.Duration
}

// Query creates a new QueryBuilder instance
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{conn: db.DB}
}

// QueryTx creates a QueryBuilder bound to an open transaction
func QueryTx[T any](tx bun.Tx) *QueryBuilder[T] {
	return &QueryBuilder[T]{conn: tx}
}

// Where adds an equality condition
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{"? = ?", []any{bun.Ident(column), value}})
	return q
}

// WhereOp adds a condition with an explicit operator ("<", ">=", "ILIKE", ...)
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{fmt.Sprintf("? %s ?", operator), []any{bun.Ident(column), value}})
	return q
}

// WhereRaw adds a raw SQL condition with bun placeholders
func (q *QueryBuilder[T]) WhereRaw(raw string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{raw, args})
	return q
}

// WhereIn adds an IN condition
func (q *QueryBuilder[T]) WhereIn(column string, values any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{"? IN (?)", []any{bun.Ident(column), bun.In(values)}})
	return q
}

// WhereNull adds an IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{"? IS NULL", []any{bun.Ident(column)}})
	return q
}

// WhereNotNull adds an IS NOT NULL condition
func (q *QueryBuilder[T]) WhereNotNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{"? IS NOT NULL", []any{bun.Ident(column)}})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, fmt.Sprintf("%s %s", column, direction))
	return q
}

// Relation preloads a named relation on the model
func (q *QueryBuilder[T]) Relation(name string) *QueryBuilder[T] {
	q.relations = append(q.relations, name)
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = offset
	return q
}

// Timeout bounds the terminal operation; zero means the caller's context rules
func (q *QueryBuilder[T]) Timeout(d time.Duration) *QueryBuilder[T] {
	q.timeout = d
	return q
}

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

func (q *QueryBuilder[T]) buildSelect(model any) *bun.SelectQuery {
	sel := q.conn.NewSelect().Model(model)
	for _, w := range q.wheres {
		sel = sel.Where(w.query, w.args...)
	}
	for _, rel := range q.relations {
		sel = sel.Relation(rel)
	}
	for _, order := range q.orders {
		sel = sel.Order(order)
	}
	if q.limitVal > 0 {
		sel = sel.Limit(q.limitVal)
	}
	if q.offsetVal > 0 {
		sel = sel.Offset(q.offsetVal)
	}
	return sel
}

// All executes the query and returns all matching rows
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data []T
	err := WithRetry(ctx, func() error {
		data = data[:0]
		return q.buildSelect(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return data, nil
}

// First executes the query and returns the first row, or nil when none match
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data T
	err := WithRetry(ctx, func() error {
		return q.buildSelect(&data).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &data, nil
}

// Count returns the number of matching rows, ignoring limit and offset
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := WithRetry(ctx, func() error {
		var model T
		sel := q.conn.NewSelect().Model(&model)
		for _, w := range q.wheres {
			sel = sel.Where(w.query, w.args...)
		}
		var err error
		count, err = sel.Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return count, nil
}

// Insert inserts a single record and returns it with database defaults applied
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.conn.NewInsert().Model(data).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}
	return data, nil
}

// InsertMany inserts multiple records in one statement
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return data, nil
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.conn.NewInsert().Model(&data).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert records: %w", err)
	}
	return data, nil
}

// Update sets the given columns on all matching rows and returns the affected count
func (q *QueryBuilder[T]) Update(ctx context.Context, values map[string]any) (int, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var affected int64
	err := WithRetry(ctx, func() error {
		upd := q.conn.NewUpdate().Model((*T)(nil))
		for column, value := range values {
			upd = upd.Set("? = ?", bun.Ident(column), value)
		}
		for _, w := range q.wheres {
			upd = upd.Where(w.query, w.args...)
		}

		res, err := upd.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update records: %w", err)
	}
	return int(affected), nil
}

// Delete removes all matching rows and returns the affected count
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var affected int64
	err := WithRetry(ctx, func() error {
		del := q.conn.NewDelete().Model((*T)(nil))
		for _, w := range q.wheres {
			del = del.Where(w.query, w.args...)
		}

		res, err := del.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	return int(affected), nil
}
