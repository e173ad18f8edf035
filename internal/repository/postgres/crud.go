package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GraftonJ/repsy-be/pkg/errors"
)

// crudRepository is the generic store gateway: one table per resource,
// point lookups by primary key, mutations returning the affected row.
type crudRepository[T any] struct {
	db         *sqlx.DB
	table      string
	resource   string
	insertCols []string
}

func newCRUDRepository[T any](db *sqlx.DB, table, resource string, insertCols []string) crudRepository[T] {
	return crudRepository[T]{db: db, table: table, resource: resource, insertCols: insertCols}
}

func (r *crudRepository[T]) List(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY id", r.table)
	var recs []T
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return recs, nil
}

func (r *crudRepository[T]) Get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", r.table)
	var rec T
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound(r.resource)
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.resource, err)
	}
	return &rec, nil
}

func (r *crudRepository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", r.table)
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", r.resource, err)
	}
	return exists, nil
}

func (r *crudRepository[T]) Insert(ctx context.Context, rec *T) (*T, error) {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (:%s) RETURNING *",
		r.table,
		strings.Join(r.insertCols, ", "),
		strings.Join(r.insertCols, ", :"),
	)

	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", r.resource, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("insert into %s returned no row", r.table)
	}
	var inserted T
	if err := rows.StructScan(&inserted); err != nil {
		return nil, fmt.Errorf("failed to scan inserted %s: %w", r.resource, err)
	}
	return &inserted, nil
}

func (r *crudRepository[T]) Update(ctx context.Context, id int64, changes map[string]interface{}) (*T, error) {
	if len(changes) == 0 {
		return nil, errors.Validation("empty or invalid patch request")
	}

	set, args := buildSetClause(changes)
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *", r.table, set, len(args))

	var rec T
	if err := r.db.GetContext(ctx, &rec, query, args...); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound(r.resource)
		}
		return nil, fmt.Errorf("failed to update %s: %w", r.resource, err)
	}
	return &rec, nil
}

func (r *crudRepository[T]) Delete(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 RETURNING *", r.table)
	var rec T
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound(r.resource)
		}
		return nil, fmt.Errorf("failed to delete %s: %w", r.resource, err)
	}
	return &rec, nil
}

// buildSetClause renders a deterministic SET clause from patch changes.
// Keys come from the static allow-list structs in internal/model, never
// from client input, so interpolating them is safe.
func buildSetClause(changes map[string]interface{}) (string, []interface{}) {
	cols := make([]string, 0, len(changes))
	for col := range changes {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	clauses := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for i, col := range cols {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, changes[col])
	}
	return strings.Join(clauses, ", "), args
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == "23505"
}
