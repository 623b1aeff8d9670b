package database

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Row is one result row keyed by column alias.  Queries alias columns
// to the record field names (first_name AS firstName, ...).
type Row map[string]any

// Executor runs parameterized statements with positional "?" arguments.
// Stores depend on this interface so tests can swap the database.
type Executor interface {
	// Query returns every row of the result set in order.
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Observer receives the outcome of every round trip.
type Observer interface {
	ObserveQuery(op string, d time.Duration, err error)
}

// SQLExecutor is the Executor backed by a *sql.DB pool.
type SQLExecutor struct {
	db  *sql.DB
	obs Observer
}

// NewExecutor wraps db.  obs may be nil.
func NewExecutor(db *sql.DB, obs Observer) *SQLExecutor {
	return &SQLExecutor{db: db, obs: obs}
}

func (e *SQLExecutor) Query(ctx context.Context, query string, args ...any) (out []Row, err error) {
	defer e.observe(query, time.Now(), &err)

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out = []Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *SQLExecutor) Exec(ctx context.Context, query string, args ...any) (res sql.Result, err error) {
	defer e.observe(query, time.Now(), &err)
	return e.db.ExecContext(ctx, query, args...)
}

func (e *SQLExecutor) observe(query string, start time.Time, err *error) {
	if e.obs == nil {
		return
	}
	e.obs.ObserveQuery(Verb(query), time.Since(start), *err)
}

// Verb returns the lower-cased leading keyword of a statement
// ("select", "insert", ...), used as a metrics label.
func Verb(query string) string {
	f := strings.Fields(query)
	if len(f) == 0 {
		return "unknown"
	}
	return strings.ToLower(f[0])
}
