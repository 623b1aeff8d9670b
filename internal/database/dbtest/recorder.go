package dbtest

import (
	"context"
	"database/sql"
	"sync"

	"github.com/iliyamo/lunchly/internal/database"
)

// Call is one statement seen by a Recorder.
type Call struct {
	Query string
	Args  []any
}

// Recorder is a database.Executor that records statements and answers
// every Query with Rows.  Err, when set, is returned by every call.
type Recorder struct {
	mu    sync.Mutex
	Calls []Call
	Rows  []database.Row
	Err   error

	LastInsertID int64
	Affected     int64
}

var _ database.Executor = (*Recorder)(nil)

func (r *Recorder) Query(_ context.Context, query string, args ...any) ([]database.Row, error) {
	r.record(query, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Rows, nil
}

func (r *Recorder) Exec(_ context.Context, query string, args ...any) (sql.Result, error) {
	r.record(query, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return result{id: r.LastInsertID, affected: r.Affected}, nil
}

func (r *Recorder) record(query string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Query: query, Args: args})
}

type result struct{ id, affected int64 }

func (r result) LastInsertId() (int64, error) { return r.id, nil }
func (r result) RowsAffected() (int64, error) { return r.affected, nil }
