// Package dbtest provides database fixtures for tests: an in-memory
// SQLite database carrying the production schema and a recording
// Executor for asserting on generated statements.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

const schema = `
CREATE TABLE customers (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	phone      TEXT,
	notes      TEXT
);
CREATE TABLE reservations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id INTEGER NOT NULL REFERENCES customers (id),
	num_guests  INTEGER NOT NULL,
	start_at    DATETIME NOT NULL,
	notes       TEXT
);`

// NewSQLite opens a fresh in-memory database with the schema applied.
// Each call gets its own database; it is closed when the test ends.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	// A memory database lives as long as its last connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

// InsertCustomer writes a customer row directly and returns its id.
func InsertCustomer(t *testing.T, db *sql.DB, first, last string) uint64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO customers (first_name, last_name) VALUES (?, ?)", first, last)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

// InsertReservation writes a reservation row directly, bypassing any
// validation, and returns its id.
func InsertReservation(t *testing.T, db *sql.DB, customerID uint64, guests int, startAt time.Time) uint64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO reservations (customer_id, num_guests, start_at) VALUES (?, ?, ?)",
		customerID, guests, startAt.UTC())
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}
