// Package repository defines error types that are reused across the
// customer and reservation repositories.  These values allow higher
// layers such as handlers to distinguish between failure scenarios.
// Errors coming from the database driver itself are returned as-is.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.  Handlers should
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// NotFoundError is returned when a lookup by identity matches no row.
// It carries the entity name and the requested id.
type NotFoundError struct {
	Entity string
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No such %s: %d", e.Entity, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match any entity.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity string, id uint64) error {
	return &NotFoundError{Entity: entity, ID: id}
}
