package repository

import (
	"context"

	"github.com/iliyamo/lunchly/internal/database"
	"github.com/iliyamo/lunchly/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  All
// timestamps are stored in UTC.  The party-size rule lives on
// model.Reservation; this repository only ever builds reservations
// through it.
type ReservationRepo struct {
	db database.Executor
}

// NewReservationRepo returns a new ReservationRepo bound to the given executor.
func NewReservationRepo(db database.Executor) *ReservationRepo { return &ReservationRepo{db: db} }

// GetByID returns the reservation with the given id or a *NotFoundError.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+`
		FROM reservations
		WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("reservation", id)
	}
	return reservationFromRow(rows[0])
}

// ListByCustomer returns the customer's reservations ordered by start
// time, then id.  An unknown customer yields an empty slice.
func (r *ReservationRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]*model.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+`
		FROM reservations
		WHERE customer_id = ?
		ORDER BY start_at, id`, customerID)
	if err != nil {
		return nil, err
	}
	return reservationsFromRows(rows)
}

// Save inserts the reservation when it has no id yet and stores the
// generated id on it; otherwise it overwrites the stored row.  A
// reservation without a valid party size never reaches the database.
func (r *ReservationRepo) Save(ctx context.Context, res *model.Reservation) error {
	if err := res.Validate(); err != nil {
		return err
	}
	startAt := res.StartAt.UTC()
	if res.IsNew() {
		result, err := r.db.Exec(ctx,
			`INSERT INTO reservations (customer_id, num_guests, start_at, notes) VALUES (?, ?, ?, ?)`,
			res.CustomerID, res.NumGuests(), startAt, res.Notes)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		res.ID = uint64(id)
		return nil
	}

	result, err := r.db.Exec(ctx,
		`UPDATE reservations SET customer_id = ?, num_guests = ?, start_at = ?, notes = ? WHERE id = ?`,
		res.CustomerID, res.NumGuests(), startAt, res.Notes, res.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("reservation", res.ID)
	}
	return nil
}
