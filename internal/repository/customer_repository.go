package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/lunchly/internal/database"
	"github.com/iliyamo/lunchly/internal/model"
)

const (
	// DefaultTopLimit is used by TopByReservationCount when no positive
	// limit is given.
	DefaultTopLimit = 10
	// MaxTopLimit caps the ranking size.
	MaxTopLimit = 100
)

// CustomerRepo provides access to the customers table together with
// name search and the reservation-count ranking.  Reservation lookups
// are delegated to the ReservationRepo it was built with.
type CustomerRepo struct {
	db           database.Executor
	reservations *ReservationRepo
}

// NewCustomerRepo returns a CustomerRepo bound to the given executor.
func NewCustomerRepo(db database.Executor, reservations *ReservationRepo) *CustomerRepo {
	return &CustomerRepo{db: db, reservations: reservations}
}

// List returns every customer ordered by last name, then first name.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+`
		FROM customers c
		ORDER BY c.last_name, c.first_name, c.id`)
	if err != nil {
		return nil, err
	}
	return customersFromRows(rows)
}

// GetByID fetches a customer by id.  It returns a *NotFoundError when no
// row matches.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+`
		FROM customers c
		WHERE c.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("customer", id)
	}
	c, err := customerFromRow(rows[0])
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SearchByName finds customers by name.  The query is split on
// whitespace:
//
//   - no tokens: nothing matches and no statement is run;
//   - one token: first OR last name contains it;
//   - two or more: first name contains the first token AND last name
//     contains the second; the rest are ignored.
//
// Matching is case-insensitive.  Results use the List ordering.
func (r *CustomerRepo) SearchByName(ctx context.Context, query string) ([]model.Customer, error) {
	tokens := strings.Fields(query)

	var cond string
	var args []any
	switch len(tokens) {
	case 0:
		return []model.Customer{}, nil
	case 1:
		p := containsPattern(tokens[0])
		cond = `LOWER(c.first_name) LIKE ? ESCAPE '!' OR LOWER(c.last_name) LIKE ? ESCAPE '!'`
		args = []any{p, p}
	default:
		cond = `LOWER(c.first_name) LIKE ? ESCAPE '!' AND LOWER(c.last_name) LIKE ? ESCAPE '!'`
		args = []any{containsPattern(tokens[0]), containsPattern(tokens[1])}
	}

	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+`
		FROM customers c
		WHERE `+cond+`
		ORDER BY c.last_name, c.first_name, c.id`, args...)
	if err != nil {
		return nil, err
	}
	return customersFromRows(rows)
}

// TopByReservationCount returns at most limit customers ranked by how
// many reservations they hold, most first.  Customers without
// reservations never appear (inner join).  Equal counts are ordered by
// ascending customer id.
func (r *CustomerRepo) TopByReservationCount(ctx context.Context, limit int) ([]model.Customer, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		limit = MaxTopLimit
	}
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+`
		FROM customers c
		JOIN reservations r ON r.customer_id = c.id
		GROUP BY c.id, c.first_name, c.last_name, c.phone, c.notes
		ORDER BY COUNT(r.id) DESC, c.id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return customersFromRows(rows)
}

// Save inserts the customer when it has no id yet and stores the
// generated id on it; otherwise every mutable column is overwritten
// (last write wins).
func (r *CustomerRepo) Save(ctx context.Context, c *model.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.IsNew() {
		res, err := r.db.Exec(ctx,
			`INSERT INTO customers (first_name, last_name, phone, notes) VALUES (?, ?, ?, ?)`,
			c.FirstName, c.LastName, c.Phone, c.Notes)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		c.ID = uint64(id)
		return nil
	}

	res, err := r.db.Exec(ctx,
		`UPDATE customers SET first_name = ?, last_name = ?, phone = ?, notes = ? WHERE id = ?`,
		c.FirstName, c.LastName, c.Phone, c.Notes, c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("customer", c.ID)
	}
	return nil
}

// Reservations lists the customer's reservations via the reservation
// repository, in its order.
func (r *CustomerRepo) Reservations(ctx context.Context, c model.Customer) ([]*model.Reservation, error) {
	return r.reservations.ListByCustomer(ctx, c.ID)
}
