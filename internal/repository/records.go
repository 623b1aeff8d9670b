package repository

import (
	"strings"

	"github.com/iliyamo/lunchly/internal/database"
	"github.com/iliyamo/lunchly/internal/model"
)

// Column lists aliased to the record field names.  Every query that
// builds a record selects through these.
const (
	customerColumns = `c.id,
		c.first_name AS firstName,
		c.last_name  AS lastName,
		c.phone      AS phone,
		c.notes      AS notes`

	reservationColumns = `id,
		customer_id AS customerId,
		num_guests  AS numGuests,
		start_at    AS startAt,
		notes       AS notes`
)

func customerFromRow(row database.Row) (model.Customer, error) {
	var c model.Customer
	var err error
	if c.ID, err = row.Uint64("id"); err != nil {
		return c, err
	}
	if c.FirstName, err = row.String("firstName"); err != nil {
		return c, err
	}
	if c.LastName, err = row.String("lastName"); err != nil {
		return c, err
	}
	if c.Phone, err = row.NullString("phone"); err != nil {
		return c, err
	}
	if c.Notes, err = row.NullString("notes"); err != nil {
		return c, err
	}
	return c, nil
}

func customersFromRows(rows []database.Row) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := customerFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// reservationFromRow rebuilds a reservation through SetNumGuests, so a
// stored party size <= 0 surfaces as model.ErrInvalidArgument.
func reservationFromRow(row database.Row) (*model.Reservation, error) {
	var r model.Reservation
	var err error
	if r.ID, err = row.Uint64("id"); err != nil {
		return nil, err
	}
	if r.CustomerID, err = row.Uint64("customerId"); err != nil {
		return nil, err
	}
	guests, err := row.Int64("numGuests")
	if err != nil {
		return nil, err
	}
	if err := r.SetNumGuests(int(guests)); err != nil {
		return nil, err
	}
	if r.StartAt, err = row.Time("startAt"); err != nil {
		return nil, err
	}
	if r.Notes, err = row.NullString("notes"); err != nil {
		return nil, err
	}
	return &r, nil
}

func reservationsFromRows(rows []database.Row) ([]*model.Reservation, error) {
	out := make([]*model.Reservation, 0, len(rows))
	for _, row := range rows {
		r, err := reservationFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern turns a search token into a case-insensitive
// substring pattern for "LOWER(col) LIKE ? ESCAPE '!'".
func containsPattern(token string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(token)) + "%"
}
