package model

import (
	"encoding/json"
	"time"

	"github.com/iliyamo/lunchly/internal/utils"
)

// GuestsMessage is the message carried by the error returned for a
// non-positive party size.
const GuestsMessage = "Guests cannot be negative or zero"

// Reservation records a party booked by a customer.  It corresponds to
// a row in the `reservations` table.
//
// Fields:
//  ID         – primary key identifier; zero until the record is saved.
//  CustomerID – customer who booked (customers.id).
//  numGuests  – party size; always > 0 once set, see SetNumGuests.
//  StartAt    – when the party is expected.
//  Notes      – free text kept by staff (nullable).
//
// numGuests has no exported field on purpose: NewReservation and
// SetNumGuests are its only write paths.
type Reservation struct {
	ID         uint64    // reservations.id
	CustomerID uint64    // reservations.customer_id
	numGuests  int       // reservations.num_guests
	StartAt    time.Time // reservations.start_at
	Notes      *string   // reservations.notes (nullable)
}

// NewReservation builds an unsaved reservation.  It fails with an
// InvalidArgumentError when numGuests is not positive.
func NewReservation(customerID uint64, numGuests int, startAt time.Time, notes *string) (*Reservation, error) {
	r := &Reservation{CustomerID: customerID, StartAt: startAt, Notes: notes}
	if err := r.SetNumGuests(numGuests); err != nil {
		return nil, err
	}
	return r, nil
}

// NumGuests returns the party size.  Zero means it was never set.
func (r *Reservation) NumGuests() int { return r.numGuests }

// SetNumGuests adopts n as the party size.  Values <= 0 are rejected and
// the previous value is kept.
func (r *Reservation) SetNumGuests(n int) error {
	if n <= 0 {
		return invalid("numGuests", GuestsMessage)
	}
	r.numGuests = n
	return nil
}

// IsNew reports whether the reservation has not been persisted yet.
func (r *Reservation) IsNew() bool { return r.ID == 0 }

// Validate reports whether the reservation may be written to storage.
func (r *Reservation) Validate() error {
	if r.numGuests <= 0 {
		return invalid("numGuests", GuestsMessage)
	}
	if r.CustomerID == 0 {
		return invalid("customerId", "customer is required")
	}
	return nil
}

// FormattedStartAt renders StartAt for display, e.g. "October 19th 2026, 7:30 pm".
func (r *Reservation) FormattedStartAt() string {
	return utils.FormatLongDateTime(r.StartAt)
}

type reservationJSON struct {
	ID         uint64    `json:"id,omitempty"`
	CustomerID uint64    `json:"customerId"`
	NumGuests  int       `json:"numGuests"`
	StartAt    time.Time `json:"startAt"`
	Notes      *string   `json:"notes"`
}

func (r Reservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(reservationJSON{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		NumGuests:  r.numGuests,
		StartAt:    r.StartAt,
		Notes:      r.Notes,
	})
}

// UnmarshalJSON decodes the wire shape, sending numGuests through
// SetNumGuests.
func (r *Reservation) UnmarshalJSON(b []byte) error {
	var aux reservationJSON
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	next := Reservation{ID: aux.ID, CustomerID: aux.CustomerID, StartAt: aux.StartAt, Notes: aux.Notes}
	if err := next.SetNumGuests(aux.NumGuests); err != nil {
		return err
	}
	*r = next
	return nil
}
