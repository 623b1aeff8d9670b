// Package queue defines the reservation event payload and the background
// consumer that records those events.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/lunchly/internal/model"
)

// ReservationQueue is the durable queue carrying ReservationSavedEvent.
const ReservationQueue = "reservation.saved"

// ReservationSavedEvent is published after a reservation has been
// inserted or updated.  It carries enough to log or notify without
// reading the database again.
type ReservationSavedEvent struct {
	EventID       string `json:"event_id"`
	Action        string `json:"action"` // "created" or "updated"
	ReservationID uint64 `json:"reservation_id"`
	CustomerID    uint64 `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	NumGuests     int    `json:"num_guests"`
	StartAt       string `json:"start_at"`
	SavedAt       string `json:"saved_at"`
}

// NewReservationSavedEvent builds the event for r, booked by c.
func NewReservationSavedEvent(action string, r *model.Reservation, c model.Customer) ReservationSavedEvent {
	return ReservationSavedEvent{
		EventID:       uuid.NewString(),
		Action:        action,
		ReservationID: r.ID,
		CustomerID:    r.CustomerID,
		CustomerName:  c.FullName(),
		NumGuests:     r.NumGuests(),
		StartAt:       r.StartAt.UTC().Format(time.RFC3339),
		SavedAt:       time.Now().UTC().Format(time.RFC3339),
	}
}
