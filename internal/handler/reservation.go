package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/lunchly/internal/model"
	"github.com/iliyamo/lunchly/internal/queue"
	"github.com/iliyamo/lunchly/internal/repository"
)

// ReservationHandler serves /v1/reservations/:id.
type ReservationHandler struct {
	Customers    *repository.CustomerRepo
	Reservations *repository.ReservationRepo
	Events       EventPublisher // optional
	Log          logrus.FieldLogger
	Timeout      time.Duration
}

// NewReservationHandler panics if a repository is missing.  events may be nil.
func NewReservationHandler(customers *repository.CustomerRepo, reservations *repository.ReservationRepo, events EventPublisher, log logrus.FieldLogger, timeout time.Duration) *ReservationHandler {
	if customers == nil || reservations == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ReservationHandler{Customers: customers, Reservations: reservations, Events: events, Log: log, Timeout: timeout}
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	reservation, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err, "failed to load reservation")
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": viewReservation(reservation)})
}

// Update handles PUT /v1/reservations/:id.  The party size goes through
// SetNumGuests, so a bad value leaves the stored row untouched.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	reservation, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err, "failed to load reservation")
	}
	if err := reservation.SetNumGuests(req.NumGuests); err != nil {
		return writeError(c, h.Log, err, "invalid reservation")
	}
	if !req.StartAt.IsZero() {
		reservation.StartAt = req.StartAt
	}
	reservation.Notes = model.OptionalString(req.Notes)

	if err := h.Reservations.Save(ctx, reservation); err != nil {
		return writeError(c, h.Log, err, "failed to update reservation")
	}

	var customer model.Customer
	if cust, err := h.Customers.GetByID(ctx, reservation.CustomerID); err == nil {
		customer = *cust
	}
	publishSaved(ctx, h.Events, "updated", reservation, customer)
	return c.JSON(http.StatusOK, echo.Map{"reservation": viewReservation(reservation)})
}

func publishSaved(ctx context.Context, events EventPublisher, action string, r *model.Reservation, customer model.Customer) {
	if events == nil {
		return
	}
	// the publisher logs and counts its own failures
	_ = events.PublishReservationSaved(ctx, queue.NewReservationSavedEvent(action, r, customer))
}
