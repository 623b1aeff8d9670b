package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/lunchly/internal/model"
	"github.com/iliyamo/lunchly/internal/queue"
	"github.com/iliyamo/lunchly/internal/repository"
)

// EventPublisher sends reservation events.  Failures never fail the
// request that triggered them.
type EventPublisher interface {
	PublishReservationSaved(ctx context.Context, ev queue.ReservationSavedEvent) error
}

// CustomerHandler serves the customer endpoints and the reservation
// endpoints nested under a customer.
type CustomerHandler struct {
	Customers    *repository.CustomerRepo
	Reservations *repository.ReservationRepo
	Events       EventPublisher // optional
	Log          logrus.FieldLogger
	Timeout      time.Duration
}

// NewCustomerHandler panics if a repository is missing.  events may be nil.
func NewCustomerHandler(customers *repository.CustomerRepo, reservations *repository.ReservationRepo, events EventPublisher, log logrus.FieldLogger, timeout time.Duration) *CustomerHandler {
	if customers == nil || reservations == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CustomerHandler{Customers: customers, Reservations: reservations, Events: events, Log: log, Timeout: timeout}
}

// ----- DTOs -----

type customerReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

type reservationReq struct {
	NumGuests int       `json:"numGuests"`
	StartAt   time.Time `json:"startAt"`
	Notes     string    `json:"notes"`
}

type customerView struct {
	model.Customer
	FullName string `json:"fullName"`
}

type reservationView struct {
	ID               uint64    `json:"id"`
	CustomerID       uint64    `json:"customerId"`
	NumGuests        int       `json:"numGuests"`
	StartAt          time.Time `json:"startAt"`
	FormattedStartAt string    `json:"formattedStartAt"`
	Notes            *string   `json:"notes"`
}

func viewCustomer(c model.Customer) customerView {
	return customerView{Customer: c, FullName: c.FullName()}
}

func viewCustomers(cs []model.Customer) []customerView {
	out := make([]customerView, 0, len(cs))
	for _, c := range cs {
		out = append(out, viewCustomer(c))
	}
	return out
}

func viewReservation(r *model.Reservation) reservationView {
	return reservationView{
		ID:               r.ID,
		CustomerID:       r.CustomerID,
		NumGuests:        r.NumGuests(),
		StartAt:          r.StartAt,
		FormattedStartAt: r.FormattedStartAt(),
		Notes:            r.Notes,
	}
}

func viewReservations(rs []*model.Reservation) []reservationView {
	out := make([]reservationView, 0, len(rs))
	for _, r := range rs {
		out = append(out, viewReservation(r))
	}
	return out
}

// ----- handlers -----

// List handles GET /v1/customers.  With a search parameter it runs the
// name search instead of listing everyone.
func (h *CustomerHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	var (
		customers []model.Customer
		err       error
	)
	if q, ok := c.QueryParams()["search"]; ok && len(q) > 0 {
		customers, err = h.Customers.SearchByName(ctx, q[0])
	} else {
		customers, err = h.Customers.List(ctx)
	}
	if err != nil {
		return writeError(c, h.Log, err, "failed to list customers")
	}
	return c.JSON(http.StatusOK, echo.Map{"customers": viewCustomers(customers)})
}

// Top handles GET /v1/customers/top?limit=N.
func (h *CustomerHandler) Top(c echo.Context) error {
	limit := repository.DefaultTopLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	customers, err := h.Customers.TopByReservationCount(ctx, limit)
	if err != nil {
		return writeError(c, h.Log, err, "failed to rank customers")
	}
	return c.JSON(http.StatusOK, echo.Map{"customers": viewCustomers(customers)})
}

// Get handles GET /v1/customers/:id and includes the customer's
// reservations.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	customer, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err, "failed to load customer")
	}
	reservations, err := h.Customers.Reservations(ctx, *customer)
	if err != nil {
		return writeError(c, h.Log, err, "failed to load reservations")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"customer":     viewCustomer(*customer),
		"reservations": viewReservations(reservations),
	})
}

// Create handles POST /v1/customers.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	customer := model.NewCustomer(req.FirstName, req.LastName, req.Phone, req.Notes)
	if err := h.Customers.Save(ctx, customer); err != nil {
		return writeError(c, h.Log, err, "failed to create customer")
	}
	return c.JSON(http.StatusCreated, echo.Map{"customer": viewCustomer(*customer)})
}

// Update handles PUT /v1/customers/:id, replacing every editable field.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	customer := model.NewCustomer(req.FirstName, req.LastName, req.Phone, req.Notes)
	customer.ID = id
	if err := h.Customers.Save(ctx, customer); err != nil {
		return writeError(c, h.Log, err, "failed to update customer")
	}
	return c.JSON(http.StatusOK, echo.Map{"customer": viewCustomer(*customer)})
}

// AddReservation handles POST /v1/customers/:id/reservations.
func (h *CustomerHandler) AddReservation(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.StartAt.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startAt is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	customer, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err, "failed to load customer")
	}
	reservation, err := model.NewReservation(customer.ID, req.NumGuests, req.StartAt, model.OptionalString(req.Notes))
	if err != nil {
		return writeError(c, h.Log, err, "invalid reservation")
	}
	if err := h.Reservations.Save(ctx, reservation); err != nil {
		return writeError(c, h.Log, err, "failed to create reservation")
	}

	publishSaved(ctx, h.Events, "created", reservation, *customer)
	return c.JSON(http.StatusCreated, echo.Map{"reservation": viewReservation(reservation)})
}
