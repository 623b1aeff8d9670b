package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/lunchly/internal/config"
	"github.com/iliyamo/lunchly/internal/handler"
	"github.com/iliyamo/lunchly/internal/middleware"
	"github.com/iliyamo/lunchly/internal/utils"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Customers    *handler.CustomerHandler
	Reservations *handler.ReservationHandler
	DB           handler.Pinger
	Metrics      http.Handler // defaults to promhttp.Handler()
}

// RegisterRoutes registers the probes, /metrics and the /v1 API.  Reads
// are public; writes need a staff access token.  rdb may be nil, which
// disables rate limiting.
func RegisterRoutes(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client, log logrus.FieldLogger) {
	e.GET("/healthz", handler.Health)
	if h.DB != nil {
		e.GET("/readyz", handler.Ready(h.DB))
	}
	metrics := h.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	e.GET("/metrics", echo.WrapHandler(metrics))

	v1 := e.Group("/v1", middleware.NewTokenBucket(cfg.RateLimit, rdb, log))

	v1.POST("/auth/login", h.Auth.Login)

	v1.GET("/customers", h.Customers.List)
	v1.GET("/customers/top", h.Customers.Top)
	v1.GET("/customers/:id", h.Customers.Get)
	v1.GET("/reservations/:id", h.Reservations.Get)

	staff := []echo.MiddlewareFunc{middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(utils.RoleStaff)}
	v1.POST("/customers", h.Customers.Create, staff...)
	v1.PUT("/customers/:id", h.Customers.Update, staff...)
	v1.POST("/customers/:id/reservations", h.Customers.AddReservation, staff...)
	v1.PUT("/reservations/:id", h.Reservations.Update, staff...)
}
