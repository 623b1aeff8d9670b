package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/lunchly/internal/model"
	"github.com/iliyamo/lunchly/internal/repository"
)

// writeError maps store and model errors onto HTTP responses:
// not found -> 404, invalid argument -> 400, anything else -> 500 with a
// generic message (the cause is logged, not returned).
func writeError(c echo.Context, log logrus.FieldLogger, err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	log.WithError(err).WithField("path", c.Path()).Error(what)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": what})
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}
