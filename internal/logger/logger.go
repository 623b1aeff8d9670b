// Package logger builds the process logger and the request-logging
// middleware.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// New returns a logrus logger writing to stdout.  level is any logrus
// level name (defaults to info); format is "json" or "text".
func New(level, format string) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, format)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(w io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Middleware logs one line per request with method, path, status and
// latency.  5xx responses are logged at error level.
func Middleware(l logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the response so the status below is final
				c.Error(err)
			}

			req := c.Request()
			path := req.URL.Path
			if raw := req.URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}
			status := c.Response().Status
			entry := l.WithFields(logrus.Fields{
				"method":  req.Method,
				"path":    path,
				"status":  status,
				"latency": time.Since(start).String(),
				"ip":      c.RealIP(),
			})
			if status >= 500 {
				entry.Error("request failed")
			} else {
				entry.Info("request")
			}
			return nil
		}
	}
}
