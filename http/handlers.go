package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	autoscope "github.com/dukerupert/autoscope"
)

// withTimeout creates a context with a timeout for handler operations.
func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), DefaultTimeout)
}

// requireParam extracts a required route parameter, returning error if empty.
func requireParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", autoscope.Invalid("%s is required", name)
	}
	return value, nil
}

// bind binds the request body to a struct and validates it.
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return autoscope.Invalid("Invalid request body")
	}
	if err := c.Validate(v); err != nil {
		return autoscope.Invalid("%s", err.Error())
	}
	return nil
}

// log returns the request-scoped logger.
func (s *Server) log(c echo.Context) *slog.Logger {
	return s.getRequestLogger(c)
}

// Health handlers

func (s *Server) handleHealthCheck(c echo.Context) error {
	return RespondOK(c, map[string]string{"status": "ok"})
}

func (s *Server) handleLivenessCheck(c echo.Context) error {
	return RespondOK(c, map[string]string{"status": "alive"})
}

func (s *Server) handleReadinessCheck(c echo.Context) error {
	if s.snapshotStore != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
		defer cancel()
		if _, err := s.snapshotStore.List(ctx); err != nil {
			return Respond(c, 503, map[string]string{"status": "not ready"})
		}
	}
	return RespondOK(c, map[string]string{"status": "ready"})
}
