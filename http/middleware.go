package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	appmiddleware "github.com/dukerupert/autoscope/internal/middleware"
)

// DefaultTimeout bounds snapshot store operations per request.
const DefaultTimeout = 5 * time.Second

// registerMiddleware sets up all middleware for the server.
func (s *Server) registerMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Logger middleware with request ID
	s.echo.Use(s.requestLoggerMiddleware())

	// Prometheus metrics
	s.echo.Use(appmiddleware.MetricsMiddleware())

	// CORS middleware (configure as needed)
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Custom error handler
	s.echo.HTTPErrorHandler = s.httpErrorHandler
}

// requestLoggerMiddleware creates a middleware that logs requests with context.
func (s *Server) requestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			// Create request-scoped logger
			logger := s.logger.With(
				slog.String("request_id", requestID),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
			)
			c.Set("logger", logger)

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			logAttrs := []any{
				slog.Int("status", status),
				slog.Duration("duration", duration),
			}

			if err != nil {
				logAttrs = append(logAttrs, slog.String("error", err.Error()))
				logger.Error("request failed", logAttrs...)
			} else if status >= 500 {
				logger.Error("request completed with server error", logAttrs...)
			} else if status >= 400 {
				logger.Warn("request completed with client error", logAttrs...)
			} else {
				logger.Info("request completed", logAttrs...)
			}

			return err
		}
	}
}

// httpErrorHandler handles errors and returns appropriate responses.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		if he.Code >= 500 {
			s.logger.Error("http error",
				slog.Int("status", he.Code),
				slog.Any("message", he.Message),
				slog.String("path", c.Path()),
			)
		}
		_ = c.JSON(he.Code, map[string]any{"error": he.Message})
		return
	}

	_ = HandleError(c, s.logger, err)
}

// getRequestLogger retrieves the request-scoped logger from context.
func (s *Server) getRequestLogger(c echo.Context) *slog.Logger {
	if logger, ok := c.Get("logger").(*slog.Logger); ok {
		return logger
	}
	return s.logger
}
