// Package http provides the JSON API over the inspection service.
package http

import (
	"context"
	"log/slog"
	"net"

	"github.com/labstack/echo/v4"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/internal/validation"
	"github.com/dukerupert/autoscope/report"
)

// Server represents the HTTP server with all its dependencies.
type Server struct {
	echo   *echo.Echo
	ln     net.Listener
	logger *slog.Logger

	// Configuration
	Addr string

	// Domain services
	inspectionService autoscope.InspectionService

	// External services
	snapshotStore autoscope.SnapshotStore
	emailService  autoscope.EmailService
	reports       *report.Builder
}

// Config holds the configuration for creating a new Server.
type Config struct {
	Addr   string
	Logger *slog.Logger

	InspectionService autoscope.InspectionService
	SnapshotStore     autoscope.SnapshotStore
	EmailService      autoscope.EmailService
	Reports           *report.Builder
}

// NewServer creates a new HTTP server with the given configuration.
func NewServer(cfg Config) *Server {
	s := &Server{
		Addr:              cfg.Addr,
		logger:            cfg.Logger,
		inspectionService: cfg.InspectionService,
		snapshotStore:     cfg.SnapshotStore,
		emailService:      cfg.EmailService,
		reports:           cfg.Reports,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Validator = validation.NewValidator()

	s.registerMiddleware()
	s.registerRoutes()

	return s
}

// Echo returns the underlying Echo instance.
// Use sparingly - prefer registering routes through Server methods.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Open starts the HTTP server.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.echo.Server.Serve(s.ln); err != nil {
			s.logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	s.logger.Info("server started", slog.String("addr", s.Addr))
	return nil
}

// Close gracefully shuts down the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// URL returns the URL of the server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}
