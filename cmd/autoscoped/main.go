package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	autoscopehttp "github.com/dukerupert/autoscope/http"
)

func main() {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	ctx := context.Background()
	if err := run(ctx, os.Stdout, os.Stderr, os.Args, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main entry point for the application, designed for testability.
// It accepts all external dependencies (IO, args, env) as parameters.
func run(
	ctx context.Context,
	stdout, stderr io.Writer,
	args []string,
	getenv func(string) string,
) error {
	cfg, err := LoadConfig(getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(stderr, cfg)
	slog.SetDefault(logger)
	logger.Debug("application configuration",
		slog.String("environment", cfg.Environment),
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("storage", cfg.StorageProvider))

	services, err := initServices(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer services.Close()

	if cfg.AutosaveEnabled {
		if err := services.Autosave.Start(cfg.AutosaveSchedule); err != nil {
			return fmt.Errorf("starting autosave: %w", err)
		}
		defer services.Autosave.Stop()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := autoscopehttp.NewServer(autoscopehttp.Config{
		Addr:              addr,
		Logger:            logger,
		InspectionService: services.InspectionService,
		SnapshotStore:     services.SnapshotStore,
		EmailService:      services.EmailService,
		Reports:           services.Reports,
	})

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", addr))
		if err := server.Open(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	logger.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()

	// Best-effort final save before the process exits.
	if cfg.AutosaveEnabled {
		if _, err := services.Autosave.SaveNow(shutdownCtx); err != nil {
			logger.Error("final autosave failed", slog.String("error", err.Error()))
		}
	}

	if err := server.Close(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exited gracefully")
	return nil
}

// newLogger creates a configured slog.Logger based on environment.
func newLogger(w io.Writer, cfg *Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Environment == "prod" || cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("time", a.Value.Time().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
