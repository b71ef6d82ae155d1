package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/eventbus"
	"github.com/dukerupert/autoscope/inspection"
	"github.com/dukerupert/autoscope/internal/autosave"
	"github.com/dukerupert/autoscope/internal/email"
	"github.com/dukerupert/autoscope/internal/middleware"
	"github.com/dukerupert/autoscope/internal/storage"
	"github.com/dukerupert/autoscope/postgres"
	"github.com/dukerupert/autoscope/report"
	"github.com/dukerupert/autoscope/store"
)

// Services holds all application services.
type Services struct {
	Bus               *eventbus.Bus
	Store             *store.Store
	InspectionService *inspection.Service
	SnapshotStore     autoscope.SnapshotStore
	EmailService      autoscope.EmailService
	Reports           *report.Builder
	Autosave          *autosave.Saver

	pool *pgxpool.Pool
}

// initServices wires the event bus, store, domain service and the
// supporting services together.
func initServices(ctx context.Context, cfg *Config, logger *slog.Logger) (*Services, error) {
	bus := eventbus.New(logger)
	st := store.New(bus, logger)
	svc := inspection.NewService(st, bus, logger)
	svc.InitDefaultData()

	middleware.ObserveBus(bus)

	snapshots, pool, err := initSnapshotStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("snapshot storage initialized", slog.String("provider", cfg.StorageProvider))

	emailService := initEmailService(cfg, logger)
	logger.Info("email service initialized", slog.String("provider", cfg.EmailProvider))

	services := &Services{
		Bus:               bus,
		Store:             st,
		InspectionService: svc,
		SnapshotStore:     snapshots,
		EmailService:      emailService,
		Reports:           report.NewBuilder(st, logger),
		Autosave:          autosave.New(svc, st, snapshots, logger),
		pool:              pool,
	}

	if cfg.RestoreOnStart {
		restoreLatest(ctx, svc, snapshots, logger)
	}
	return services, nil
}

// Close releases held resources.
func (s *Services) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// initSnapshotStore creates the configured snapshot store. The returned
// pool is non-nil only for the postgres provider.
func initSnapshotStore(ctx context.Context, cfg *Config, logger *slog.Logger) (autoscope.SnapshotStore, *pgxpool.Pool, error) {
	if cfg.StorageProvider == "postgres" {
		pool, err := postgres.Open(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := postgres.Migrate(pool, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		return postgres.NewSnapshotStore(pool), pool, nil
	}

	snapshots, err := storage.NewSnapshotStore(ctx, logger, storage.Config{
		Provider:  cfg.StorageProvider,
		LocalPath: cfg.StorageLocalPath,
		S3Bucket:  cfg.StorageS3Bucket,
		S3Region:  cfg.StorageS3Region,
		S3Prefix:  cfg.StorageS3Prefix,
	})
	if err != nil {
		return nil, nil, err
	}
	return snapshots, nil, nil
}

// initEmailService creates the appropriate email service implementation.
func initEmailService(cfg *Config, logger *slog.Logger) autoscope.EmailService {
	return email.NewEmailService(logger, autoscope.EmailConfig{
		Provider:             cfg.EmailProvider,
		FromAddress:          cfg.EmailFromAddress,
		FromName:             cfg.EmailFromName,
		PostmarkServerToken:  cfg.EmailPostmarkToken,
		PostmarkAccountToken: cfg.EmailPostmarkAccount,
	})
}

// restoreLatest loads the most recent snapshot, if any, into the store.
func restoreLatest(ctx context.Context, svc *inspection.Service, snapshots autoscope.SnapshotStore, logger *slog.Logger) {
	snapshot, err := snapshots.LoadLatest(ctx)
	if err != nil {
		if autoscope.IsErrorCode(err, autoscope.ENOTFOUND) {
			logger.Info("no saved snapshot, starting fresh")
		} else {
			logger.Error("failed to load latest snapshot", slog.String("error", err.Error()))
		}
		return
	}
	if err := svc.Import(snapshot); err != nil {
		logger.Error("failed to restore snapshot", slog.String("error", err.Error()))
		return
	}
	logger.Info("restored latest snapshot")
}
