// Package autosave periodically persists inspection snapshots.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/store"
)

// Saver snapshots the inspection on a cron schedule. Runs with no work
// to save are skipped by comparing store generations.
type Saver struct {
	cron      *cron.Cron
	service   autoscope.InspectionService
	store     *store.Store
	snapshots autoscope.SnapshotStore
	logger    *slog.Logger
	timeout   time.Duration

	mu      sync.Mutex
	lastGen uint64
}

func New(service autoscope.InspectionService, st *store.Store, snapshots autoscope.SnapshotStore, logger *slog.Logger) *Saver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Saver{
		cron:      cron.New(),
		service:   service,
		store:     st,
		snapshots: snapshots,
		logger:    logger,
		timeout:   30 * time.Second,
	}
}

// Start schedules autosaves. The schedule uses standard cron syntax,
// e.g. "*/5 * * * *" for every five minutes.
func (s *Saver) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.SaveNow(ctx); err != nil {
			s.logger.Error("autosave failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("autosave started", slog.String("schedule", schedule))
	return nil
}

// Stop halts the schedule and waits for an in-flight save to finish.
func (s *Saver) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("autosave stopped")
}

// SaveNow persists a snapshot immediately. Returns the snapshot key, or
// "" when the data has not changed since the last save.
func (s *Saver) SaveNow(ctx context.Context) (string, error) {
	gen := s.store.Generation()

	s.mu.Lock()
	unchanged := gen == s.lastGen
	s.mu.Unlock()
	if unchanged {
		s.logger.Debug("autosave skipped, no changes")
		return "", nil
	}

	key, err := s.snapshots.Save(ctx, s.service.Export())
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.lastGen = gen
	s.mu.Unlock()

	s.logger.Info("autosave completed", slog.String("key", key))
	return key, nil
}
