package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	autoscope "github.com/dukerupert/autoscope"
)

func (s *Server) handleExport(c echo.Context) error {
	return RespondOK(c, s.inspectionService.Export())
}

func (s *Server) handleImport(c echo.Context) error {
	var snapshot autoscope.Snapshot
	if err := c.Bind(&snapshot); err != nil {
		return autoscope.Invalid("Invalid snapshot payload")
	}

	if err := s.inspectionService.Import(&snapshot); err != nil {
		return err
	}

	s.log(c).Info("snapshot imported", slog.String("version", snapshot.Version))
	return RespondSuccess(c, "Snapshot imported")
}

func (s *Server) handleListSnapshots(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	keys, err := s.snapshotStore.List(ctx)
	if err != nil {
		return err
	}
	return RespondOK(c, map[string]any{"snapshots": keys})
}

// SaveSnapshotResponse returns the key of a persisted snapshot.
type SaveSnapshotResponse struct {
	Key string `json:"key"`
}

func (s *Server) handleSaveSnapshot(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	key, err := s.snapshotStore.Save(ctx, s.inspectionService.Export())
	if err != nil {
		return err
	}

	s.log(c).Info("snapshot saved", slog.String("key", key))
	return RespondCreated(c, SaveSnapshotResponse{Key: key})
}

func (s *Server) handleGetSnapshot(c echo.Context) error {
	key, err := requireParam(c, "key")
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	snapshot, err := s.snapshotStore.Load(ctx, key)
	if err != nil {
		return err
	}
	return RespondOK(c, snapshot)
}

func (s *Server) handleLoadLatestSnapshot(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	snapshot, err := s.snapshotStore.LoadLatest(ctx)
	if err != nil {
		return err
	}
	return RespondOK(c, snapshot)
}

func (s *Server) handleRestoreSnapshot(c echo.Context) error {
	key, err := requireParam(c, "key")
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	snapshot, err := s.snapshotStore.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := s.inspectionService.Import(snapshot); err != nil {
		return err
	}

	s.log(c).Info("snapshot restored", slog.String("key", key))
	return RespondSuccess(c, "Snapshot restored")
}

func (s *Server) handleReset(c echo.Context) error {
	s.inspectionService.Reset()
	s.log(c).Info("inspection data reset")
	return RespondSuccess(c, "Inspection reset")
}
