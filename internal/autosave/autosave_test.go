package autosave

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/eventbus"
	"github.com/dukerupert/autoscope/inspection"
	"github.com/dukerupert/autoscope/mock"
	"github.com/dukerupert/autoscope/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSaver(t *testing.T) (*Saver, *inspection.Service, *mock.SnapshotStore) {
	t.Helper()
	bus := eventbus.New(discard())
	st := store.New(bus, discard())
	svc := inspection.NewService(st, bus, discard())
	svc.InitDefaultData()
	snapshots := &mock.SnapshotStore{}
	return New(svc, st, snapshots, discard()), svc, snapshots
}

func TestSaveNowPersistsSnapshot(t *testing.T) {
	saver, _, snapshots := newTestSaver(t)

	var saved *autoscope.Snapshot
	snapshots.SaveFn = func(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
		saved = snapshot
		return "snapshot_test", nil
	}

	key, err := saver.SaveNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "snapshot_test", key)
	require.NotNil(t, saved)
	assert.Len(t, saved.Points, 18)
}

func TestSaveNowSkipsUnchangedData(t *testing.T) {
	saver, svc, snapshots := newTestSaver(t)

	saves := 0
	snapshots.SaveFn = func(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
		saves++
		return "snapshot_test", nil
	}

	_, err := saver.SaveNow(context.Background())
	require.NoError(t, err)

	// Nothing changed; second run is a no-op.
	key, err := saver.SaveNow(context.Background())
	require.NoError(t, err)
	assert.Empty(t, key)
	assert.Equal(t, 1, saves)

	_, err = svc.AddIssue(autoscope.IssueInput{
		PointID:     "leftAPillar",
		Type:        autoscope.TypeScratch,
		Severity:    autoscope.SeverityMinor,
		Description: "Scratch",
	})
	require.NoError(t, err)

	_, err = saver.SaveNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, saves)
}

func TestSaveNowKeepsGenerationOnError(t *testing.T) {
	saver, _, snapshots := newTestSaver(t)

	snapshots.SaveFn = func(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
		return "", assert.AnError
	}
	_, err := saver.SaveNow(context.Background())
	require.Error(t, err)

	// The failed generation is retried on the next run.
	snapshots.SaveFn = func(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
		return "snapshot_retry", nil
	}
	key, err := saver.SaveNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "snapshot_retry", key)
}
