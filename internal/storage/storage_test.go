package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autoscope "github.com/dukerupert/autoscope"
)

func testSnapshot(mileage int) *autoscope.Snapshot {
	points := map[string]*autoscope.InspectionPoint{}
	for _, cfg := range autoscope.Catalog() {
		points[cfg.ID] = autoscope.NewPointFromConfig(cfg)
	}
	info := autoscope.DefaultVehicleInfo()
	info.Mileage = mileage
	return &autoscope.Snapshot{
		Version:     autoscope.SnapshotVersion,
		ExportDate:  time.Now(),
		VehicleInfo: info,
		Points:      points,
	}
}

func TestLocalStoreSaveLoad(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, testSnapshot(50000))
	require.NoError(t, err)
	assert.Contains(t, key, "snapshot_")

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, autoscope.SnapshotVersion, loaded.Version)
	assert.Equal(t, 50000, loaded.VehicleInfo.Mileage)
	assert.Len(t, loaded.Points, 18)
}

func TestLocalStoreLoadLatest(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.LoadLatest(ctx)
	assert.Equal(t, autoscope.ENOTFOUND, autoscope.ErrorCode(err))

	_, err = store.Save(ctx, testSnapshot(50000))
	require.NoError(t, err)
	_, err = store.Save(ctx, testSnapshot(60000))
	require.NoError(t, err)

	latest, err := store.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60000, latest.VehicleInfo.Mileage)
}

func TestLocalStoreList(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	// Unrelated files in the directory are not snapshots.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	for i := 0; i < 3; i++ {
		_, err := store.Save(ctx, testSnapshot(50000+i))
		require.NoError(t, err)
	}

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 3)
}

func TestLocalStoreLoadMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "snapshot_nope.json")
	assert.Equal(t, autoscope.ENOTFOUND, autoscope.ErrorCode(err))
}

func TestLocalStoreRejectsPathTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "../etc/passwd")
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(err))
}

func TestNewSnapshotStoreDefaultsToLocal(t *testing.T) {
	store, err := NewSnapshotStore(context.Background(), discardLogger(), Config{
		LocalPath: t.TempDir(),
	})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)
}
