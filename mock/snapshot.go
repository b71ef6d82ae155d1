package mock

import (
	"context"

	autoscope "github.com/dukerupert/autoscope"
)

// Compile-time interface check
var _ autoscope.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of autoscope.SnapshotStore.
type SnapshotStore struct {
	SaveFn       func(ctx context.Context, snapshot *autoscope.Snapshot) (string, error)
	LoadFn       func(ctx context.Context, key string) (*autoscope.Snapshot, error)
	LoadLatestFn func(ctx context.Context) (*autoscope.Snapshot, error)
	ListFn       func(ctx context.Context) ([]string, error)
}

func (s *SnapshotStore) Save(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, snapshot)
	}
	return "snapshot_mock", nil
}

func (s *SnapshotStore) Load(ctx context.Context, key string) (*autoscope.Snapshot, error) {
	if s.LoadFn != nil {
		return s.LoadFn(ctx, key)
	}
	return nil, autoscope.NotFound("Snapshot %q not found", key)
}

func (s *SnapshotStore) LoadLatest(ctx context.Context) (*autoscope.Snapshot, error) {
	if s.LoadLatestFn != nil {
		return s.LoadLatestFn(ctx)
	}
	return nil, autoscope.NotFound("No snapshots saved yet")
}

func (s *SnapshotStore) List(ctx context.Context) ([]string, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []string{}, nil
}
