package autoscope

import (
	"context"
	"time"
)

// SnapshotVersion is the current export format version.
const SnapshotVersion = "2.0"

// Snapshot is the plain import/export form of a session. Imports are
// merged against the static catalog so a corrupted or stale snapshot can
// never desynchronize the point set.
type Snapshot struct {
	Version     string                      `json:"version"`
	ExportDate  time.Time                   `json:"exportDate"`
	VehicleInfo VehicleInfo                 `json:"vehicleInfo"`
	Points      map[string]*InspectionPoint `json:"points"`
}

// SnapshotStore persists exported snapshots.
type SnapshotStore interface {
	// Save persists a snapshot and returns its storage key.
	Save(ctx context.Context, snap *Snapshot) (string, error)

	// Load retrieves the snapshot stored under key.
	// Returns ENOTFOUND if no such snapshot exists.
	Load(ctx context.Context, key string) (*Snapshot, error)

	// LoadLatest retrieves the most recently saved snapshot.
	// Returns ENOTFOUND if nothing has been saved yet.
	LoadLatest(ctx context.Context) (*Snapshot, error)

	// List returns the stored snapshot keys in chronological order,
	// oldest first.
	List(ctx context.Context) ([]string, error)
}
