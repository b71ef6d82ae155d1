package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	autoscope "github.com/dukerupert/autoscope"
)

// Compile-time interface check
var _ autoscope.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore persists snapshots as JSONB rows.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Save inserts the snapshot and returns its key.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshot_%s_%s", time.Now().UTC().Format("20060102T150405.000000000"), uuid.New().String()[:8])
	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (key, payload, created_at) VALUES ($1, $2, now())`,
		key, payload,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return key, nil
}

// Load fetches one snapshot by key.
func (s *SnapshotStore) Load(ctx context.Context, key string) (*autoscope.Snapshot, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM snapshots WHERE key = $1`, key,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, autoscope.NotFound("Snapshot %q not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var snapshot autoscope.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %q: %w", key, err)
	}
	return &snapshot, nil
}

// LoadLatest returns the most recently saved snapshot.
func (s *SnapshotStore) LoadLatest(ctx context.Context) (*autoscope.Snapshot, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM snapshots ORDER BY created_at DESC, key DESC LIMIT 1`,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, autoscope.NotFound("No snapshots saved yet")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	var snapshot autoscope.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode latest snapshot: %w", err)
	}
	return &snapshot, nil
}

// List returns all snapshot keys in chronological order.
func (s *SnapshotStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key FROM snapshots ORDER BY created_at ASC, key ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
