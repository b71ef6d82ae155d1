// Package storage persists inspection snapshots to local disk or S3.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	autoscope "github.com/dukerupert/autoscope"
)

// Config holds configuration for snapshot storage backends.
type Config struct {
	Provider  string // "local" or "s3"
	LocalPath string // Directory for local snapshots
	S3Bucket  string // S3 bucket name
	S3Region  string // S3 region
	S3Prefix  string // Key prefix inside the bucket
}

// NewSnapshotStore creates a snapshot store based on the provider
// configuration.
func NewSnapshotStore(ctx context.Context, logger *slog.Logger, cfg Config) (autoscope.SnapshotStore, error) {
	switch cfg.Provider {
	case "s3":
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		logger.Info("initialized S3 snapshot storage",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), nil

	default: // "local"
		store, err := NewLocalStore(cfg.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create local snapshot storage: %w", err)
		}

		logger.Info("initialized local snapshot storage", slog.String("path", cfg.LocalPath))
		return store, nil
	}
}

// newSnapshotKey builds a key whose lexical order is chronological, so
// the latest snapshot is always the last key in a sorted listing.
func newSnapshotKey(now time.Time) string {
	return fmt.Sprintf("snapshot_%s_%s.json", now.UTC().Format("20060102T150405.000000000"), uuid.New().String()[:8])
}

// LocalStore implements SnapshotStore on local disk, one JSON file per
// snapshot.
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Save writes the snapshot and returns its key.
func (s *LocalStore) Save(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := newSnapshotKey(time.Now())
	if err := os.WriteFile(filepath.Join(s.basePath, key), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return key, nil
}

// Load reads one snapshot by key.
func (s *LocalStore) Load(ctx context.Context, key string) (*autoscope.Snapshot, error) {
	// Keys are flat names; reject anything that escapes the directory.
	if key != filepath.Base(key) {
		return nil, autoscope.Invalid("Invalid snapshot key %q", key)
	}

	data, err := os.ReadFile(filepath.Join(s.basePath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, autoscope.NotFound("Snapshot %q not found", key)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot autoscope.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %q: %w", key, err)
	}
	return &snapshot, nil
}

// LoadLatest returns the most recently saved snapshot.
func (s *LocalStore) LoadLatest(ctx context.Context) (*autoscope.Snapshot, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, autoscope.NotFound("No snapshots saved yet")
	}
	return s.Load(ctx, keys[len(keys)-1])
}

// List returns all snapshot keys in chronological order.
func (s *LocalStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "snapshot_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys, nil
}
