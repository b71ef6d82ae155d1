package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	autoscope "github.com/dukerupert/autoscope"
)

// S3Store implements SnapshotStore on AWS S3.
type S3Store struct {
	client S3Client
	bucket string
	prefix string
}

// S3Client is the subset of the S3 API the store uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

func NewS3Store(client S3Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Save uploads the snapshot and returns its key.
func (s *S3Store) Save(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := newSnapshotKey(time.Now())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}
	return key, nil
}

// Load fetches one snapshot by key.
func (s *S3Store) Load(ctx context.Context, key string) (*autoscope.Snapshot, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, autoscope.NotFound("Snapshot %q not found", key)
		}
		return nil, fmt.Errorf("failed to fetch snapshot from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot body: %w", err)
	}

	var snapshot autoscope.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %q: %w", key, err)
	}
	return &snapshot, nil
}

// LoadLatest returns the most recently saved snapshot.
func (s *S3Store) LoadLatest(ctx context.Context) (*autoscope.Snapshot, error) {
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
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	keys := []string{}
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(s.objectKey("snapshot_")),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots in S3: %w", err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, s.stripPrefix(aws.ToString(obj.Key)))
		}
		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *S3Store) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func (s *S3Store) stripPrefix(objectKey string) string {
	if s.prefix == "" {
		return objectKey
	}
	return objectKey[len(s.prefix)+1:]
}
