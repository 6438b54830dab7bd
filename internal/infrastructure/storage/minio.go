package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/pkg/config"
)

const snapshotPrefix = "analyses/"

// Snapshot describes one archived analysis result
type Snapshot struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// MinIOClient archives analysis snapshots in a MinIO bucket
type MinIOClient struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
		now:    time.Now,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket when it does not exist
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// SnapshotKey builds the object name of a snapshot taken at ts
func SnapshotKey(videoID string, ts time.Time) string {
	return fmt.Sprintf("%s%s/%s.json", snapshotPrefix, videoID, ts.UTC().Format("20060102T150405.000000000Z"))
}

// ArchiveResult uploads result as a JSON object and returns its key
func (m *MinIOClient) ArchiveResult(ctx context.Context, videoID string, result entities.AnalysisResult) (string, error) {
	body, err := json.Marshal(result.Normalize())
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := SnapshotKey(videoID, m.now())
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return key, nil
}

// ListSnapshots lists archived snapshots of a video, oldest first
func (m *MinIOClient) ListSnapshots(ctx context.Context, videoID string) ([]Snapshot, error) {
	prefix := snapshotPrefix + strings.TrimSuffix(videoID, "/") + "/"
	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	snapshots := []Snapshot{}
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		snapshots = append(snapshots, Snapshot{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Key < snapshots[j].Key })
	return snapshots, nil
}

// GetSnapshot downloads and decodes one archived result
func (m *MinIOClient) GetSnapshot(ctx context.Context, key string) (*entities.AnalysisResult, error) {
	if !strings.HasPrefix(key, snapshotPrefix) {
		return nil, fmt.Errorf("not a snapshot key: %s", key)
	}
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer obj.Close()

	var result entities.AnalysisResult
	if err := json.NewDecoder(obj).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &result, nil
}
