package infra

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/uploadhub/uploadhub/config"
)

// MinioClient mirrors ingested files into an object-store bucket. The local
// disk remains the source of truth; the archive is a best-effort copy
// maintained by the consumer worker.
type MinioClient struct {
	Client        *minio.Client
	ArchiveBucket string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.RootUser, cfg.Minio.RootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Client:        client,
		ArchiveBucket: cfg.Minio.ArchiveBucket,
	}
}

// EnsureArchiveBucket creates the archive bucket if it does not exist yet.
func (m *MinioClient) EnsureArchiveBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.ArchiveBucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.Client.MakeBucket(ctx, m.ArchiveBucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	return nil
}

// ArchiveFile copies a stored file from disk into the archive bucket.
func (m *MinioClient) ArchiveFile(ctx context.Context, objectName, path, contentType string) error {
	_, err := m.Client.FPutObject(ctx, m.ArchiveBucket, objectName, path, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", objectName, err)
	}
	return nil
}

// RemoveArchivedFile drops the mirror copy of a permanently removed upload.
func (m *MinioClient) RemoveArchivedFile(ctx context.Context, objectName string) error {
	err := m.Client.RemoveObject(ctx, m.ArchiveBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove archived %s: %w", objectName, err)
	}
	return nil
}
