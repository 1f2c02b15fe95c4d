// File: /services/storage_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"fitlink-api/config"
)

// MaxImageSize caps uploads at 10 MB.
const MaxImageSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// StorageService stores uploaded images in an S3-compatible bucket and hands
// back public URLs. The rest of the API treats those URLs as opaque strings.
type StorageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &StorageService{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimRight(cfg.StoragePublicURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket on first boot.
func (ss *StorageService) EnsureBucket(ctx context.Context) error {
	exists, err := ss.client.BucketExists(ctx, ss.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := ss.client.MakeBucket(ctx, ss.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Store uploads an image and returns its public URL. Keys are namespaced by
// folder ("avatars", "activities") and never reuse the client's file name.
func (ss *StorageService) Store(ctx context.Context, folder, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	if !allowedImageTypes[contentType] {
		return "", ValidationError("Image must be jpeg, png or webp")
	}
	if size > MaxImageSize {
		return "", ValidationError("Image exceeds the 10MB limit")
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), strings.ToLower(filepath.Ext(fileName)))

	_, err := ss.client.PutObject(ctx, ss.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", ss.publicURL, ss.bucket, key), nil
}
