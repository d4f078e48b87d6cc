package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"campusmarket/internal/config"
)

// Storage persists uploaded photos and returns public URLs for them.
type Storage interface {
	UploadDataURI(ctx context.Context, folder, dataURI string) (string, error)
	DeletePhoto(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	config *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	m := &MinIOClient{client: client, config: cfg}

	exists, err := client.BucketExists(context.Background(), cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		err = client.MakeBucket(context.Background(), cfg.MinIO.BucketName,
			minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return m, nil
}

// UploadDataURI decodes a "data:<mime>;base64,<payload>" photo and uploads it,
// returning the object URL. Plain URLs are returned unchanged so callers can
// pass whatever the client submitted.
func (m *MinIOClient) UploadDataURI(ctx context.Context, folder, dataURI string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return dataURI, nil
	}

	header, payload, found := strings.Cut(dataURI, ",")
	if !found {
		return "", fmt.Errorf("malformed data URI")
	}

	contentType := "application/octet-stream"
	if meta := strings.TrimPrefix(header, "data:"); meta != "" {
		contentType = strings.TrimSuffix(meta, ";base64")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode photo data: %w", err)
	}

	fileExt := ".jpg"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 && parts[1] != "" {
		fileExt = "." + parts[1]
	}

	now := time.Now()
	objectName := fmt.Sprintf("%s/%d/%02d/%s%s",
		folder,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	_, err = m.client.PutObject(ctx, m.config.MinIO.BucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	scheme := "http"
	if m.config.MinIO.UseSSL {
		scheme = "https"
	}

	photoURL := fmt.Sprintf("%s://%s/%s/%s",
		scheme,
		m.config.MinIO.Endpoint,
		m.config.MinIO.BucketName,
		objectName)

	return photoURL, nil
}

func (m *MinIOClient) DeletePhoto(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete from MinIO: %w", err)
	}
	return nil
}
