package infra

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// FotoStorage stores device and repair photos in a MinIO bucket.
type FotoStorage struct {
	client *minio.Client
	bucket string
}

func NewFotoStorage(cfg *config.Config) (*FotoStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: create bucket: %w", err)
		}
	}

	return &FotoStorage{client: client, bucket: cfg.MinioBucket}, nil
}

// SubirFoto uploads the image bytes under a generated unique name and
// returns that name, which is what gets persisted in the fotos table.
func (s *FotoStorage) SubirFoto(ctx context.Context, data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	nombre := fmt.Sprintf("foto_%s_%d%s", uuid.New().String()[:8], time.Now().Unix(), ext)

	contentType := "application/octet-stream"
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}

	_, err := s.client.PutObject(ctx, s.bucket, nombre, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage: upload: %w", err)
	}
	return nombre, nil
}

// URLFoto returns a presigned URL valid for one hour.
func (s *FotoStorage) URLFoto(ctx context.Context, nombre string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, nombre, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("storage: presign: %w", err)
	}
	return u.String(), nil
}

// EliminarFoto removes an object; missing objects are not an error.
func (s *FotoStorage) EliminarFoto(ctx context.Context, nombre string) error {
	err := s.client.RemoveObject(ctx, s.bucket, nombre, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("storage: delete: %w", err)
	}
	return nil
}
