package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Insecure  bool
	// PresignTTL > 0 hands out presigned GET URLs instead of public ones.
	PresignTTL time.Duration
}

type s3Store struct {
	client  *minio.Client
	bucket  string
	host    string
	presign time.Duration
}

func NewS3Store(ctx context.Context, cfg Config) (ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: !cfg.Insecure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	// проверим, что бакет существует
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	scheme := "https"
	if cfg.Insecure {
		scheme = "http"
	}
	return &s3Store{
		client:  client,
		bucket:  cfg.Bucket,
		host:    fmt.Sprintf("%s://%s", scheme, cfg.Endpoint),
		presign: cfg.PresignTTL,
	}, nil
}

func (s *s3Store) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if size < 0 {
		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, r); err != nil {
			return "", fmt.Errorf("read object: %w", err)
		}
		r, size = buf, int64(buf.Len())
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"uploaded-at": time.Now().Format(time.RFC3339)},
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	if s.presign > 0 {
		u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.presign, url.Values{})
		if err != nil {
			return "", fmt.Errorf("presign: %w", err)
		}
		return u.String(), nil
	}
	return s.publicURL(key), nil
}

func (s *s3Store) publicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.host, path.Join(s.bucket, key))
}
