package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
)

type gcsStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCS wires object storage to a Google Cloud Storage bucket using
// application default credentials.
func NewGCS(ctx context.Context, bucket string) (ObjectStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &gcsStorage{client: client, bucket: bucket}, nil
}

func (s *gcsStorage) Put(ctx context.Context, path string, data []byte, visibility Visibility) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(path)

	w := obj.NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("gcs write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", path, err)
	}

	if visibility == VisibilityPublic {
		if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
			return "", fmt.Errorf("gcs acl %s: %w", path, err)
		}
	}

	return path, nil
}

func (s *gcsStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(path).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *gcsStorage) Delete(ctx context.Context, path string) error {
	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (s *gcsStorage) TemporaryURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(path, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(ttl),
		Scheme:  gcs.SigningSchemeV4,
	})
}

func (s *gcsStorage) Size(ctx context.Context, path string) (int64, error) {
	attrs, err := s.client.Bucket(s.bucket).Object(path).Attrs(ctx)
	if err != nil {
		return 0, err
	}
	return attrs.Size, nil
}

func (s *gcsStorage) MimeType(ctx context.Context, path string) (string, error) {
	attrs, err := s.client.Bucket(s.bucket).Object(path).Attrs(ctx)
	if err != nil {
		return "", err
	}
	return attrs.ContentType, nil
}
