package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStorage implements Storage on a Google Cloud Storage bucket.
type GCSStorage struct {
	client        *storage.Client
	bucket        string
	objectPrefix  string
	publicBaseURL string
}

// NewGCSStorage creates a GCS-backed storage. With an empty credentialsFile
// the client uses application default credentials.
func NewGCSStorage(ctx context.Context, bucket, objectPrefix, publicBaseURL, credentialsFile string) (*GCSStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:        client,
		bucket:        bucket,
		objectPrefix:  strings.Trim(objectPrefix, "/"),
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *GCSStorage) objectName(name string) string {
	if s.objectPrefix != "" {
		return s.objectPrefix + "/" + name
	}
	return name
}

// Save uploads the object and returns its URL.
func (s *GCSStorage) Save(ctx context.Context, objectName string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(s.objectName(objectName)).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload of %s: %w", objectName, err)
	}
	return s.URL(objectName), nil
}

// Open returns a reader for the object.
func (s *GCSStorage) Open(ctx context.Context, objectName string) (io.ReadCloser, error) {
	return s.client.Bucket(s.bucket).Object(s.objectName(objectName)).NewReader(ctx)
}

// Exists checks whether the object is present in the bucket.
func (s *GCSStorage) Exists(ctx context.Context, objectName string) bool {
	_, err := s.client.Bucket(s.bucket).Object(s.objectName(objectName)).Attrs(ctx)
	return err == nil
}

// URL returns the public URL for an object.
func (s *GCSStorage) URL(objectName string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + objectName
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, s.objectName(objectName))
}

// List returns the object names under the given prefix, with the configured
// object prefix stripped.
func (s *GCSStorage) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.objectName(prefix)})

	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}
		name := attrs.Name
		if s.objectPrefix != "" {
			name = strings.TrimPrefix(name, s.objectPrefix+"/")
		}
		names = append(names, name)
	}
	return names, nil
}

// Delete removes the object. Missing objects are not an error.
func (s *GCSStorage) Delete(ctx context.Context, objectName string) error {
	err := s.client.Bucket(s.bucket).Object(s.objectName(objectName)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete %s: %w", objectName, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSStorage) Close() error {
	return s.client.Close()
}
