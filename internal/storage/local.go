package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem, for development
// and tests. URLs are file:// paths unless a public base URL is configured.
type LocalStorage struct {
	dir           string
	publicBaseURL string
}

// NewLocalStorage creates a local storage rooted at dir.
func NewLocalStorage(dir, publicBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, publicBaseURL: strings.TrimSuffix(publicBaseURL, "/")}, nil
}

func (s *LocalStorage) path(objectName string) string {
	return filepath.Join(s.dir, filepath.FromSlash(objectName))
}

// Save writes the object and returns its URL.
func (s *LocalStorage) Save(ctx context.Context, objectName string, r io.Reader) (string, error) {
	path := s.path(objectName)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", objectName, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return s.URL(objectName), nil
}

// Open returns a reader for the object.
func (s *LocalStorage) Open(ctx context.Context, objectName string) (io.ReadCloser, error) {
	return os.Open(s.path(objectName))
}

// Exists checks whether the object is present.
func (s *LocalStorage) Exists(ctx context.Context, objectName string) bool {
	_, err := os.Stat(s.path(objectName))
	return err == nil
}

// URL returns the public URL for an object.
func (s *LocalStorage) URL(objectName string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + objectName
	}
	return "file://" + s.path(objectName)
}

// List returns the object names under the given prefix.
func (s *LocalStorage) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	root := s.dir
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
	}
	return names, nil
}

// Delete removes the object. Missing objects are not an error.
func (s *LocalStorage) Delete(ctx context.Context, objectName string) error {
	if err := os.Remove(s.path(objectName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", objectName, err)
	}
	return nil
}
