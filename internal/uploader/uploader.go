// Package uploader moves clip and music files into asset storage. Each file
// uploads independently: a rejected or failed file never blocks the rest of
// a batch, and a clip is simply absent from the composition's clip list
// until its upload resolves.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clipforge/clip-composer/internal/storage"
)

// Supported upload extensions per asset kind.
var (
	clipExtensions = map[string]struct{}{
		"mp4": {}, "mov": {}, "webm": {}, "mkv": {},
		"jpg": {}, "jpeg": {}, "png": {},
	}
	musicExtensions = map[string]struct{}{
		"mp3": {}, "m4a": {}, "wav": {}, "flac": {},
	}
)

var (
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrFileTooLarge    = errors.New("file exceeds size ceiling")
	ErrUploadNotFound  = errors.New("upload not found")
)

// Kind distinguishes clip uploads from music uploads.
type Kind string

const (
	KindClip  Kind = "clip"
	KindMusic Kind = "music"
)

// Upload statuses.
const (
	StatusUploading = "uploading"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Upload tracks one file's journey into storage.
type Upload struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Kind      Kind      `json:"kind"`
	Status    string    `json:"status"`
	URL       string    `json:"url,omitempty"`
	Error     string    `json:"error,omitempty"`
	StartTime time.Time `json:"startTime"`
}

// Uploader validates files and runs their uploads as independent tasks.
type Uploader struct {
	store    storage.Storage
	maxBytes int64

	mu      sync.RWMutex
	uploads map[string]*Upload
}

// New creates an uploader writing to the given storage with the given
// per-file size ceiling.
func New(store storage.Storage, maxBytes int64) *Uploader {
	return &Uploader{
		store:    store,
		maxBytes: maxBytes,
		uploads:  make(map[string]*Upload),
	}
}

// Validate rejects unsupported or oversized files before any storage call.
func (u *Uploader) Validate(filename string, size int64, kind Kind) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	allowed := clipExtensions
	if kind == KindMusic {
		allowed = musicExtensions
	}
	if _, ok := allowed[ext]; !ok {
		return fmt.Errorf("%w: .%s", ErrUnsupportedType, ext)
	}
	if size > u.maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, u.maxBytes)
	}
	return nil
}

// Start validates the file and, if accepted, begins an asynchronous upload
// task. The returned Upload can be watched via Get until its status is
// terminal.
func (u *Uploader) Start(ctx context.Context, filename string, size int64, kind Kind, r io.Reader) (*Upload, error) {
	up, err := u.track(filename, size, kind)
	if err != nil {
		return nil, err
	}
	go u.run(ctx, up, r)
	return up, nil
}

// Store performs a synchronous upload, used by handlers that already hold
// the whole file.
func (u *Uploader) Store(ctx context.Context, filename string, size int64, kind Kind, r io.Reader) (Upload, error) {
	up, err := u.track(filename, size, kind)
	if err != nil {
		return Upload{}, err
	}
	u.run(ctx, up, r)

	u.mu.RLock()
	defer u.mu.RUnlock()
	if up.Status == StatusFailed {
		return *up, errors.New(up.Error)
	}
	return *up, nil
}

func (u *Uploader) track(filename string, size int64, kind Kind) (*Upload, error) {
	if err := u.Validate(filename, size, kind); err != nil {
		return nil, err
	}

	up := &Upload{
		ID:        uuid.New().String(),
		Filename:  filename,
		Kind:      kind,
		Status:    StatusUploading,
		StartTime: time.Now(),
	}
	u.mu.Lock()
	u.uploads[up.ID] = up
	u.mu.Unlock()
	return up, nil
}

func (u *Uploader) run(ctx context.Context, up *Upload, r io.Reader) {
	objectName := fmt.Sprintf("%ss/%s_%s", up.Kind, up.ID, sanitizeFilename(up.Filename))
	url, err := u.store.Save(ctx, objectName, io.LimitReader(r, u.maxBytes))

	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		up.Status = StatusFailed
		up.Error = err.Error()
		slog.Error("Upload failed", "uploadId", up.ID, "filename", up.Filename, "error", err)
		return
	}
	up.Status = StatusCompleted
	up.URL = url
	slog.Info("Upload completed", "uploadId", up.ID, "filename", up.Filename, "url", url)
}

// Get returns a snapshot of an upload's state.
func (u *Uploader) Get(id string) (Upload, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	up, ok := u.uploads[id]
	if !ok {
		return Upload{}, fmt.Errorf("%w: %s", ErrUploadNotFound, id)
	}
	return *up, nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_", ":", "-")
	return replacer.Replace(filepath.Base(name))
}
