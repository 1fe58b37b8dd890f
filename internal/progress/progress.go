package progress

import (
	"sync"
	"time"
)

// Stage represents the current stage of a render job.
type Stage string

const (
	StageValidating Stage = "validating"
	StageUploading  Stage = "uploading"
	StageSubmitting Stage = "submitting"
	StageRendering  Stage = "rendering"
	StageComplete   Stage = "complete"
	StageError      Stage = "error"
)

// Event is one progress sample for a render job.
type Event struct {
	Stage     Stage     `json:"stage"`
	Progress  float64   `json:"progress"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Tracker accumulates progress events and notifies listeners. The render
// poller writes from its own goroutine, so access is guarded.
type Tracker struct {
	mu        sync.RWMutex
	stage     Stage
	progress  float64
	message   string
	listeners []func(Event)
}

// NewTracker creates a tracker in the validating stage.
func NewTracker() *Tracker {
	return &Tracker{stage: StageValidating}
}

// AddListener registers a listener for future events.
func (t *Tracker) AddListener(listener func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// Update records a new progress sample and notifies listeners.
func (t *Tracker) Update(stage Stage, progress float64, message string) {
	t.mu.Lock()
	t.stage = stage
	t.progress = progress
	t.message = message
	listeners := t.listeners
	t.mu.Unlock()

	event := Event{Stage: stage, Progress: progress, Message: message, Timestamp: time.Now()}
	for _, listener := range listeners {
		listener(event)
	}
}

// Fail records an error event and notifies listeners.
func (t *Tracker) Fail(err error) {
	t.mu.Lock()
	t.stage = StageError
	progress := t.progress
	listeners := t.listeners
	t.mu.Unlock()

	event := Event{
		Stage:     StageError,
		Progress:  progress,
		Message:   err.Error(),
		Timestamp: time.Now(),
		Error:     err.Error(),
	}
	for _, listener := range listeners {
		listener(event)
	}
}

// Current returns the latest progress sample.
func (t *Tracker) Current() Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Event{
		Stage:     t.stage,
		Progress:  t.progress,
		Message:   t.message,
		Timestamp: time.Now(),
	}
}
