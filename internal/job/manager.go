package job

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/clipforge/clip-composer/internal/domain"
	"github.com/clipforge/clip-composer/internal/progress"
)

// Manager tracks render jobs in memory. Unlike session edits, jobs are
// mutated from poller goroutines, so access is guarded.
type Manager struct {
	mu   sync.RWMutex
	jobs map[string]*Status
}

// NewManager creates a new job manager.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Status)}
}

// CreateJob registers a new pending job for a composition request and
// returns its id together with the context the background work should run
// under.
func (m *Manager) CreateJob(req domain.CompositionRequest) (Status, context.Context) {
	jobID := fmt.Sprintf("%d", time.Now().UnixNano())
	ctx, cancel := context.WithCancel(context.Background())

	j := &Status{
		ID:         jobID,
		Status:     StatusPending,
		Message:    "Job created",
		StartTime:  time.Now(),
		Request:    req,
		Events:     []progress.Event{},
		cancelFunc: cancel,
	}

	m.mu.Lock()
	m.jobs[jobID] = j
	m.mu.Unlock()
	return *j, ctx
}

// GetJob returns a snapshot of a job by id.
func (m *Manager) GetJob(jobID string) (Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, exists := m.jobs[jobID]
	if !exists {
		return Status{}, fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	return *j, nil
}

// CancelJob cancels a pending or processing job.
func (m *Manager) CancelJob(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, exists := m.jobs[jobID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	if j.Status != StatusProcessing && j.Status != StatusPending {
		return fmt.Errorf("%w: %s", ErrInvalidState, j.Status)
	}

	j.cancelFunc()
	j.Status = StatusCancelled
	j.Message = "Job cancelled by user"
	endTime := time.Now()
	j.EndTime = &endTime
	return nil
}

// SetProcessing moves a job into the processing state and records the
// rendering service's own job id.
func (m *Manager) SetProcessing(jobID, remoteJobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[jobID]; ok {
		j.Status = StatusProcessing
		j.RemoteJobID = remoteJobID
		j.Message = "Submitted to rendering service"
	}
}

// RecordEvent appends a progress event and updates the job's rolled-up
// progress and message.
func (m *Manager) RecordEvent(jobID string, event progress.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[jobID]; ok {
		j.Progress = event.Progress
		j.Message = event.Message
		j.Events = append(j.Events, event)
	}
}

// Complete marks a job as finished with its output URL.
func (m *Manager) Complete(jobID, outputVideoURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[jobID]; ok {
		j.Status = StatusCompleted
		j.Progress = 100
		j.Message = "Rendering completed"
		j.OutputVideoURL = outputVideoURL
		endTime := time.Now()
		j.EndTime = &endTime
	}
}

// Fail marks a job as failed. Cancelled jobs keep their cancelled status.
func (m *Manager) Fail(jobID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[jobID]; ok {
		if j.Status == StatusCancelled {
			return
		}
		j.Status = StatusFailed
		j.Error = err.Error()
		j.Message = "Rendering failed"
		endTime := time.Now()
		j.EndTime = &endTime
	}
}

// ListJobs lists jobs newest-first with pagination.
func (m *Manager) ListJobs(page, pageSize int) Response {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	m.mu.RLock()
	jobs := make([]Status, 0, len(m.jobs))
	for _, j := range m.jobs {
		jobs = append(jobs, *j)
	}
	m.mu.RUnlock()

	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].StartTime.After(jobs[k].StartTime)
	})

	totalPages := (len(jobs) + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	end := start + pageSize

	if start >= len(jobs) {
		return Response{
			Jobs:       []Status{},
			Page:       page,
			PageSize:   pageSize,
			TotalJobs:  len(jobs),
			TotalPages: totalPages,
		}
	}
	if end > len(jobs) {
		end = len(jobs)
	}

	return Response{
		Jobs:       jobs[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalJobs:  len(jobs),
		TotalPages: totalPages,
	}
}
