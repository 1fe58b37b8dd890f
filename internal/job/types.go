package job

import (
	"context"
	"time"

	"github.com/clipforge/clip-composer/internal/domain"
	"github.com/clipforge/clip-composer/internal/progress"
)

// Status represents the current state of a render job.
type Status struct {
	ID             string                    `json:"id"`
	Status         string                    `json:"status"`
	Progress       float64                   `json:"progress"`
	Message        string                    `json:"message"`
	Error          string                    `json:"error,omitempty"`
	OutputVideoURL string                    `json:"outputVideoUrl,omitempty"`
	RemoteJobID    string                    `json:"remoteJobId,omitempty"`
	Events         []progress.Event          `json:"events"`
	StartTime      time.Time                 `json:"startTime"`
	EndTime        *time.Time                `json:"endTime,omitempty"`
	Request        domain.CompositionRequest `json:"request"`
	cancelFunc     context.CancelFunc
}

// Response is the paginated job listing.
type Response struct {
	Jobs       []Status `json:"jobs"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalJobs  int      `json:"totalJobs"`
	TotalPages int      `json:"totalPages"`
}

// Constants for job status
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// Constants for pagination
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)
