package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clipforge/clip-composer/internal/domain"
)

const (
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxPollFailures = 5
)

var (
	ErrRenderFailed = errors.New("rendering failed")
	ErrPollBudget   = errors.New("status polling failed repeatedly")
)

// StatusClient is the slice of the rendering client the poller needs.
type StatusClient interface {
	Status(ctx context.Context, remoteJobID string) (domain.PollResponse, error)
}

// Poller drives a submitted render job to a terminal state by sampling its
// status at a fixed interval. A transient poll failure is retried on the
// next tick; only a run of maxFailures consecutive failures, an explicit
// failed status from the service, or context cancellation ends the loop.
type Poller struct {
	client      StatusClient
	interval    time.Duration
	maxFailures int
	onUpdate    func(domain.PollResponse)
}

// NewPoller creates a poller. onUpdate, if non-nil, receives every
// successful status sample.
func NewPoller(client StatusClient, interval time.Duration, maxFailures int, onUpdate func(domain.PollResponse)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxFailures <= 0 {
		maxFailures = DefaultMaxPollFailures
	}
	return &Poller{
		client:      client,
		interval:    interval,
		maxFailures: maxFailures,
		onUpdate:    onUpdate,
	}
}

// Run polls until the job reaches a terminal status. It returns the final
// poll sample; the error is non-nil when the job failed, the retry budget
// was exhausted, or the context was cancelled.
func (p *Poller) Run(ctx context.Context, remoteJobID string) (domain.PollResponse, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	consecutiveFailures := 0
	var last domain.PollResponse

	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}

		sample, err := p.client.Status(ctx, remoteJobID)
		if err != nil {
			if ctx.Err() != nil {
				return last, ctx.Err()
			}
			consecutiveFailures++
			slog.Warn("Status poll failed", "remoteJobId", remoteJobID, "consecutiveFailures", consecutiveFailures, "error", err)
			if consecutiveFailures >= p.maxFailures {
				return last, fmt.Errorf("%w: %d consecutive failures: %w", ErrPollBudget, consecutiveFailures, err)
			}
			continue
		}
		consecutiveFailures = 0
		last = sample

		if p.onUpdate != nil {
			p.onUpdate(sample)
		}

		switch sample.Status {
		case domain.RenderStatusCompleted:
			return sample, nil
		case domain.RenderStatusFailed:
			if sample.ErrorMessage != "" {
				return sample, fmt.Errorf("%w: %s", ErrRenderFailed, sample.ErrorMessage)
			}
			return sample, ErrRenderFailed
		}
	}
}
