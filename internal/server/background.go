package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clipforge/clip-composer/internal/domain"
	"github.com/clipforge/clip-composer/internal/progress"
	"github.com/clipforge/clip-composer/internal/renderer"
)

// renderInBackground submits the composition to the rendering service and
// polls it to a terminal state, updating the local job as it goes. The
// context comes from the job manager so cancellation tears the loop down.
func (s *Server) renderInBackground(ctx context.Context, jobID string, req domain.CompositionRequest) {
	slog.Info("Starting render submission", "jobId", jobID, "type", req.CompositionType, "clips", len(req.VideoURLs))

	// Bound the whole render so an unresponsive service cannot hold the job
	// open indefinitely.
	ctx, cancel := context.WithTimeout(ctx, 45*time.Minute)
	defer cancel()

	tracker := progress.NewTracker()
	tracker.AddListener(func(event progress.Event) {
		s.jobManager.RecordEvent(jobID, event)
	})

	tracker.Update(progress.StageSubmitting, 0, "Submitting composition to rendering service")

	submitted, err := s.renderer.Submit(ctx, req)
	if err != nil {
		s.failOrCancel(ctx, jobID, tracker, err)
		return
	}

	s.jobManager.SetProcessing(jobID, submitted.JobID)
	slog.Info("Render job submitted", "jobId", jobID, "remoteJobId", submitted.JobID)

	onUpdate := func(sample domain.PollResponse) {
		tracker.Update(progress.StageRendering, sample.Progress, "Rendering")
	}

	poller := renderer.NewPoller(s.renderer, s.pollInterval, s.maxPollFailures, onUpdate)
	final, err := poller.Run(ctx, submitted.JobID)
	if err != nil {
		s.failOrCancel(ctx, jobID, tracker, err)
		return
	}

	tracker.Update(progress.StageComplete, 100, "Rendering completed")
	s.jobManager.Complete(jobID, final.OutputVideoURL)
	slog.Info("Render job completed", "jobId", jobID, "outputUrl", final.OutputVideoURL)
}

func (s *Server) failOrCancel(ctx context.Context, jobID string, tracker *progress.Tracker, err error) {
	if errors.Is(ctx.Err(), context.Canceled) {
		slog.Warn("Render job cancelled", "jobId", jobID)
		return
	}
	tracker.Fail(err)
	s.jobManager.Fail(jobID, err)
	slog.Error("Render job failed", "jobId", jobID, "error", err)
}
