package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/clip-composer/internal/domain"
	"github.com/clipforge/clip-composer/internal/progress"
)

func testRequest() domain.CompositionRequest {
	return domain.CompositionRequest{
		CompositionType: domain.TypePodcast,
		VideoURLs:       []string{"https://example.com/a.mp4"},
	}
}

func TestCreateAndGetJob(t *testing.T) {
	m := NewManager()

	created, ctx := m.CreateJob(testRequest())
	require.NotNil(t, ctx)
	assert.Equal(t, StatusPending, created.Status)

	got, err := m.GetJob(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, domain.TypePodcast, got.Request.CompositionType)
}

func TestGetJobNotFound(t *testing.T) {
	m := NewManager()
	_, err := m.GetJob("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelJob(t *testing.T) {
	m := NewManager()
	created, ctx := m.CreateJob(testRequest())

	require.NoError(t, m.CancelJob(created.ID))

	got, err := m.GetJob(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	require.NotNil(t, got.EndTime)

	// The background context is torn down.
	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("job context was not cancelled")
	}
}

func TestCancelJobInvalidState(t *testing.T) {
	m := NewManager()
	created, _ := m.CreateJob(testRequest())
	m.Complete(created.ID, "https://example.com/out.mp4")

	err := m.CancelJob(created.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestJobLifecycleUpdates(t *testing.T) {
	m := NewManager()
	created, _ := m.CreateJob(testRequest())

	m.SetProcessing(created.ID, "remote-9")
	m.RecordEvent(created.ID, progress.Event{
		Stage:     progress.StageRendering,
		Progress:  55,
		Message:   "Rendering",
		Timestamp: time.Now(),
	})

	got, err := m.GetJob(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, got.Status)
	assert.Equal(t, "remote-9", got.RemoteJobID)
	assert.Equal(t, 55.0, got.Progress)
	require.Len(t, got.Events, 1)

	m.Complete(created.ID, "https://example.com/out.mp4")
	got, err = m.GetJob(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 100.0, got.Progress)
	assert.Equal(t, "https://example.com/out.mp4", got.OutputVideoURL)
}

func TestFailDoesNotOverrideCancelled(t *testing.T) {
	m := NewManager()
	created, _ := m.CreateJob(testRequest())

	require.NoError(t, m.CancelJob(created.ID))
	m.Fail(created.ID, errors.New("submit aborted"))

	got, err := m.GetJob(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

func TestListJobsPagination(t *testing.T) {
	m := NewManager()
	for i := 0; i < 25; i++ {
		m.CreateJob(testRequest())
	}

	resp := m.ListJobs(1, 10)
	assert.Len(t, resp.Jobs, 10)
	assert.Equal(t, 25, resp.TotalJobs)
	assert.Equal(t, 3, resp.TotalPages)

	resp = m.ListJobs(3, 10)
	assert.Len(t, resp.Jobs, 5)

	resp = m.ListJobs(7, 10)
	assert.Empty(t, resp.Jobs)
	assert.Equal(t, 7, resp.Page)
}

func TestListJobsClampsPageSize(t *testing.T) {
	m := NewManager()
	m.CreateJob(testRequest())

	resp := m.ListJobs(0, 0)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, DefaultPageSize, resp.PageSize)

	resp = m.ListJobs(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, resp.PageSize)
}
