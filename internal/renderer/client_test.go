package renderer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/clip-composer/internal/domain"
)

func TestSubmitSendsWireRequest(t *testing.T) {
	var received domain.CompositionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/render", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(domain.RenderResponse{JobID: "remote-1", Status: "processing"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	resp, err := client.Submit(context.Background(), domain.CompositionRequest{
		CompositionType: domain.TypeStatic,
		VideoURLs:       []string{"https://example.com/a.mp4"},
		LayoutID:        "grid-2x2",
	})
	require.NoError(t, err)

	assert.Equal(t, "remote-1", resp.JobID)
	assert.Equal(t, domain.TypeStatic, received.CompositionType)
	assert.Equal(t, "grid-2x2", received.LayoutID)
	assert.Equal(t, []string{"https://example.com/a.mp4"}, received.VideoURLs)
}

func TestSubmitSurfacesServiceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad composition"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Submit(context.Background(), domain.CompositionRequest{})
	assert.ErrorIs(t, err, ErrServiceError)
	assert.Contains(t, err.Error(), "422")
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/render/remote-1", r.URL.Path)
		json.NewEncoder(w).Encode(domain.PollResponse{Status: "processing", Progress: 42})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	resp, err := client.Status(context.Background(), "remote-1")
	require.NoError(t, err)
	assert.Equal(t, "processing", resp.Status)
	assert.Equal(t, 42.0, resp.Progress)
	assert.False(t, resp.Terminal())
}

func TestAnalyzeBeats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze-beats", r.URL.Path)

		var req domain.BeatAnalysisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "https://example.com/track.mp3", req.AudioURL)

		json.NewEncoder(w).Encode(domain.BeatAnalysis{
			BPM:             128,
			Beats:           []float64{0.47, 0.94, 1.41},
			DurationSeconds: 180,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	analysis, err := client.AnalyzeBeats(context.Background(), "https://example.com/track.mp3")
	require.NoError(t, err)
	assert.Equal(t, 128.0, analysis.BPM)
	assert.Len(t, analysis.Beats, 3)
}

func TestAnalyzeBeatsRejectsInvalidServiceReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.BeatAnalysis{BPM: 0, Beats: nil, DurationSeconds: 0})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.AnalyzeBeats(context.Background(), "https://example.com/track.mp3")
	assert.ErrorIs(t, err, ErrServiceError)
}
