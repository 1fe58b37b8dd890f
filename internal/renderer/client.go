// Package renderer is the boundary to the external rendering service: a
// JSON HTTP client for submission, status polling, and beat analysis, plus
// the cancellable polling loop that drives a job to a terminal state.
package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clipforge/clip-composer/internal/domain"
)

var ErrServiceError = errors.New("rendering service error")

// Client talks to the rendering service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the rendering service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Submit sends a composition request and returns the service's job handle.
func (c *Client) Submit(ctx context.Context, req domain.CompositionRequest) (domain.RenderResponse, error) {
	var resp domain.RenderResponse
	if err := c.post(ctx, "/render", req, &resp); err != nil {
		return domain.RenderResponse{}, err
	}
	return resp, nil
}

// Status fetches the current status of a render job.
func (c *Client) Status(ctx context.Context, remoteJobID string) (domain.PollResponse, error) {
	var resp domain.PollResponse
	if err := c.get(ctx, "/render/"+remoteJobID, &resp); err != nil {
		return domain.PollResponse{}, err
	}
	return resp, nil
}

// AnalyzeBeats asks the beat-detection service to analyze a music track.
// Analysis is requested once per asset; the result is immutable afterwards.
func (c *Client) AnalyzeBeats(ctx context.Context, audioURL string) (domain.BeatAnalysis, error) {
	var resp domain.BeatAnalysis
	req := domain.BeatAnalysisRequest{AudioURL: audioURL}
	if err := c.post(ctx, "/analyze-beats", req, &resp); err != nil {
		return domain.BeatAnalysis{}, err
	}
	if err := resp.Validate(); err != nil {
		return domain.BeatAnalysis{}, fmt.Errorf("%w: invalid analysis: %w", ErrServiceError, err)
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s returned %d: %s", ErrServiceError, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrServiceError, err)
	}
	return nil
}
