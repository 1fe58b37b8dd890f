package domain

// Render job statuses reported by the rendering service.
const (
	RenderStatusProcessing = "processing"
	RenderStatusCompleted  = "completed"
	RenderStatusFailed     = "failed"
)

// RenderResponse is the rendering service's reply to a submission.
type RenderResponse struct {
	JobID          string `json:"job_id"`
	Status         string `json:"status"`
	OutputVideoURL string `json:"output_video_url,omitempty"`
}

// PollResponse is one status sample from the rendering service.
type PollResponse struct {
	Status         string  `json:"status"`
	Progress       float64 `json:"progress,omitempty"`
	OutputVideoURL string  `json:"output_video_url,omitempty"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

// Terminal reports whether the poll status ends the polling loop.
func (p PollResponse) Terminal() bool {
	return p.Status == RenderStatusCompleted || p.Status == RenderStatusFailed
}

// BeatAnalysisRequest asks the beat-detection service to analyze one track.
type BeatAnalysisRequest struct {
	AudioURL string `json:"audio_url"`
}
