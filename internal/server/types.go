package server

// MessageResponse is a simple message reply.
type MessageResponse struct {
	Message string `json:"message"`
	JobID   string `json:"jobId,omitempty"`
}

// ErrorResponse is the error reply shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// EstimateRequest asks for the advisory cost and time of a composition.
type EstimateRequest struct {
	CompositionType string `json:"composition_type" binding:"required"`
	ClipCount       int    `json:"clip_count" binding:"required"`
}

// EstimateResponse carries the advisory estimates. Neither value is sent to
// the rendering service.
type EstimateResponse struct {
	Credits       int    `json:"credits"`
	EstimatedTime string `json:"estimatedTime"`
}

// UploadResult reports the outcome for one file in an upload batch.
type UploadResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadResponse reports per-file outcomes for a batch.
type UploadResponse struct {
	Uploads []UploadResult `json:"uploads"`
}
