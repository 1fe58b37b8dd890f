package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clipforge/clip-composer/internal/builder"
	"github.com/clipforge/clip-composer/internal/domain"
	"github.com/clipforge/clip-composer/internal/job"
	"github.com/clipforge/clip-composer/internal/pricing"
	"github.com/clipforge/clip-composer/internal/uploader"
)

// submitComposition godoc
// @Summary Submit a composition for rendering
// @Description Validates the composition through the readiness gate and, if accepted, starts a render job that is polled in the background.
// @Tags Compositions
// @Accept json
// @Produce json
// @Param request body domain.CompositionRequest true "Composition request"
// @Success 202 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/compositions [post]
func (s *Server) submitComposition(c *gin.Context) {
	var req domain.CompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	if err := builder.Validate(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	jobStatus, ctx := s.jobManager.CreateJob(req)
	go s.renderInBackground(ctx, jobStatus.ID, req)

	c.JSON(202, gin.H{
		"message": "Rendering started",
		"jobId":   jobStatus.ID,
	})
}

// estimateComposition godoc
// @Summary Estimate cost and processing time
// @Description Returns the advisory credit cost and time range for a composition type and clip count. Purely client-side; nothing is sent to the rendering service.
// @Tags Compositions
// @Accept json
// @Produce json
// @Param request body EstimateRequest true "Estimation parameters"
// @Success 200 {object} EstimateResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/compositions/estimate [post]
func (s *Server) estimateComposition(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	compositionType := domain.CompositionType(req.CompositionType)
	credits, err := pricing.Cost(compositionType, req.ClipCount)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	estimatedTime, err := pricing.Duration(compositionType, req.ClipCount)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, EstimateResponse{Credits: credits, EstimatedTime: estimatedTime})
}

// uploadFiles godoc
// @Summary Upload clip or music files
// @Description Uploads one or more files to asset storage. Files are validated and uploaded independently; a rejected file does not block the rest of the batch.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param kind formData string false "Asset kind: clip or music"
// @Param files formData file true "Files to upload"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/uploads [post]
func (s *Server) uploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid multipart form: %v", err)})
		return
	}

	kind := uploader.KindClip
	if k := c.PostForm("kind"); k != "" {
		kind = uploader.Kind(k)
		if kind != uploader.KindClip && kind != uploader.KindMusic {
			c.JSON(400, gin.H{"error": fmt.Sprintf("unknown asset kind: %q", k)})
			return
		}
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(400, gin.H{"error": "no files provided"})
		return
	}

	results := make([]UploadResult, 0, len(files))
	for _, fh := range files {
		result := UploadResult{Filename: fh.Filename}

		f, err := fh.Open()
		if err != nil {
			result.Status = uploader.StatusFailed
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		up, err := s.uploads.Store(c.Request.Context(), fh.Filename, fh.Size, kind, f)
		f.Close()
		if err != nil {
			result.Status = uploader.StatusFailed
			result.Error = err.Error()
		} else {
			result.Status = up.Status
			result.URL = up.URL
		}
		results = append(results, result)
	}

	c.JSON(200, UploadResponse{Uploads: results})
}

// analyzeBeats godoc
// @Summary Run beat analysis for a music track
// @Description Proxies the track URL to the beat-detection service and returns the BPM and beat timestamps. Requested once per music asset.
// @Tags Compositions
// @Accept json
// @Produce json
// @Param request body domain.BeatAnalysisRequest true "Audio URL"
// @Success 200 {object} domain.BeatAnalysis
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/beat-analysis [post]
func (s *Server) analyzeBeats(c *gin.Context) {
	var req domain.BeatAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.AudioURL == "" {
		c.JSON(400, gin.H{"error": "audio_url is required"})
		return
	}

	analysis, err := s.renderer.AnalyzeBeats(c.Request.Context(), req.AudioURL)
	if err != nil {
		c.JSON(502, gin.H{"error": fmt.Sprintf("beat analysis failed: %v", err)})
		return
	}

	c.JSON(200, analysis)
}

// getJobStatus godoc
// @Summary Get render job status
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} job.Status
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/jobs/{id} [get]
func (s *Server) getJobStatus(c *gin.Context) {
	jobID := c.Param("id")

	jobStatus, err := s.jobManager.GetJob(jobID)
	if err != nil {
		c.JSON(404, gin.H{"error": fmt.Sprintf("%v: %s", job.ErrNotFound, jobID)})
		return
	}

	c.JSON(200, jobStatus)
}

// cancelJob godoc
// @Summary Cancel a render job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/jobs/{id} [delete]
func (s *Server) cancelJob(c *gin.Context) {
	jobID := c.Param("id")

	if err := s.jobManager.CancelJob(jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
		} else if errors.Is(err, job.ErrInvalidState) {
			c.JSON(400, gin.H{"error": err.Error()})
		} else {
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Job cancelled"})
}

// listJobs godoc
// @Summary List render jobs
// @Tags Jobs
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} job.Response
// @Router /api/v1/jobs [get]
func (s *Server) listJobs(c *gin.Context) {
	page := 1
	pageSize := job.DefaultPageSize

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	if ps := c.Query("pageSize"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= job.MaxPageSize {
			pageSize = parsed
		}
	}

	response := s.jobManager.ListJobs(page, pageSize)
	c.JSON(200, response)
}

// health godoc
// @Summary Health check
// @Tags Utility
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
