// Package server exposes the composition API over HTTP: submission with the
// readiness gate, advisory estimation, clip uploads, beat analysis, and
// render job status.
package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clipforge/clip-composer/config"
	"github.com/clipforge/clip-composer/internal/domain"
	"github.com/clipforge/clip-composer/internal/job"
	"github.com/clipforge/clip-composer/internal/uploader"
)

// RenderClient is the slice of the rendering service boundary the server
// uses, kept as an interface so tests can substitute a fake service.
type RenderClient interface {
	Submit(ctx context.Context, req domain.CompositionRequest) (domain.RenderResponse, error)
	Status(ctx context.Context, remoteJobID string) (domain.PollResponse, error)
	AnalyzeBeats(ctx context.Context, audioURL string) (domain.BeatAnalysis, error)
}

// Server handles HTTP requests for the composition service.
type Server struct {
	cfg    *config.Config
	router *gin.Engine

	jobManager *job.Manager
	renderer   RenderClient
	uploads    *uploader.Uploader

	pollInterval    time.Duration
	maxPollFailures int
}

// New creates a new HTTP server instance.
func New(cfg *config.Config, renderer RenderClient, uploads *uploader.Uploader) *Server {
	router := gin.Default()

	server := &Server{
		cfg:             cfg,
		router:          router,
		jobManager:      job.NewManager(),
		renderer:        renderer,
		uploads:         uploads,
		pollInterval:    time.Duration(cfg.Renderer.PollIntervalSeconds) * time.Second,
		maxPollFailures: cfg.Renderer.MaxPollFailures,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes() {
	// CORS middleware
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.router.GET("/health", s.health)

	api := s.router.Group("/api/v1")
	{
		api.POST("/compositions", s.submitComposition)
		api.POST("/compositions/estimate", s.estimateComposition)
		api.POST("/compositions/preview", s.previewComposition)
		api.POST("/compositions/cut-points", s.cutPoints)
		api.POST("/uploads", s.uploadFiles)
		api.POST("/beat-analysis", s.analyzeBeats)
		api.GET("/jobs/:id", s.getJobStatus)
		api.DELETE("/jobs/:id", s.cancelJob)
		api.GET("/jobs", s.listJobs)
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}
