package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/clipforge/clip-composer/internal/beatsync"
	"github.com/clipforge/clip-composer/internal/composition"
	"github.com/clipforge/clip-composer/internal/domain"
)

// CutPointsRequest asks for the cut schedule of a music video composition.
type CutPointsRequest struct {
	BeatAnalysis domain.BeatAnalysis    `json:"beat_analysis" binding:"required"`
	Style        domain.MusicVideoStyle `json:"style"`
	ClipCount    int                    `json:"clip_count" binding:"required"`
}

// CutPointsResponse carries the computed cut schedule.
type CutPointsResponse struct {
	CutPoints []float64          `json:"cutPoints"`
	Segments  []beatsync.Segment `json:"segments"`
}

// PreviewResponse is the normalized spec a dry-run returns.
type PreviewResponse struct {
	Spec        composition.Spec    `json:"spec"`
	RenderOrder []composition.Layer `json:"renderOrder"`
}

// previewComposition godoc
// @Summary Dry-run a layered composition spec
// @Description Clamps every layer's transform and effects to their legal ranges, checks the structural invariants, and returns the normalized spec with its paint order.
// @Tags Compositions
// @Accept json
// @Produce json
// @Param request body composition.Spec true "Composition spec"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/compositions/preview [post]
func (s *Server) previewComposition(c *gin.Context) {
	var spec composition.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	composition.ClampSpec(&spec)
	if err := composition.ValidateSpec(&spec); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, PreviewResponse{Spec: spec, RenderOrder: spec.RenderOrder()})
}

// cutPoints godoc
// @Summary Compute beat-synchronized cut points
// @Description Maps a beat analysis and sync style onto the clip list, cycling clips when there are more cuts than clips.
// @Tags Compositions
// @Accept json
// @Produce json
// @Param request body CutPointsRequest true "Beat analysis, style and clip count"
// @Success 200 {object} CutPointsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/compositions/cut-points [post]
func (s *Server) cutPoints(c *gin.Context) {
	var req CutPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	style := req.Style
	if style == "" {
		style = domain.StyleOnBeat
	}

	cuts, err := beatsync.CutPoints(req.BeatAnalysis, style)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	segments, err := beatsync.Segments(req.BeatAnalysis, style, req.ClipCount)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, CutPointsResponse{CutPoints: cuts, Segments: segments})
}
