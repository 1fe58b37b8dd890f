// Package beatsync turns a beat-detection result and a sync style into the
// cut-point sequence for a music-video composition.
package beatsync

import (
	"errors"
	"fmt"

	"github.com/clipforge/clip-composer/internal/domain"
)

var (
	ErrUnknownStyle = errors.New("unknown music video style")
	ErrNoClips      = errors.New("clip count must be positive")
)

// Segment is one span of the track during which a single clip is active.
type Segment struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	ClipIndex int     `json:"clip_index"`
}

// stride returns how many beats pass between cuts for a style. OnBars cuts
// at the same cadence as Every4Beats: both represent one measure under the
// 4/4 assumption and differ only in how they are presented to the user.
func stride(style domain.MusicVideoStyle) (int, error) {
	switch style {
	case domain.StyleOnBeat:
		return 1, nil
	case domain.StyleEvery2Beats:
		return 2, nil
	case domain.StyleEvery4Beats, domain.StyleOnBars:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
}

// CutPoints returns the timestamps, in seconds, at which the active clip
// switches: every stride-th detected beat starting from the first.
func CutPoints(analysis domain.BeatAnalysis, style domain.MusicVideoStyle) ([]float64, error) {
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	n, err := stride(style)
	if err != nil {
		return nil, err
	}

	cuts := make([]float64, 0, (len(analysis.Beats)+n-1)/n)
	for i := 0; i < len(analysis.Beats); i += n {
		cuts = append(cuts, analysis.Beats[i])
	}
	return cuts, nil
}

// Segments assigns a clip to every span between consecutive cut points,
// covering the whole track from zero to its duration. When there are more
// spans than clips the clip list cycles rather than truncating, so a short
// clip set still fills the full track.
func Segments(analysis domain.BeatAnalysis, style domain.MusicVideoStyle, clipCount int) ([]Segment, error) {
	if clipCount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoClips, clipCount)
	}
	cuts, err := CutPoints(analysis, style)
	if err != nil {
		return nil, err
	}

	// Boundaries: track start, each cut strictly inside the track, track end.
	bounds := []float64{0}
	for _, c := range cuts {
		if c > 0 && c < analysis.DurationSeconds {
			bounds = append(bounds, c)
		}
	}
	bounds = append(bounds, analysis.DurationSeconds)

	segments := make([]Segment, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		segments = append(segments, Segment{
			Start:     bounds[i],
			End:       bounds[i+1],
			ClipIndex: i % clipCount,
		})
	}
	return segments, nil
}
