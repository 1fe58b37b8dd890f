package composition

import (
	"errors"
	"fmt"
)

// Legal ranges for layer geometry and effects.
const (
	MinOpacity    = 0.0
	MaxOpacity    = 1.0
	MinAdjustment = 0.0
	MaxAdjustment = 2.0
	MinBlurPx     = 0.0
	MaxBlurPx     = 20.0
	MinRotation   = -180.0
	MaxRotation   = 180.0

	minLayerSize = 1.0
)

var (
	ErrDuplicateLayerID = errors.New("duplicate layer id")
	ErrZOrderViolation  = errors.New("z-index does not match paint order")
	ErrInvalidLayerSize = errors.New("layer size must be positive")
)

// Clamp pulls every transform and effect value of the layer into its legal
// range. The session deliberately stores unclamped values while the user is
// editing; this runs on each layer before a spec leaves the session.
func Clamp(l *Layer) {
	t := &l.Transform
	t.RotationDeg = clamp(t.RotationDeg, MinRotation, MaxRotation)
	if t.Width < minLayerSize {
		t.Width = minLayerSize
	}
	if t.Height < minLayerSize {
		t.Height = minLayerSize
	}
	if t.SourceWidth < minLayerSize {
		t.SourceWidth = minLayerSize
	}
	if t.SourceHeight < minLayerSize {
		t.SourceHeight = minLayerSize
	}

	e := &l.Effects
	e.Opacity = clamp(e.Opacity, MinOpacity, MaxOpacity)
	e.Brightness = clamp(e.Brightness, MinAdjustment, MaxAdjustment)
	e.Contrast = clamp(e.Contrast, MinAdjustment, MaxAdjustment)
	e.Saturation = clamp(e.Saturation, MinAdjustment, MaxAdjustment)
	e.BlurPx = clamp(e.BlurPx, MinBlurPx, MaxBlurPx)
	if !e.BlendMode.Valid() {
		e.BlendMode = BlendNormal
	}
	if e.ChromaKey != nil {
		e.ChromaKey.ThresholdPct = clamp(e.ChromaKey.ThresholdPct, 0, 100)
		e.ChromaKey.BlendPct = clamp(e.ChromaKey.BlendPct, 0, 100)
	}
}

// ClampSpec clamps every layer of the spec in place.
func ClampSpec(s *Spec) {
	for i := range s.Layers {
		Clamp(&s.Layers[i])
	}
}

// ValidateSpec checks the structural invariants of a spec: positive canvas
// and duration, unique layer ids, positive layer sizes, and the z-index
// permutation matching array order.
func ValidateSpec(s *Spec) error {
	if s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, s.Canvas.Width, s.Canvas.Height)
	}
	if s.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration %f", ErrInvalidCanvas, s.DurationSeconds)
	}

	seen := make(map[string]struct{}, len(s.Layers))
	for i := range s.Layers {
		l := &s.Layers[i]
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLayerID, l.ID)
		}
		seen[l.ID] = struct{}{}

		if l.ZIndex != i {
			return fmt.Errorf("%w: layer %s has z-index %d at position %d", ErrZOrderViolation, l.ID, l.ZIndex, i)
		}
		if l.Transform.Width <= 0 || l.Transform.Height <= 0 {
			return fmt.Errorf("%w: layer %s", ErrInvalidLayerSize, l.ID)
		}
		if l.Transform.SourceWidth <= 0 || l.Transform.SourceHeight <= 0 {
			return fmt.Errorf("%w: layer %s source", ErrInvalidLayerSize, l.ID)
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
