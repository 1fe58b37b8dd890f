// Package composition holds the layered canvas model for an authoring
// session: the canvas and its layers, the z-order manager, and the
// transform/effects validator applied before submission.
package composition

// LayerKind distinguishes the two layer source types.
type LayerKind string

const (
	LayerVideo LayerKind = "video"
	LayerImage LayerKind = "image"
)

// BlendMode is the pixel-combination rule used when compositing a layer
// over the layers beneath it.
type BlendMode string

const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
	BlendOverlay  BlendMode = "overlay"
	BlendAddition BlendMode = "addition"
)

// Valid reports whether m is a known blend mode.
func (m BlendMode) Valid() bool {
	switch m {
	case BlendNormal, BlendMultiply, BlendScreen, BlendOverlay, BlendAddition:
		return true
	}
	return false
}

// Canvas is the fixed-size background frame layers are composited onto.
type Canvas struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	BackgroundColor string `json:"background_color"`
}

// Transform holds a layer's placement geometry on the canvas.
type Transform struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	RotationDeg  float64 `json:"rotation_deg"`
	SourceWidth  float64 `json:"source_width"`
	SourceHeight float64 `json:"source_height"`
}

// ChromaKey removes a background color from a layer.
type ChromaKey struct {
	Color        string  `json:"color"`
	ThresholdPct float64 `json:"threshold_pct"`
	BlendPct     float64 `json:"blend_pct"`
}

// Effects holds a layer's visual adjustment parameters.
type Effects struct {
	Opacity    float64    `json:"opacity"`
	Brightness float64    `json:"brightness"`
	Contrast   float64    `json:"contrast"`
	Saturation float64    `json:"saturation"`
	BlurPx     float64    `json:"blur_px"`
	BlendMode  BlendMode  `json:"blend_mode"`
	ChromaKey  *ChromaKey `json:"chroma_key,omitempty"`
}

// Layer is one positioned, transformed, effect-adjusted source within a
// composition.
type Layer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      LayerKind `json:"kind"`
	ZIndex    int       `json:"z_index"`
	Visible   bool      `json:"visible"`
	Transform Transform `json:"transform"`
	Effects   Effects   `json:"effects"`
}

// Spec is a complete static composition. Layers are stored in paint order:
// the invariant Layers[i].ZIndex == i holds after every mutation, so the
// highest z-index is painted last and sits visually on top.
type Spec struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Canvas          Canvas  `json:"canvas"`
	Layers          []Layer `json:"layers"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Defaults for freshly added layers.
const (
	defaultLayerX      = 100
	defaultLayerY      = 100
	defaultLayerWidth  = 640
	defaultLayerHeight = 360
)

func defaultTransform() Transform {
	return Transform{
		X:            defaultLayerX,
		Y:            defaultLayerY,
		Width:        defaultLayerWidth,
		Height:       defaultLayerHeight,
		SourceWidth:  defaultLayerWidth,
		SourceHeight: defaultLayerHeight,
	}
}

func defaultEffects() Effects {
	return Effects{
		Opacity:    1,
		Brightness: 1,
		Contrast:   1,
		Saturation: 1,
		BlendMode:  BlendNormal,
	}
}

// RenderOrder returns the visible layers sorted by ascending z-index, the
// order a consumer should paint them in. Because the z-index invariant ties
// z-index to array position, this is simply a filtered copy.
func (s *Spec) RenderOrder() []Layer {
	out := make([]Layer, 0, len(s.Layers))
	for _, l := range s.Layers {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// Clone returns a deep copy of the spec.
func (s *Spec) Clone() Spec {
	out := *s
	out.Layers = make([]Layer, len(s.Layers))
	copy(out.Layers, s.Layers)
	for i := range out.Layers {
		if ck := out.Layers[i].Effects.ChromaKey; ck != nil {
			copied := *ck
			out.Layers[i].Effects.ChromaKey = &copied
		}
	}
	return out
}
