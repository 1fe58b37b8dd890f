package composition

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrLayerNotFound = errors.New("layer not found")
	ErrInvalidCanvas = errors.New("invalid canvas")
)

// Session is the authoring session owning one composition spec. All layer
// mutation flows through its methods; user actions are strictly sequential,
// so the session needs no locking.
type Session struct {
	spec       Spec
	selectedID string
}

// NewSession creates an authoring session around an empty composition.
func NewSession(name string, canvas Canvas, durationSeconds float64) (*Session, error) {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, canvas.Width, canvas.Height)
	}
	if durationSeconds <= 0 {
		return nil, fmt.Errorf("%w: duration %f", ErrInvalidCanvas, durationSeconds)
	}
	return &Session{
		spec: Spec{
			ID:              uuid.New().String(),
			Name:            name,
			Canvas:          canvas,
			Layers:          []Layer{},
			DurationSeconds: durationSeconds,
		},
	}, nil
}

// Restore rehydrates a session from a previously serialized spec.
func Restore(spec Spec) *Session {
	return &Session{spec: spec.Clone()}
}

// AddLayer appends a new layer with default transform and effects and a
// z-index one above the current top. The new layer becomes selected.
func (s *Session) AddLayer(kind LayerKind) Layer {
	layer := Layer{
		ID:        uuid.New().String(),
		Name:      fmt.Sprintf("Layer %d", len(s.spec.Layers)+1),
		Kind:      kind,
		ZIndex:    len(s.spec.Layers),
		Visible:   true,
		Transform: defaultTransform(),
		Effects:   defaultEffects(),
	}
	s.spec.Layers = append(s.spec.Layers, layer)
	s.selectedID = layer.ID
	return layer
}

// RemoveLayer deletes the layer with the given id and renumbers the
// remaining z-indices so the invariant holds without waiting for the next
// reorder. Unknown ids are a no-op.
func (s *Session) RemoveLayer(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.spec.Layers = append(s.spec.Layers[:i], s.spec.Layers[i+1:]...)
	renumber(s.spec.Layers)
	if s.selectedID == id {
		s.selectedID = ""
	}
}

// TransformPatch is a merge-patch for a layer's transform; nil fields are
// left unchanged. Values are not clamped here; Clamp runs before submission.
type TransformPatch struct {
	X            *float64
	Y            *float64
	Width        *float64
	Height       *float64
	RotationDeg  *float64
	SourceWidth  *float64
	SourceHeight *float64
}

// EffectsPatch is a merge-patch for a layer's effects; nil fields are left
// unchanged.
type EffectsPatch struct {
	Opacity    *float64
	Brightness *float64
	Contrast   *float64
	Saturation *float64
	BlurPx     *float64
	BlendMode  *BlendMode
	ChromaKey  *ChromaKey
	Visible    *bool
}

// UpdateTransform applies a merge-patch to the layer's transform.
func (s *Session) UpdateTransform(id string, patch TransformPatch) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	t := &s.spec.Layers[i].Transform
	if patch.X != nil {
		t.X = *patch.X
	}
	if patch.Y != nil {
		t.Y = *patch.Y
	}
	if patch.Width != nil {
		t.Width = *patch.Width
	}
	if patch.Height != nil {
		t.Height = *patch.Height
	}
	if patch.RotationDeg != nil {
		t.RotationDeg = *patch.RotationDeg
	}
	if patch.SourceWidth != nil {
		t.SourceWidth = *patch.SourceWidth
	}
	if patch.SourceHeight != nil {
		t.SourceHeight = *patch.SourceHeight
	}
	return nil
}

// UpdateEffects applies a merge-patch to the layer's effects.
func (s *Session) UpdateEffects(id string, patch EffectsPatch) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	layer := &s.spec.Layers[i]
	e := &layer.Effects
	if patch.Opacity != nil {
		e.Opacity = *patch.Opacity
	}
	if patch.Brightness != nil {
		e.Brightness = *patch.Brightness
	}
	if patch.Contrast != nil {
		e.Contrast = *patch.Contrast
	}
	if patch.Saturation != nil {
		e.Saturation = *patch.Saturation
	}
	if patch.BlurPx != nil {
		e.BlurPx = *patch.BlurPx
	}
	if patch.BlendMode != nil {
		e.BlendMode = *patch.BlendMode
	}
	if patch.ChromaKey != nil {
		copied := *patch.ChromaKey
		e.ChromaKey = &copied
	}
	if patch.Visible != nil {
		layer.Visible = *patch.Visible
	}
	return nil
}

// SelectLayer marks a layer as selected. Unknown ids clear the selection.
func (s *Session) SelectLayer(id string) {
	if s.indexOf(id) < 0 {
		s.selectedID = ""
		return
	}
	s.selectedID = id
}

// SelectedLayer returns the currently selected layer, if any.
func (s *Session) SelectedLayer() (Layer, bool) {
	i := s.indexOf(s.selectedID)
	if i < 0 {
		return Layer{}, false
	}
	return s.spec.Layers[i], true
}

// Layer returns a copy of the layer with the given id.
func (s *Session) Layer(id string) (Layer, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Layer{}, false
	}
	return s.spec.Layers[i], true
}

// LayerCount returns the number of layers in the composition.
func (s *Session) LayerCount() int {
	return len(s.spec.Layers)
}

// Serialize returns a deep copy of the composition spec, used both for
// persistence and for dry-run previews sent to the rendering service.
func (s *Session) Serialize() Spec {
	return s.spec.Clone()
}

func (s *Session) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.spec.Layers {
		if s.spec.Layers[i].ID == id {
			return i
		}
	}
	return -1
}
