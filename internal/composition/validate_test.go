package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampEffects(t *testing.T) {
	tests := []struct {
		name string
		in   Effects
		want Effects
	}{
		{
			name: "values above range",
			in:   Effects{Opacity: 1.5, Brightness: 2.5, Contrast: 3, Saturation: 2.1, BlurPx: 99, BlendMode: BlendScreen},
			want: Effects{Opacity: 1, Brightness: 2, Contrast: 2, Saturation: 2, BlurPx: 20, BlendMode: BlendScreen},
		},
		{
			name: "values below range",
			in:   Effects{Opacity: -0.5, Brightness: -1, Contrast: -0.1, Saturation: -2, BlurPx: -3, BlendMode: BlendNormal},
			want: Effects{Opacity: 0, Brightness: 0, Contrast: 0, Saturation: 0, BlurPx: 0, BlendMode: BlendNormal},
		},
		{
			name: "in-range values untouched",
			in:   Effects{Opacity: 0.7, Brightness: 1.2, Contrast: 0.9, Saturation: 1.5, BlurPx: 10, BlendMode: BlendOverlay},
			want: Effects{Opacity: 0.7, Brightness: 1.2, Contrast: 0.9, Saturation: 1.5, BlurPx: 10, BlendMode: BlendOverlay},
		},
		{
			name: "unknown blend mode resets to normal",
			in:   Effects{Opacity: 1, Brightness: 1, Contrast: 1, Saturation: 1, BlendMode: "glow"},
			want: Effects{Opacity: 1, Brightness: 1, Contrast: 1, Saturation: 1, BlendMode: BlendNormal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := Layer{Transform: defaultTransform(), Effects: tt.in}
			Clamp(&layer)
			assert.Equal(t, tt.want, layer.Effects)
		})
	}
}

func TestClampTransform(t *testing.T) {
	layer := Layer{
		Transform: Transform{Width: -10, Height: 0, RotationDeg: 270, SourceWidth: 640, SourceHeight: 360},
		Effects:   defaultEffects(),
	}
	Clamp(&layer)

	assert.Equal(t, 180.0, layer.Transform.RotationDeg)
	assert.Equal(t, 1.0, layer.Transform.Width)
	assert.Equal(t, 1.0, layer.Transform.Height)

	layer.Transform.RotationDeg = -300
	Clamp(&layer)
	assert.Equal(t, -180.0, layer.Transform.RotationDeg)
}

func TestClampChromaKey(t *testing.T) {
	layer := Layer{
		Transform: defaultTransform(),
		Effects: Effects{
			Opacity: 1, Brightness: 1, Contrast: 1, Saturation: 1, BlendMode: BlendNormal,
			ChromaKey: &ChromaKey{Color: "#00ff00", ThresholdPct: 150, BlendPct: -5},
		},
	}
	Clamp(&layer)

	assert.Equal(t, 100.0, layer.Effects.ChromaKey.ThresholdPct)
	assert.Equal(t, 0.0, layer.Effects.ChromaKey.BlendPct)
}

func TestClampSpecThenValidate(t *testing.T) {
	s := newTestSession(t)
	layer := s.AddLayer(LayerVideo)

	opacity := 9.0
	blur := -2.0
	rotation := 500.0
	require.NoError(t, s.UpdateEffects(layer.ID, EffectsPatch{Opacity: &opacity, BlurPx: &blur}))
	require.NoError(t, s.UpdateTransform(layer.ID, TransformPatch{RotationDeg: &rotation}))

	spec := s.Serialize()
	ClampSpec(&spec)
	require.NoError(t, ValidateSpec(&spec))

	assert.Equal(t, 1.0, spec.Layers[0].Effects.Opacity)
	assert.Equal(t, 0.0, spec.Layers[0].Effects.BlurPx)
	assert.Equal(t, 180.0, spec.Layers[0].Transform.RotationDeg)
}

func TestValidateSpecDetectsDuplicateIDs(t *testing.T) {
	spec := Spec{
		ID:              "spec",
		Canvas:          Canvas{Width: 1920, Height: 1080},
		DurationSeconds: 10,
		Layers: []Layer{
			{ID: "dup", ZIndex: 0, Transform: defaultTransform(), Effects: defaultEffects()},
			{ID: "dup", ZIndex: 1, Transform: defaultTransform(), Effects: defaultEffects()},
		},
	}
	assert.ErrorIs(t, ValidateSpec(&spec), ErrDuplicateLayerID)
}

func TestValidateSpecDetectsZOrderViolation(t *testing.T) {
	spec := Spec{
		ID:              "spec",
		Canvas:          Canvas{Width: 1920, Height: 1080},
		DurationSeconds: 10,
		Layers: []Layer{
			{ID: "a", ZIndex: 1, Transform: defaultTransform(), Effects: defaultEffects()},
			{ID: "b", ZIndex: 0, Transform: defaultTransform(), Effects: defaultEffects()},
		},
	}
	assert.ErrorIs(t, ValidateSpec(&spec), ErrZOrderViolation)
}
