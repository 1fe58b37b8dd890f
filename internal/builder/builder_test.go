package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/clip-composer/internal/domain"
)

func testAnalysis() domain.BeatAnalysis {
	return domain.BeatAnalysis{
		BPM:             120,
		Beats:           []float64{0.5, 1.0, 1.5, 2.0},
		DurationSeconds: 30,
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := New("slideshow")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestCanSubmitRequiresClipsForEveryType(t *testing.T) {
	for _, compositionType := range domain.Types {
		b, err := New(compositionType)
		require.NoError(t, err)
		assert.False(t, b.CanSubmit(), "type %s with no clips", compositionType)
	}
}

func TestCanSubmitStatic(t *testing.T) {
	b, _ := New(domain.TypeStatic)
	b.AddClip("https://example.com/a.mp4")
	assert.False(t, b.CanSubmit())

	b.SetLayout("grid-2x2")
	assert.True(t, b.CanSubmit())
}

func TestCanSubmitAnimated(t *testing.T) {
	b, _ := New(domain.TypeAnimated)
	b.AddClip("https://example.com/a.mp4")
	assert.False(t, b.CanSubmit())

	b.SetAnimation("slide-in")
	assert.True(t, b.CanSubmit())
}

func TestCanSubmitPaced(t *testing.T) {
	b, _ := New(domain.TypePaced)
	b.AddClip("https://example.com/a.mp4")
	assert.False(t, b.CanSubmit())

	b.SetPacing("fast")
	assert.True(t, b.CanSubmit())
}

func TestCanSubmitMusicVideo(t *testing.T) {
	b, _ := New(domain.TypeMusicVideo)
	b.AddClip("https://example.com/a.mp4")
	assert.False(t, b.CanSubmit())

	b.AttachMusic("https://example.com/track.mp3")
	assert.False(t, b.CanSubmit(), "beat analysis still missing")

	require.NoError(t, b.SetBeatAnalysis(testAnalysis()))
	assert.True(t, b.CanSubmit())
}

func TestCanSubmitPodcastAndSocialMediaNeedOnlyClips(t *testing.T) {
	for _, compositionType := range []domain.CompositionType{domain.TypePodcast, domain.TypeSocialMedia} {
		b, _ := New(compositionType)
		b.AddClip("https://example.com/a.mp4")
		assert.True(t, b.CanSubmit(), "type %s", compositionType)
	}
}

func TestTypeSwitchPreservesAuxiliaryParameters(t *testing.T) {
	b, _ := New(domain.TypeStatic)
	b.AddClip("https://example.com/a.mp4")
	b.SetLayout("grid-2x2")
	require.True(t, b.CanSubmit())

	// Switching away ignores the layout but does not clear it.
	require.NoError(t, b.SetType(domain.TypeAnimated))
	assert.False(t, b.CanSubmit())

	// Switching back re-enables submission without re-choosing.
	require.NoError(t, b.SetType(domain.TypeStatic))
	assert.True(t, b.CanSubmit())
}

func TestAttachMusicInvalidatesBeatAnalysis(t *testing.T) {
	b, _ := New(domain.TypeMusicVideo)
	b.AddClip("https://example.com/a.mp4")
	b.AttachMusic("https://example.com/track.mp3")
	require.NoError(t, b.SetBeatAnalysis(testAnalysis()))
	require.True(t, b.CanSubmit())

	// A different track needs fresh analysis.
	b.AttachMusic("https://example.com/other.mp3")
	_, ok := b.BeatAnalysis()
	assert.False(t, ok)
	assert.False(t, b.CanSubmit())

	// Re-attaching the same track keeps the analysis.
	require.NoError(t, b.SetBeatAnalysis(testAnalysis()))
	b.AttachMusic("https://example.com/other.mp3")
	_, ok = b.BeatAnalysis()
	assert.True(t, ok)
}

func TestSetBeatAnalysisRequiresMusic(t *testing.T) {
	b, _ := New(domain.TypeMusicVideo)
	assert.ErrorIs(t, b.SetBeatAnalysis(testAnalysis()), ErrNoMusic)
}

func TestSetBeatAnalysisRejectsInvalidAnalysis(t *testing.T) {
	b, _ := New(domain.TypeMusicVideo)
	b.AttachMusic("https://example.com/track.mp3")

	bad := testAnalysis()
	bad.BPM = 0
	assert.Error(t, b.SetBeatAnalysis(bad))
}

func TestBuildFailsWhenNotReady(t *testing.T) {
	b, _ := New(domain.TypeStatic)
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, err, ErrNoClips)
}

func TestBuildCarriesOnlyMeaningfulParameters(t *testing.T) {
	b, _ := New(domain.TypeStatic)
	b.AddClip("https://example.com/a.mp4")
	b.SetLayout("grid-2x2")
	// Stale choices from other types must not leak into the request.
	b.SetPacing("fast")
	b.SetAnimation("slide-in")

	req, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.TypeStatic, req.CompositionType)
	assert.Equal(t, "grid-2x2", req.LayoutID)
	assert.Empty(t, req.PacingID)
	assert.Empty(t, req.AnimationID)
	assert.Nil(t, req.BeatAnalysis)
}

func TestBuildMusicVideoDefaultsStyle(t *testing.T) {
	b, _ := New(domain.TypeMusicVideo)
	b.AddClip("https://example.com/a.mp4")
	b.AttachMusic("https://example.com/track.mp3")
	b.SetMusicVolume(0.8)
	require.NoError(t, b.SetBeatAnalysis(testAnalysis()))

	req, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.StyleOnBeat, req.MusicVideoStyle)
	assert.Equal(t, "https://example.com/track.mp3", req.BackgroundMusicURL)
	require.NotNil(t, req.MusicVolume)
	assert.Equal(t, 0.8, *req.MusicVolume)
	require.NotNil(t, req.BeatAnalysis)
}

func TestBuildSocialMediaDefaultsFormat(t *testing.T) {
	b, _ := New(domain.TypeSocialMedia)
	b.AddClip("https://example.com/a.mp4")

	req, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.FormatVertical9x16, req.SocialMediaFormat)

	require.NoError(t, b.SetFormat(domain.FormatSquare1x1))
	req, err = b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.FormatSquare1x1, req.SocialMediaFormat)
}

func TestSetMusicVolumeClamps(t *testing.T) {
	b, _ := New(domain.TypeMusicVideo)
	b.SetMusicVolume(1.7)
	b.AddClip("https://example.com/a.mp4")
	b.AttachMusic("https://example.com/track.mp3")
	require.NoError(t, b.SetBeatAnalysis(testAnalysis()))

	req, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, req.MusicVolume)
	assert.Equal(t, 1.0, *req.MusicVolume)
}

func TestScenarioStaticSubmission(t *testing.T) {
	// Three uploaded clips, type static, a layout chosen.
	b, err := New(domain.TypeStatic)
	require.NoError(t, err)
	b.SetClips([]string{
		"https://example.com/clip1.mp4",
		"https://example.com/clip2.mp4",
		"https://example.com/clip3.mp4",
	})
	b.SetLayout("grid-3x1")

	require.True(t, b.CanSubmit())
	req, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.CompositionType("static-layout"), req.CompositionType)
	assert.Len(t, req.VideoURLs, 3)
}

func TestValidateWireRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.CompositionRequest
		wantErr error
	}{
		{
			name:    "unknown type",
			req:     domain.CompositionRequest{CompositionType: "bogus", VideoURLs: []string{"u"}},
			wantErr: ErrUnknownType,
		},
		{
			name:    "empty clips",
			req:     domain.CompositionRequest{CompositionType: domain.TypePodcast},
			wantErr: ErrNoClips,
		},
		{
			name:    "static without layout",
			req:     domain.CompositionRequest{CompositionType: domain.TypeStatic, VideoURLs: []string{"u"}},
			wantErr: ErrNoLayout,
		},
		{
			name: "music video without analysis",
			req: domain.CompositionRequest{
				CompositionType:    domain.TypeMusicVideo,
				VideoURLs:          []string{"u"},
				BackgroundMusicURL: "https://example.com/t.mp3",
			},
			wantErr: ErrNoBeatAnalysis,
		},
		{
			name: "podcast ready",
			req:  domain.CompositionRequest{CompositionType: domain.TypePodcast, VideoURLs: []string{"u"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
