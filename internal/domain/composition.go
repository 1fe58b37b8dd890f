package domain

import (
	"errors"
	"fmt"
)

// CompositionType identifies which kind of composition a request renders.
// The string values are the wire values expected by the rendering service.
type CompositionType string

const (
	TypeStatic      CompositionType = "static-layout"
	TypeAnimated    CompositionType = "animated"
	TypePaced       CompositionType = "paced-sequence"
	TypeMusicVideo  CompositionType = "music-video"
	TypePodcast     CompositionType = "podcast"
	TypeSocialMedia CompositionType = "social-media"
)

// Types lists every composition type in a stable order.
var Types = []CompositionType{
	TypeStatic,
	TypeAnimated,
	TypePaced,
	TypeMusicVideo,
	TypePodcast,
	TypeSocialMedia,
}

// Valid reports whether t is a known composition type.
func (t CompositionType) Valid() bool {
	switch t {
	case TypeStatic, TypeAnimated, TypePaced, TypeMusicVideo, TypePodcast, TypeSocialMedia:
		return true
	}
	return false
}

// MusicVideoStyle selects how often a music video cuts relative to the beat grid.
type MusicVideoStyle string

const (
	StyleOnBeat      MusicVideoStyle = "on-beat"
	StyleEvery2Beats MusicVideoStyle = "every-2-beats"
	StyleEvery4Beats MusicVideoStyle = "every-4-beats"
	StyleOnBars      MusicVideoStyle = "on-bars"
)

// Valid reports whether s is a known music video style.
func (s MusicVideoStyle) Valid() bool {
	switch s {
	case StyleOnBeat, StyleEvery2Beats, StyleEvery4Beats, StyleOnBars:
		return true
	}
	return false
}

// SocialFormat is the aspect-ratio preset for social media compositions.
type SocialFormat string

const (
	FormatVertical9x16 SocialFormat = "vertical-9-16"
	FormatSquare1x1    SocialFormat = "square-1-1"
	FormatVertical4x5  SocialFormat = "vertical-4-5"
)

// Valid reports whether f is a known social media format.
func (f SocialFormat) Valid() bool {
	switch f {
	case FormatVertical9x16, FormatSquare1x1, FormatVertical4x5:
		return true
	}
	return false
}

var (
	ErrInvalidBPM       = errors.New("bpm must be positive")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrNoBeats          = errors.New("beat list is empty")
	ErrBeatsOutOfOrder  = errors.New("beat timestamps must be strictly increasing")
	ErrNegativeBeatTime = errors.New("beat timestamps must not be negative")
)

// BeatAnalysis is the result of the external beat-detection service for one
// music asset. It is immutable once attached to a request.
type BeatAnalysis struct {
	BPM             float64   `json:"bpm"`
	Beats           []float64 `json:"beats"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// Validate checks the structural invariants of a beat analysis result.
func (b *BeatAnalysis) Validate() error {
	if b.BPM <= 0 {
		return fmt.Errorf("%w: %f", ErrInvalidBPM, b.BPM)
	}
	if b.DurationSeconds <= 0 {
		return fmt.Errorf("%w: %f", ErrInvalidDuration, b.DurationSeconds)
	}
	if len(b.Beats) == 0 {
		return ErrNoBeats
	}
	if b.Beats[0] < 0 {
		return fmt.Errorf("%w: %f", ErrNegativeBeatTime, b.Beats[0])
	}
	for i := 1; i < len(b.Beats); i++ {
		if b.Beats[i] <= b.Beats[i-1] {
			return fmt.Errorf("%w: index %d", ErrBeatsOutOfOrder, i)
		}
	}
	return nil
}

// CompositionRequest is the body submitted to the rendering service. Which
// optional fields are meaningful depends on CompositionType; the builder
// package enforces that before a request is constructed.
type CompositionRequest struct {
	CompositionType    CompositionType `json:"composition_type"`
	VideoURLs          []string        `json:"video_urls"`
	LayoutID           string          `json:"layout_id,omitempty"`
	PacingID           string          `json:"pacing_id,omitempty"`
	AnimationID        string          `json:"animation_id,omitempty"`
	BackgroundMusicURL string          `json:"background_music_url,omitempty"`
	MusicVolume        *float64        `json:"music_volume,omitempty"`
	BeatAnalysis       *BeatAnalysis   `json:"beat_analysis,omitempty"`
	MusicVideoStyle    MusicVideoStyle `json:"music_video_style,omitempty"`
	SocialMediaFormat  SocialFormat    `json:"social_media_format,omitempty"`
}
