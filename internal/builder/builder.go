// Package builder holds the composition-type state machine for an authoring
// session: which auxiliary parameters the chosen type requires, whether the
// composition is ready to submit, and the construction of the wire request.
package builder

import (
	"fmt"

	"github.com/clipforge/clip-composer/internal/domain"
)

// Builder accumulates the user's choices for one render submission. Exactly
// one composition type is active at a time; switching type never clears the
// auxiliary parameters chosen for other types, they are simply ignored until
// the matching type is re-selected.
type Builder struct {
	compositionType domain.CompositionType
	clipURLs        []string

	layoutID    string
	pacingID    string
	animationID string

	musicURL     string
	musicVolume  *float64
	beatAnalysis *domain.BeatAnalysis
	style        domain.MusicVideoStyle

	format domain.SocialFormat
}

// New creates a builder with the given active composition type.
func New(t domain.CompositionType) (*Builder, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return &Builder{compositionType: t}, nil
}

// SetType switches the active composition type. Previously chosen auxiliary
// parameters are retained.
func (b *Builder) SetType(t domain.CompositionType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	b.compositionType = t
	return nil
}

// Type returns the active composition type.
func (b *Builder) Type() domain.CompositionType {
	return b.compositionType
}

// SetClips replaces the clip list.
func (b *Builder) SetClips(urls []string) {
	b.clipURLs = append([]string(nil), urls...)
}

// AddClip appends one clip URL, typically as an upload task resolves.
func (b *Builder) AddClip(url string) {
	b.clipURLs = append(b.clipURLs, url)
}

// ClipCount returns the number of attached clips.
func (b *Builder) ClipCount() int {
	return len(b.clipURLs)
}

// SetLayout chooses the layout preset used by Static compositions.
func (b *Builder) SetLayout(id string) { b.layoutID = id }

// SetPacing chooses the pacing preset used by Paced compositions.
func (b *Builder) SetPacing(id string) { b.pacingID = id }

// SetAnimation chooses the animation preset used by Animated compositions.
func (b *Builder) SetAnimation(id string) { b.animationID = id }

// AttachMusic sets the background music track. Any previously attached beat
// analysis belongs to the old track and is discarded, so MusicVideo cannot
// be submitted again until the new track has been analyzed.
func (b *Builder) AttachMusic(url string) {
	if url != b.musicURL {
		b.beatAnalysis = nil
	}
	b.musicURL = url
}

// SetMusicVolume sets the background music volume, clamped to [0,1].
func (b *Builder) SetMusicVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	b.musicVolume = &v
}

// SetBeatAnalysis attaches the beat-detection result for the current music
// track.
func (b *Builder) SetBeatAnalysis(a domain.BeatAnalysis) error {
	if b.musicURL == "" {
		return ErrNoMusic
	}
	if err := a.Validate(); err != nil {
		return err
	}
	b.beatAnalysis = &a
	return nil
}

// BeatAnalysis returns the attached beat analysis, if any.
func (b *Builder) BeatAnalysis() (domain.BeatAnalysis, bool) {
	if b.beatAnalysis == nil {
		return domain.BeatAnalysis{}, false
	}
	return *b.beatAnalysis, true
}

// SetStyle chooses the music video cut cadence.
func (b *Builder) SetStyle(s domain.MusicVideoStyle) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
	b.style = s
	return nil
}

// SetFormat chooses the social media aspect-ratio preset.
func (b *Builder) SetFormat(f domain.SocialFormat) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	b.format = f
	return nil
}

// CanSubmit reports whether the composition is ready to submit: at least
// one clip for every type, plus the active type's required auxiliary
// parameter. Podcast needs nothing further; SocialMedia's format has a
// default, so neither does it.
func (b *Builder) CanSubmit() bool {
	return b.readinessError() == nil
}

// readinessError returns nil when ready, or the first blocking condition.
func (b *Builder) readinessError() error {
	if len(b.clipURLs) == 0 {
		return ErrNoClips
	}
	switch b.compositionType {
	case domain.TypeStatic:
		if b.layoutID == "" {
			return ErrNoLayout
		}
	case domain.TypeAnimated:
		if b.animationID == "" {
			return ErrNoAnimation
		}
	case domain.TypePaced:
		if b.pacingID == "" {
			return ErrNoPacing
		}
	case domain.TypeMusicVideo:
		if b.musicURL == "" {
			return ErrNoMusic
		}
		if b.beatAnalysis == nil {
			return ErrNoBeatAnalysis
		}
	case domain.TypePodcast, domain.TypeSocialMedia:
		// No further selection required.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, b.compositionType)
	}
	return nil
}

// Build constructs the wire request for the active composition type. Only
// the auxiliary parameters meaningful for that type are carried; the
// readiness gate must pass or no request is constructed.
func (b *Builder) Build() (domain.CompositionRequest, error) {
	if err := b.readinessError(); err != nil {
		return domain.CompositionRequest{}, fmt.Errorf("%w: %w", ErrNotReady, err)
	}

	req := domain.CompositionRequest{
		CompositionType: b.compositionType,
		VideoURLs:       append([]string(nil), b.clipURLs...),
	}

	switch b.compositionType {
	case domain.TypeStatic:
		req.LayoutID = b.layoutID
	case domain.TypeAnimated:
		req.AnimationID = b.animationID
	case domain.TypePaced:
		req.PacingID = b.pacingID
	case domain.TypeMusicVideo:
		req.BackgroundMusicURL = b.musicURL
		req.MusicVolume = b.musicVolume
		analysis := *b.beatAnalysis
		req.BeatAnalysis = &analysis
		req.MusicVideoStyle = b.style
		if req.MusicVideoStyle == "" {
			req.MusicVideoStyle = domain.StyleOnBeat
		}
	case domain.TypeSocialMedia:
		req.SocialMediaFormat = b.format
		if req.SocialMediaFormat == "" {
			req.SocialMediaFormat = domain.FormatVertical9x16
		}
	}
	return req, nil
}
