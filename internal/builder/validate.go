package builder

import (
	"fmt"

	"github.com/clipforge/clip-composer/internal/domain"
)

// Validate applies the readiness gate to an already-constructed wire
// request, for submissions arriving over the API rather than through a
// Builder. Requests failing validation never reach the rendering service.
func Validate(req *domain.CompositionRequest) error {
	if !req.CompositionType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, req.CompositionType)
	}
	if len(req.VideoURLs) == 0 {
		return ErrNoClips
	}

	switch req.CompositionType {
	case domain.TypeStatic:
		if req.LayoutID == "" {
			return ErrNoLayout
		}
	case domain.TypeAnimated:
		if req.AnimationID == "" {
			return ErrNoAnimation
		}
	case domain.TypePaced:
		if req.PacingID == "" {
			return ErrNoPacing
		}
	case domain.TypeMusicVideo:
		if req.BackgroundMusicURL == "" {
			return ErrNoMusic
		}
		if req.BeatAnalysis == nil {
			return ErrNoBeatAnalysis
		}
		if err := req.BeatAnalysis.Validate(); err != nil {
			return err
		}
		if req.MusicVideoStyle != "" && !req.MusicVideoStyle.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownStyle, req.MusicVideoStyle)
		}
	case domain.TypeSocialMedia:
		if req.SocialMediaFormat != "" && !req.SocialMediaFormat.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownFormat, req.SocialMediaFormat)
		}
	}

	if req.MusicVolume != nil && (*req.MusicVolume < 0 || *req.MusicVolume > 1) {
		return fmt.Errorf("music volume %f out of range [0,1]", *req.MusicVolume)
	}
	return nil
}
