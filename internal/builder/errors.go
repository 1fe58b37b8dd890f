package builder

import "errors"

var (
	ErrUnknownType    = errors.New("unknown composition type")
	ErrUnknownStyle   = errors.New("unknown music video style")
	ErrUnknownFormat  = errors.New("unknown social media format")
	ErrNotReady       = errors.New("composition not ready to submit")
	ErrNoClips        = errors.New("at least one clip is required")
	ErrNoLayout       = errors.New("a layout must be chosen")
	ErrNoAnimation    = errors.New("an animation must be chosen")
	ErrNoPacing       = errors.New("a pacing must be chosen")
	ErrNoMusic        = errors.New("background music must be attached")
	ErrNoBeatAnalysis = errors.New("beat analysis has not been run for the attached music")
)
