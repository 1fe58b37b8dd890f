package pricing

import (
	"fmt"

	"github.com/clipforge/clip-composer/internal/domain"
)

// durationTier estimates processing time for clip counts up to MaxClips.
type durationTier struct {
	maxClips int
	estimate string
}

// durationOverflow extends the last tier as
// "{ceil(n/highDivisor)}-{ceil(n/lowDivisor)} minutes"; smaller divisors
// grow the estimate faster.
type durationOverflow struct {
	highDivisor int
	lowDivisor  int
}

// Podcast renders fastest, Static next; Paced and MusicVideo are medium;
// Animated is the slowest.
var durationTables = map[domain.CompositionType][]durationTier{
	domain.TypeStatic: {
		{2, "1-2 minutes"}, {5, "2-3 minutes"}, {10, "2-4 minutes"}, {25, "3-6 minutes"},
		{50, "5-8 minutes"}, {100, "8-12 minutes"}, {200, "12-18 minutes"},
	},
	domain.TypeAnimated: {
		{2, "3-5 minutes"}, {5, "4-7 minutes"}, {10, "6-10 minutes"}, {25, "8-14 minutes"},
		{50, "12-18 minutes"}, {100, "18-26 minutes"}, {200, "26-36 minutes"},
	},
	domain.TypePaced: {
		{2, "2-3 minutes"}, {5, "2-4 minutes"}, {10, "3-6 minutes"}, {25, "5-9 minutes"},
		{50, "8-12 minutes"}, {100, "12-18 minutes"}, {200, "18-25 minutes"},
	},
	domain.TypeMusicVideo: {
		{2, "2-4 minutes"}, {5, "3-5 minutes"}, {10, "4-7 minutes"}, {25, "6-10 minutes"},
		{50, "9-14 minutes"}, {100, "14-20 minutes"}, {200, "20-28 minutes"},
	},
	domain.TypePodcast: {
		{2, "1-2 minutes"}, {6, "1-3 minutes"}, {12, "2-4 minutes"},
	},
	domain.TypeSocialMedia: {
		{2, "1-2 minutes"}, {5, "2-3 minutes"}, {10, "2-4 minutes"}, {25, "4-6 minutes"},
		{50, "6-9 minutes"}, {100, "9-14 minutes"},
	},
}

var durationOverflows = map[domain.CompositionType]durationOverflow{
	domain.TypeStatic:      {16, 10},
	domain.TypeAnimated:    {8, 5},
	domain.TypePaced:       {10, 7},
	domain.TypeMusicVideo:  {9, 6},
	domain.TypePodcast:     {6, 3},
	domain.TypeSocialMedia: {11, 7},
}

// Duration returns a human-readable processing time range for rendering
// clipCount clips as the given composition type. Advisory only; it never
// gates submission.
func Duration(t domain.CompositionType, clipCount int) (string, error) {
	if clipCount <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidClipCount, clipCount)
	}
	tiers, ok := durationTables[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	for _, tier := range tiers {
		if clipCount <= tier.maxClips {
			return tier.estimate, nil
		}
	}

	over := durationOverflows[t]
	lo := ceilDiv(clipCount, over.highDivisor)
	hi := ceilDiv(clipCount, over.lowDivisor)
	return fmt.Sprintf("%d-%d minutes", lo, hi), nil
}
