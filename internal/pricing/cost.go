// Package pricing computes the advisory credit cost and processing-time
// estimate for a composition. Both are pure tier-table lookups keyed by
// composition type and clip count; neither is sent to the rendering service.
package pricing

import (
	"errors"
	"fmt"

	"github.com/clipforge/clip-composer/internal/domain"
)

var (
	ErrInvalidClipCount = errors.New("clip count must be positive")
	ErrUnknownType      = errors.New("unknown composition type")
)

// costTier prices clip counts up to and including MaxClips.
type costTier struct {
	maxClips int
	credits  int
}

// costOverflow extends the last tier linearly: each started block of
// stepClips clips beyond the last tier adds stepCredits.
type costOverflow struct {
	stepClips   int
	stepCredits int
}

// The tier boundaries are user-facing prices and must not drift.
var costTables = map[domain.CompositionType][]costTier{
	domain.TypeStatic: {
		{2, 10}, {3, 15}, {10, 30}, {25, 50}, {50, 80}, {100, 120}, {200, 200},
	},
	domain.TypeAnimated: {
		{2, 20}, {5, 40}, {10, 70}, {25, 110}, {50, 160}, {100, 220}, {200, 300},
	},
	domain.TypePaced: {
		{2, 15}, {5, 30}, {10, 50}, {25, 85}, {50, 125}, {100, 170}, {200, 240},
	},
	domain.TypeMusicVideo: {
		{2, 15}, {5, 30}, {10, 55}, {25, 90}, {50, 130}, {100, 180}, {200, 250},
	},
	domain.TypePodcast: {
		{2, 10}, {4, 15}, {6, 20}, {12, 30},
	},
	domain.TypeSocialMedia: {
		{2, 10}, {5, 20}, {10, 35}, {25, 60}, {50, 90}, {100, 130},
	},
}

var costOverflows = map[domain.CompositionType]costOverflow{
	domain.TypeStatic:      {50, 25},
	domain.TypeAnimated:    {50, 50},
	domain.TypePaced:       {50, 40},
	domain.TypeMusicVideo:  {50, 40},
	domain.TypePodcast:     {6, 15},
	domain.TypeSocialMedia: {25, 20},
}

// Cost returns the credit price for rendering clipCount clips as the given
// composition type. Lookup is first-match ascending over the type's tier
// table; beyond the last tier the type's overflow rule applies.
func Cost(t domain.CompositionType, clipCount int) (int, error) {
	if clipCount <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidClipCount, clipCount)
	}
	tiers, ok := costTables[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	for _, tier := range tiers {
		if clipCount <= tier.maxClips {
			return tier.credits, nil
		}
	}

	last := tiers[len(tiers)-1]
	over := costOverflows[t]
	extra := ceilDiv(clipCount-last.maxClips, over.stepClips)
	return last.credits + extra*over.stepCredits, nil
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
