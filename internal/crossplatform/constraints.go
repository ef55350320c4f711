// Package crossplatform adapts content authored for one platform into the
// constraints and conventions of another. The constraint and rule tables
// are static: three platforms, six directed adaptation pairs.
package crossplatform

import (
	"github.com/creatorpulse/backend/internal/platform"
)

// Constraints describes what a platform accepts and rewards
type Constraints struct {
	MaxTitleLength       int
	MaxDescriptionLength int
	// Optimal duration window in seconds. Content outside it is clamped
	// to the nearest bound.
	OptimalDurationMin int
	OptimalDurationMax int
	AllowedFormats     []string
	Features           []string
	// Platform-conventional hashtags merged into adapted tag lists
	Hashtags []string
}

// constraintTable is the fixed three-platform constraint set
var constraintTable = map[platform.Platform]Constraints{
	platform.YouTube: {
		MaxTitleLength:       100,
		MaxDescriptionLength: 5000,
		OptimalDurationMin:   480,
		OptimalDurationMax:   900,
		AllowedFormats:       []string{"long-form", "tutorial", "vlog", "short"},
		Features:             []string{"chapters", "end-screens", "cards", "premieres"},
		Hashtags:             []string{"#youtube", "#creator", "#subscribe"},
	},
	platform.TikTok: {
		MaxTitleLength:       100,
		MaxDescriptionLength: 2200,
		OptimalDurationMin:   15,
		OptimalDurationMax:   60,
		AllowedFormats:       []string{"short-form", "highlight", "teaser"},
		Features:             []string{"duets", "stitches", "sounds", "effects"},
		Hashtags:             []string{"#fyp", "#foryou", "#viral", "#tiktok"},
	},
	platform.Twitch: {
		MaxTitleLength:       140,
		MaxDescriptionLength: 500,
		OptimalDurationMin:   1800,
		OptimalDurationMax:   14400,
		AllowedFormats:       []string{"live", "vod", "clip"},
		Features:             []string{"raids", "clips", "channel-points", "predictions"},
		Hashtags:             []string{"#twitch", "#live", "#stream"},
	},
}

// ConstraintsFor returns the constraint profile for a platform.
func ConstraintsFor(p platform.Platform) (Constraints, bool) {
	c, ok := constraintTable[p]
	return c, ok
}

// formatRemap translates a source format tag when the target platform
// doesn't allow it. Misses fall back to the target's first allowed format.
var formatRemap = map[string]map[platform.Platform]string{
	"long-form": {
		platform.TikTok: "highlight",
		platform.Twitch: "vod",
	},
	"tutorial": {
		platform.TikTok: "short-form",
		platform.Twitch: "vod",
	},
	"vlog": {
		platform.TikTok: "short-form",
		platform.Twitch: "vod",
	},
	"short-form": {
		platform.YouTube: "short",
		platform.Twitch:  "clip",
	},
	"highlight": {
		platform.YouTube: "short",
		platform.Twitch:  "clip",
	},
	"live": {
		platform.YouTube: "long-form",
		platform.TikTok:  "highlight",
	},
	"vod": {
		platform.YouTube: "long-form",
		platform.TikTok:  "highlight",
	},
	"clip": {
		platform.YouTube: "short",
		platform.TikTok:  "short-form",
	},
}

// pairKey is the ordered (source, target) key for the adaptation rule table
type pairKey struct {
	source platform.Platform
	target platform.Platform
}

// AdaptationRule carries the pair-specific guidance attached to every
// adaptation between two platforms.
type AdaptationRule struct {
	Suggestions []string
}

// ruleTable covers the six directed pairs. Lookups go through the map so
// a missing pair stays a real failure path rather than a compile-time
// exhaustive switch.
var ruleTable = map[pairKey]AdaptationRule{
	{platform.YouTube, platform.TikTok}: {
		Suggestions: []string{
			"Pull the strongest 15-60 seconds as a vertical cut",
			"Hook viewers in the first 2 seconds",
			"Use trending sounds to boost discovery",
		},
	},
	{platform.YouTube, platform.Twitch}: {
		Suggestions: []string{
			"Turn the video topic into a live walkthrough with chat Q&A",
			"Schedule the stream and announce it on your channel",
		},
	},
	{platform.TikTok, platform.YouTube}: {
		Suggestions: []string{
			"Expand the short into a full video with context and detail",
			"Add chapters so viewers can jump to the highlight",
		},
	},
	{platform.TikTok, platform.Twitch}: {
		Suggestions: []string{
			"React to your own short live and expand on it with chat",
			"Clip stream highlights for reuse",
		},
	},
	{platform.Twitch, platform.YouTube}: {
		Suggestions: []string{
			"Edit the VOD down to the best moments",
			"Write a searchable title - stream titles rarely rank",
		},
	},
	{platform.Twitch, platform.TikTok}: {
		Suggestions: []string{
			"Post clipped stream highlights as vertical shorts",
			"Caption the clip - most viewers watch muted",
		},
	},
}

// RuleFor returns the adaptation rule for a directed platform pair.
func RuleFor(source, target platform.Platform) (AdaptationRule, bool) {
	rule, ok := ruleTable[pairKey{source: source, target: target}]
	return rule, ok
}
