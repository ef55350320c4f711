package crossplatform

import (
	"github.com/creatorpulse/backend/internal/platform"
)

// PlatformStrategy is the per-platform slice of a cross-platform strategy
type PlatformStrategy struct {
	Approach        string   `json:"approach"`
	Modifications   []string `json:"modifications"`
	EstimatedEffort string   `json:"estimated_effort"` // low, medium, high
	Tips            []string `json:"tips"`
}

// CrossPlatformStrategy is static reference data describing how one
// content type plays across the platform set.
type CrossPlatformStrategy struct {
	ContentType string                                 `json:"content_type"`
	Platforms   map[platform.Platform]PlatformStrategy `json:"platforms"`
}

// strategyTable keys: tutorial, entertainment, educational. Unknown
// content types fall back to entertainment.
var strategyTable = map[string]CrossPlatformStrategy{
	"tutorial": {
		ContentType: "tutorial",
		Platforms: map[platform.Platform]PlatformStrategy{
			platform.YouTube: {
				Approach:        "Full step-by-step walkthrough with chapters",
				Modifications:   []string{"Add timestamped chapters", "Include resource links in description"},
				EstimatedEffort: "medium",
				Tips:            []string{"Front-load the end result so viewers know the payoff", "Pin a comment with prerequisites"},
			},
			platform.TikTok: {
				Approach:        "Single-tip vertical cut of the hardest step",
				Modifications:   []string{"Cut to under 60 seconds", "Add on-screen text for each step"},
				EstimatedEffort: "low",
				Tips:            []string{"Open with the finished result", "Point viewers to the full version"},
			},
			platform.Twitch: {
				Approach:        "Live build-along with chat troubleshooting",
				Modifications:   []string{"Expand into a 1-2 hour session", "Prepare checkpoints to recap for late joiners"},
				EstimatedEffort: "high",
				Tips:            []string{"Save the VOD for editing into YouTube chapters later"},
			},
		},
	},
	"entertainment": {
		ContentType: "entertainment",
		Platforms: map[platform.Platform]PlatformStrategy{
			platform.YouTube: {
				Approach:        "Polished edit with a strong narrative arc",
				Modifications:   []string{"Add b-roll and music", "Craft a clickable thumbnail moment"},
				EstimatedEffort: "medium",
				Tips:            []string{"The first 30 seconds decide retention"},
			},
			platform.TikTok: {
				Approach:        "Raw, fast-cut vertical version",
				Modifications:   []string{"Trim to the single funniest moment", "Use a trending sound"},
				EstimatedEffort: "low",
				Tips:            []string{"Post 1-3 variations and let the algorithm pick"},
			},
			platform.Twitch: {
				Approach:        "Unscripted live version with audience participation",
				Modifications:   []string{"Add chat-driven segments", "Set up channel point redemptions"},
				EstimatedEffort: "medium",
				Tips:            []string{"Clip highlights during the stream, not after"},
			},
		},
	},
	"educational": {
		ContentType: "educational",
		Platforms: map[platform.Platform]PlatformStrategy{
			platform.YouTube: {
				Approach:        "Structured lesson with visuals and summary",
				Modifications:   []string{"Add diagrams or screen recordings", "Close with a recap card"},
				EstimatedEffort: "high",
				Tips:            []string{"Searchable titles outperform clever ones for educational content"},
			},
			platform.TikTok: {
				Approach:        "One-concept explainer under 60 seconds",
				Modifications:   []string{"Strip to a single takeaway", "Caption every sentence"},
				EstimatedEffort: "low",
				Tips:            []string{"Series perform better than standalone explainers"},
			},
			platform.Twitch: {
				Approach:        "Office-hours style live session",
				Modifications:   []string{"Take questions between segments", "Share your screen for worked examples"},
				EstimatedEffort: "medium",
				Tips:            []string{"Announce the topic in advance so the right audience shows up"},
			},
		},
	},
}

// Strategy returns the fixed per-content-type strategy table entry.
// Content types outside the table fall back to the entertainment profile.
func (a *Adapter) Strategy(contentType string) *CrossPlatformStrategy {
	if strategy, ok := strategyTable[contentType]; ok {
		return &strategy
	}
	fallback := strategyTable["entertainment"]
	return &fallback
}
