package crossplatform

import (
	"strings"
	"testing"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestAdaptTitleTruncation(t *testing.T) {
	adapter := NewAdapter()

	longTitle := strings.Repeat("a", 120)
	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    longTitle,
		Format:   "long-form",
	}, platform.TikTok)
	require.NoError(t, err)

	require.NotNil(t, adaptation.Adaptations.Title)
	adapted := *adaptation.Adaptations.Title
	assert.Len(t, adapted, 100)
	assert.True(t, strings.HasSuffix(adapted, "..."))
	assert.Equal(t, strings.Repeat("a", 97), strings.TrimSuffix(adapted, "..."))
}

func TestAdaptTitleFitsUnchanged(t *testing.T) {
	adapter := NewAdapter()

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    "Short title",
		Format:   "long-form",
	}, platform.TikTok)
	require.NoError(t, err)

	assert.Nil(t, adaptation.Adaptations.Title)
}

func TestAdaptTitleCountsRunes(t *testing.T) {
	adapter := NewAdapter()

	// 120 multi-byte runes; byte length would overflow much earlier
	longTitle := strings.Repeat("ü", 120)
	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    longTitle,
		Format:   "long-form",
	}, platform.TikTok)
	require.NoError(t, err)

	require.NotNil(t, adaptation.Adaptations.Title)
	runes := []rune(*adaptation.Adaptations.Title)
	assert.Len(t, runes, 100)
	assert.Equal(t, strings.Repeat("ü", 97)+"...", *adaptation.Adaptations.Title)
}

func TestAdaptDescriptionKeepsWholeSentences(t *testing.T) {
	adapter := NewAdapter()

	sentence := strings.Repeat("w", 200) // each sentence ~202 bytes with ". "
	description := strings.Join([]string{sentence, sentence, sentence, sentence}, ". ")
	require.Greater(t, len(description), 500)

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform:    platform.YouTube,
		Title:       "t",
		Description: description,
		Format:      "long-form",
	}, platform.Twitch)
	require.NoError(t, err)

	require.NotNil(t, adaptation.Adaptations.Description)
	adapted := *adaptation.Adaptations.Description
	assert.LessOrEqual(t, len(adapted), 500)
	// Two whole sentences fit under Twitch's 500 char limit
	assert.Equal(t, sentence+". "+sentence+".", adapted)
}

func TestAdaptDurationClampsUp(t *testing.T) {
	adapter := NewAdapter()

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.Twitch,
		Title:    "clip",
		Format:   "clip",
		Duration: intPtr(30),
	}, platform.YouTube)
	require.NoError(t, err)

	require.NotNil(t, adaptation.Adaptations.Duration)
	assert.Equal(t, 480, *adaptation.Adaptations.Duration)
}

func TestAdaptDurationClampsDown(t *testing.T) {
	adapter := NewAdapter()

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    "long video",
		Format:   "long-form",
		Duration: intPtr(600),
	}, platform.TikTok)
	require.NoError(t, err)

	require.NotNil(t, adaptation.Adaptations.Duration)
	assert.Equal(t, 60, *adaptation.Adaptations.Duration)
}

func TestAdaptDurationInRangeUnchanged(t *testing.T) {
	adapter := NewAdapter()

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    "video",
		Format:   "long-form",
		Duration: intPtr(3600),
	}, platform.Twitch)
	require.NoError(t, err)
	assert.Nil(t, adaptation.Adaptations.Duration)
}

func TestAdaptFormatRemap(t *testing.T) {
	adapter := NewAdapter()

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    "howto",
		Format:   "tutorial",
	}, platform.TikTok)
	require.NoError(t, err)

	require.NotNil(t, adaptation.Adaptations.Format)
	assert.Equal(t, "short-form", *adaptation.Adaptations.Format)
}

func TestAdaptFormatFallbackToFirstAllowed(t *testing.T) {
	adapter := NewAdapter()

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    "video",
		Format:   "something-unknown",
	}, platform.TikTok)
	require.NoError(t, err)

	require.NotNil(t, adaptation.Adaptations.Format)
	assert.Equal(t, "short-form", *adaptation.Adaptations.Format)
}

func TestAdaptTagsMergeDedupAndCap(t *testing.T) {
	adapter := NewAdapter()

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    "video",
		Format:   "long-form",
		Tags: []string{
			"gaming", "gaming", // duplicate
			strings.Repeat("x", 31), // over the 30 char tag limit
			"tips", "tricks", "speedrun", "retro", "indie", "strategy", "review",
		},
	}, platform.TikTok)
	require.NoError(t, err)

	require.NotNil(t, adaptation.Adaptations.Tags)
	tags := adaptation.Adaptations.Tags
	assert.LessOrEqual(t, len(tags), 10)
	assert.NotContains(t, tags, strings.Repeat("x", 31))

	seen := map[string]int{}
	for _, tag := range tags {
		seen[tag]++
	}
	assert.Equal(t, 1, seen["gaming"])

	// Platform hashtags fill remaining capacity
	assert.Contains(t, tags, "#fyp")
}

func TestAdaptSamePlatformPairUnsupported(t *testing.T) {
	adapter := NewAdapter()

	_, err := adapter.Adapt(PlatformContent{
		Platform: platform.YouTube,
		Title:    "video",
		Format:   "long-form",
	}, platform.YouTube)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnsupportedPlatform(err))
}

func TestAdaptUnknownPlatformRejected(t *testing.T) {
	adapter := NewAdapter()

	_, err := adapter.Adapt(PlatformContent{
		Platform: platform.Platform("instagram"),
		Title:    "reel",
	}, platform.YouTube)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnsupportedPlatform(err))
}

func TestAdaptAppendsPairSuggestions(t *testing.T) {
	adapter := NewAdapter()

	adaptation, err := adapter.Adapt(PlatformContent{
		Platform: platform.Twitch,
		Title:    "stream",
		Format:   "vod",
	}, platform.TikTok)
	require.NoError(t, err)

	assert.Contains(t, adaptation.Suggestions, "Post clipped stream highlights as vertical shorts")
}

func TestFieldChangesEmpty(t *testing.T) {
	assert.True(t, FieldChanges{}.Empty())
	title := "t"
	assert.False(t, FieldChanges{Title: &title}.Empty())
}
