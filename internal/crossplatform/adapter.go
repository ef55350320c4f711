package crossplatform

import (
	"fmt"
	"strings"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/platform"
)

const (
	// maxTagLength filters out unwieldy source tags before merging
	maxTagLength = 30
	// maxTags caps the adapted tag list
	maxTags = 10
	// ellipsis marks truncated titles
	ellipsis = "..."
)

// PlatformContent is the transient value object passed into adaptation.
// It is not persisted here; callers decide whether to store the result.
type PlatformContent struct {
	ID          string            `json:"id"`
	Platform    platform.Platform `json:"platform"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Format      string            `json:"format"`
	Duration    *int              `json:"duration,omitempty"` // seconds
	Tags        []string          `json:"tags"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
}

// FieldChanges is the adaptation patch. A nil field means the source
// value already fits the target platform and stays unchanged.
type FieldChanges struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Format      *string  `json:"format,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Empty reports whether no field needed changing.
func (f FieldChanges) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Format == nil &&
		f.Duration == nil && f.Tags == nil
}

// ContentAdaptation is the result of adapting one content item to a
// target platform.
type ContentAdaptation struct {
	SourcePlatform platform.Platform `json:"source_platform"`
	TargetPlatform platform.Platform `json:"target_platform"`
	Adaptations    FieldChanges      `json:"adaptations"`
	Suggestions    []string          `json:"suggestions"`
}

// Adapter produces field-level content adaptations between the fixed
// platform set. Stateless; safe for concurrent use.
type Adapter struct{}

// NewAdapter creates a content adapter
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Adapt computes the patch needed to republish source content on the
// target platform.
func (a *Adapter) Adapt(source PlatformContent, target platform.Platform) (*ContentAdaptation, error) {
	if _, ok := ConstraintsFor(source.Platform); !ok {
		return nil, apperrors.UnsupportedPlatform(source.Platform.String())
	}
	constraints, ok := ConstraintsFor(target)
	if !ok {
		return nil, apperrors.UnsupportedPlatform(target.String())
	}

	rule, ok := RuleFor(source.Platform, target)
	if !ok {
		return nil, apperrors.UnsupportedPlatform(
			fmt.Sprintf("%s to %s", source.Platform, target))
	}

	adaptation := &ContentAdaptation{
		SourcePlatform: source.Platform,
		TargetPlatform: target,
	}

	if title, changed := adaptTitle(source.Title, constraints.MaxTitleLength); changed {
		adaptation.Adaptations.Title = &title
		adaptation.Suggestions = append(adaptation.Suggestions,
			fmt.Sprintf("Title shortened to fit %s's %d character limit", target, constraints.MaxTitleLength))
	}

	if desc, changed := adaptDescription(source.Description, constraints.MaxDescriptionLength); changed {
		adaptation.Adaptations.Description = &desc
		adaptation.Suggestions = append(adaptation.Suggestions,
			fmt.Sprintf("Description condensed to whole sentences under %d characters", constraints.MaxDescriptionLength))
	}

	if format, changed := adaptFormat(source.Format, target, constraints); changed {
		adaptation.Adaptations.Format = &format
		adaptation.Suggestions = append(adaptation.Suggestions,
			fmt.Sprintf("Format changed from %s to %s", source.Format, format))
	}

	if source.Duration != nil {
		if duration, changed := adaptDuration(*source.Duration, constraints); changed {
			adaptation.Adaptations.Duration = &duration
			adaptation.Suggestions = append(adaptation.Suggestions,
				fmt.Sprintf("Duration adjusted to %s's optimal %d-%d second range",
					target, constraints.OptimalDurationMin, constraints.OptimalDurationMax))
		}
	}

	if tags, changed := adaptTags(source.Tags, constraints.Hashtags); changed {
		adaptation.Adaptations.Tags = tags
	}

	adaptation.Suggestions = append(adaptation.Suggestions, rule.Suggestions...)

	return adaptation, nil
}

// adaptTitle truncates to (max - 3) characters plus an ellipsis when the
// title exceeds the platform limit. Lengths are counted in runes.
func adaptTitle(title string, maxLength int) (string, bool) {
	runes := []rune(title)
	if len(runes) <= maxLength {
		return "", false
	}
	return string(runes[:maxLength-len(ellipsis)]) + ellipsis, true
}

// adaptDescription greedily packs whole sentences (split on ". ") until
// the next sentence would overflow the limit. Never cuts mid-sentence.
func adaptDescription(description string, maxLength int) (string, bool) {
	if len(description) <= maxLength {
		return "", false
	}

	sentences := strings.Split(description, ". ")
	var b strings.Builder
	for i, sentence := range sentences {
		candidate := sentence
		if i < len(sentences)-1 {
			candidate += ". "
		}
		if b.Len()+len(candidate) > maxLength {
			break
		}
		b.WriteString(candidate)
	}

	return strings.TrimSuffix(b.String(), " "), true
}

// adaptFormat remaps the source format when the target doesn't allow it,
// falling back to the target's first allowed format.
func adaptFormat(format string, target platform.Platform, constraints Constraints) (string, bool) {
	for _, allowed := range constraints.AllowedFormats {
		if format == allowed {
			return "", false
		}
	}

	if targets, ok := formatRemap[format]; ok {
		if mapped, ok := targets[target]; ok {
			return mapped, true
		}
	}

	return constraints.AllowedFormats[0], true
}

// adaptDuration clamps to the nearest bound of the optimal range.
func adaptDuration(duration int, constraints Constraints) (int, bool) {
	if duration < constraints.OptimalDurationMin {
		return constraints.OptimalDurationMin, true
	}
	if duration > constraints.OptimalDurationMax {
		return constraints.OptimalDurationMax, true
	}
	return 0, false
}

// adaptTags unions the length-filtered source tags with the platform's
// conventional hashtags, deduplicated and capped at maxTags.
func adaptTags(sourceTags, platformHashtags []string) ([]string, bool) {
	seen := make(map[string]bool)
	merged := make([]string, 0, maxTags)

	add := func(tag string) {
		if tag == "" || len(tag) > maxTagLength || seen[tag] || len(merged) >= maxTags {
			return
		}
		seen[tag] = true
		merged = append(merged, tag)
	}

	for _, tag := range sourceTags {
		add(tag)
	}
	for _, tag := range platformHashtags {
		add(tag)
	}

	if equalTags(merged, sourceTags) {
		return nil, false
	}
	return merged, true
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
