package seed

import (
	"github.com/creatorpulse/backend/internal/models"
)

// templateCatalog is the shipped template library. Names are unique and
// double as the idempotency key during seeding.
var templateCatalog = []models.Template{
	{
		Name:        "Step-by-Step Tutorial",
		ContentType: "tutorial",
		Platform:    "youtube",
		Description: "Long-form walkthrough teaching one concrete skill from zero to done.",
		Outline: models.StringArray{
			"Hook: show the finished result first",
			"List prerequisites and tools",
			"Walk through each step with chapters",
			"Common mistakes and how to avoid them",
			"Recap and call to action",
		},
		Tags:             models.StringArray{"tutorial", "howto", "education"},
		EstimatedMinutes: 240,
	},
	{
		Name:        "Quick Tip Short",
		ContentType: "tutorial",
		Platform:    "tiktok",
		Description: "One tip, one take. Front-load the payoff in the first two seconds.",
		Outline: models.StringArray{
			"State the problem in one line",
			"Show the fix immediately",
			"Loop back to the opening frame",
		},
		Tags:             models.StringArray{"quicktip", "learnontiktok"},
		EstimatedMinutes: 45,
	},
	{
		Name:        "Live Build Session",
		ContentType: "tutorial",
		Platform:    "twitch",
		Description: "Multi-hour live session building something real with chat interaction.",
		Outline: models.StringArray{
			"Recap last session and goals for today",
			"Work in 45-minute focus blocks",
			"Chat Q&A between blocks",
			"End with a summary and next-session teaser",
		},
		Tags:             models.StringArray{"live", "coworking"},
		EstimatedMinutes: 180,
	},
	{
		Name:        "Weekly Vlog",
		ContentType: "entertainment",
		Platform:    "youtube",
		Description: "Personal weekly recap keeping the audience attached to the journey.",
		Outline: models.StringArray{
			"Cold open with the week's highlight",
			"Three segments, strongest first",
			"Honest struggle or lesson learned",
			"Tease next week",
		},
		Tags:             models.StringArray{"vlog", "weekly"},
		EstimatedMinutes: 300,
	},
	{
		Name:        "Trend Remix",
		ContentType: "entertainment",
		Platform:    "tiktok",
		Description: "Take a trending sound or format and bend it to your niche.",
		Outline: models.StringArray{
			"Pick a trend under 5 days old",
			"Keep the recognizable beat structure",
			"Swap the subject for your niche",
		},
		Tags:             models.StringArray{"trend", "remix"},
		EstimatedMinutes: 60,
	},
	{
		Name:        "Community Game Night",
		ContentType: "entertainment",
		Platform:    "twitch",
		Description: "Viewer-participation stream that converts lurkers into regulars.",
		Outline: models.StringArray{
			"Announce the game 24h ahead",
			"Reserve slots for chat members",
			"Clip-worthy moments every 30 minutes",
		},
		Tags:             models.StringArray{"community", "gaming"},
		EstimatedMinutes: 150,
	},
	{
		Name:        "Deep-Dive Explainer",
		ContentType: "educational",
		Platform:    "youtube",
		Description: "Research-heavy explainer establishing topical authority.",
		Outline: models.StringArray{
			"Open with the question everyone asks",
			"Three-act structure: context, mechanism, implications",
			"Cite sources in the description",
			"End with an open question for comments",
		},
		Tags:             models.StringArray{"explainer", "deepdive"},
		EstimatedMinutes: 480,
	},
	{
		Name:        "Myth vs Fact",
		ContentType: "educational",
		Platform:    "tiktok",
		Description: "Bust one common misconception per clip. Highly shareable.",
		Outline: models.StringArray{
			"State the myth as if it were true",
			"Hard cut: the evidence",
			"One-line takeaway",
		},
		Tags:             models.StringArray{"mythbusting", "factcheck"},
		EstimatedMinutes: 45,
	},
	{
		Name:        "Office Hours Q&A",
		ContentType: "educational",
		Platform:    "twitch",
		Description: "Scheduled Q&A stream answering audience questions in depth.",
		Outline: models.StringArray{
			"Collect questions ahead via community post",
			"Answer pre-submitted questions first",
			"Open the floor to live chat",
			"Clip the best answers for short-form reuse",
		},
		Tags:             models.StringArray{"qanda", "officehours"},
		EstimatedMinutes: 120,
	},
}
