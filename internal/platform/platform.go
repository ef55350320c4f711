// Package platform defines the fixed set of publishing platforms the
// service understands. All platform-keyed lookups in the codebase go
// through this type instead of raw strings.
package platform

import (
	apperrors "github.com/creatorpulse/backend/internal/errors"
)

// Platform identifies one of the supported publishing platforms.
type Platform string

const (
	YouTube Platform = "youtube"
	TikTok  Platform = "tiktok"
	Twitch  Platform = "twitch"
)

// All returns the supported platforms in a stable order.
func All() []Platform {
	return []Platform{YouTube, TikTok, Twitch}
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case YouTube, TikTok, Twitch:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// Parse converts a raw string into a Platform.
func Parse(s string) (Platform, error) {
	p := Platform(s)
	if !p.Valid() {
		return "", apperrors.UnsupportedPlatform(s)
	}
	return p, nil
}
