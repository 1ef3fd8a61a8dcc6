// Package youtube recognizes YouTube video addresses and bare video IDs.
package youtube

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

var urlPattern = regexp.MustCompile(`(?i)^` +
	`(?:` +
	`(?:https?://|//)` +
	`(?:` +
	`(?:(?:(?:\w+\.)?youtube(?:-nocookie|kids)?\.com|` +
	`(?:www\.)?deturl\.com/www\.youtube\.com|` +
	`(?:www\.)?pwnyoutube\.com|` +
	`(?:www\.)?hooktube\.com|` +
	`(?:www\.)?yourepeat\.com|` +
	`tube\.majestyc\.net|` +
	`youtube\.googleapis\.com)/` +
	`(?:.*?#/)?` +
	`(?:` +
	`(?:(?:v|embed|e|shorts|live)/)|` +
	`(?:(?:(?:watch|movie)(?:_popup)?(?:\.php)?/?)?(?:\?|#!?)(?:.*?[&;])?v=)` +
	`)` +
	`)` +
	`|(?:youtu\.be|vid\.plus|zwearz\.com/watch)/` +
	`|(?:www\.)?cleanvideosearch\.com/media/action/yt/watch\?videoId=` +
	`)` +
	`)?` +
	`([0-9A-Za-z_-]{11})` +
	`(?:.+)?` +
	`(?:#|$)`)

// Playlist and live-stream paths whose segment happens to be eleven characters long.
var reserved = []string{"videoseries", "live_stream"}

// ExtractVideoID returns the eleven character ID of a video URL, or the input
// itself when it already is an ID.
func ExtractVideoID(url string) mo.Option[string] {
	m := urlPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return mo.None[string]()
	}

	id := m[1]
	if lo.Contains(reserved, strings.ToLower(id)) {
		return mo.None[string]()
	}
	return mo.Some(id)
}

// IsValidURL reports whether url names a single YouTube video.
func IsValidURL(url string) bool {
	return ExtractVideoID(url).IsPresent()
}
