// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Vidclip is the canonical application identifier used for filesystem paths and CLI branding.
	Vidclip = "vidclip"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is the User-Agent presented by the built-in HTTP client when fetching thumbnails and release data.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden at link time via -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
