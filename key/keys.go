// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// External tool binaries - these keys locate the extractor and encoder executables.
const (
	YtdlpBinary  = "ytdlp.binary"
	FfmpegBinary = "ffmpeg.binary"
)

// Downloads - these keys control where finished artifacts land and what happens after.
const (
	DownloadsDir         = "downloads.dir"
	DownloadsOpenAfter   = "downloads.open_after"
	DownloadsSaveHistory = "downloads.save_history"
)

// Streaming - these keys shape the direct playback URL request.
const (
	StreamMaxHeight     = "stream.max_height"
	StreamValidityHours = "stream.validity_hours"
)

// Transcript retrieval.
const (
	TranscriptLanguage = "transcript.language"
)

// Metadata caching - these keys govern reuse of previously extracted video descriptions.
const (
	MetadataCache         = "metadata.cache"
	MetadataCacheTTLHours = "metadata.cache_ttl_hours"
)

// Progress relay.
const (
	ProgressBuffer = "progress.buffer"
)

// HTTP API.
const (
	ServerAddress = "server.address"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern terminal behavior.
const (
	CliColored        = "cli.colored"
	CliVersionCheck   = "cli.version_check"
	CliURLSuggestions = "cli.url_suggestions"
	CliJSON           = "cli.json"
)
