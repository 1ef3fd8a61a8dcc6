// Package media holds the value types exchanged between the extractor, the pipeline and the outer surfaces.
package media

import (
	"fmt"
	"time"

	"github.com/samber/mo"
)

// Kind selects between downloading a whole video and a time-bounded clip of it.
type Kind int

const (
	KindFull Kind = iota
	KindClip
)

// Suffix is appended to sanitized output names so clips and full downloads never collide.
func (k Kind) Suffix() string {
	if k == KindClip {
		return "clip"
	}
	return "full"
}

func (k Kind) String() string {
	return k.Suffix()
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Suffix()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "full":
		*k = KindFull
	case "clip":
		*k = KindClip
	default:
		return fmt.Errorf("unknown download kind %q", text)
	}
	return nil
}

// Section is a time range in the extractor's syntax, e.g. "00:00:10" to "00:00:20".
type Section struct {
	Start string
	End   string
}

// Arg renders the range for --download-sections.
func (s Section) Arg() string {
	return fmt.Sprintf("*%s-%s", s.Start, s.End)
}

// Format is one downloadable variant of a video.
type Format struct {
	FormatID   string           `json:"format_id"`
	Ext        string           `json:"ext"`
	Quality    string           `json:"quality"`
	Filesize   mo.Option[int64] `json:"filesize" jsonschema:"type=integer"`
	Resolution string           `json:"resolution"`
}

// Video describes a remote video as reported by the extractor.
type Video struct {
	URL        string            `json:"url"`
	Title      string            `json:"title"`
	Author     string            `json:"author"`
	Duration   int               `json:"duration" jsonschema:"description=Length in seconds"`
	Thumbnail  string            `json:"thumbnail"`
	Transcript mo.Option[string] `json:"transcript" jsonschema:"type=string"`
	Formats    []Format          `json:"formats"`
}

// StreamingURL is a direct playback address with the moment it stops being trusted.
type StreamingURL struct {
	VideoURL     string `json:"video_url"`
	StreamingURL string `json:"streaming_url"`
	ExpireDate   string `json:"expire_date" jsonschema:"format=date-time"`
}

// Expiry parses ExpireDate.
func (s StreamingURL) Expiry() (time.Time, error) {
	return time.Parse(time.RFC3339, s.ExpireDate)
}
