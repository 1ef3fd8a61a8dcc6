package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/media"
)

// MetadataArgs builds the argument vector for a metadata dump of url.
func MetadataArgs(url string) []string {
	return append(append([]string{"-j"}, commonFlags...), url)
}

// Metadata extracts the title, author, duration, thumbnail and formats of url.
func (c *Client) Metadata(ctx context.Context, url string) (*media.Video, error) {
	res, err := c.Runner.Run(ctx, c.command(MetadataArgs(url)...))
	if err != nil {
		return nil, err
	}

	return ParseMetadata(url, res.Stdout, string(res.Stderr))
}

type rawFormat struct {
	FormatID   *string      `json:"format_id"`
	Ext        *string      `json:"ext"`
	FormatNote *string      `json:"format_note"`
	Filesize   *json.Number `json:"filesize"`
	Width      *json.Number `json:"width"`
	Height     *json.Number `json:"height"`
}

type rawVideo struct {
	Title     string       `json:"title"`
	Uploader  string       `json:"uploader"`
	Duration  *json.Number `json:"duration"`
	Thumbnail string       `json:"thumbnail"`
	Formats   []rawFormat  `json:"formats"`
}

// ParseMetadata turns the JSON dump into a Video. Any exit status is
// accepted as long as stdout holds a document.
func ParseMetadata(url string, stdout []byte, stderr string) (*media.Video, error) {
	stdout = bytes.TrimSpace(stdout)
	if len(stdout) == 0 {
		return nil, fault.WithDiagnostic(fault.ErrNoUsableOutput, "yt-dlp failed to extract metadata", stderr)
	}

	var raw rawVideo
	decoder := json.NewDecoder(bytes.NewReader(stdout))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: yt-dlp metadata: %v", fault.ErrParse, err)
	}

	return &media.Video{
		URL:       url,
		Title:     raw.Title,
		Author:    raw.Uploader,
		Duration:  int(integer(raw.Duration).OrElse(0)),
		Thumbnail: raw.Thumbnail,
		Formats: lo.FilterMap(raw.Formats, func(f rawFormat, _ int) (media.Format, bool) {
			if f.FormatID == nil || f.Ext == nil {
				return media.Format{}, false
			}

			return media.Format{
				FormatID:   *f.FormatID,
				Ext:        *f.Ext,
				Quality:    mo.PointerToOption(f.FormatNote).OrElse("unknown"),
				Filesize:   exactInteger(f.Filesize),
				Resolution: resolution(f.Width, f.Height),
			}, true
		}),
	}, nil
}

func resolution(width, height *json.Number) string {
	w, h := integer(width).OrElse(0), integer(height).OrElse(0)
	if w > 0 && h > 0 {
		return fmt.Sprintf("%dx%d", w, h)
	}
	return "N/A"
}

// exactInteger reads n only when it is written as a whole number.
func exactInteger(n *json.Number) mo.Option[int64] {
	if n == nil {
		return mo.None[int64]()
	}
	v, err := n.Int64()
	if err != nil {
		return mo.None[int64]()
	}
	return mo.Some(v)
}

// integer reads n, truncating fractional values such as a 212.4 second duration.
func integer(n *json.Number) mo.Option[int64] {
	if v, ok := exactInteger(n).Get(); ok {
		return mo.Some(v)
	}
	if n == nil {
		return mo.None[int64]()
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return mo.None[int64]()
	}
	return mo.Some(int64(f))
}
