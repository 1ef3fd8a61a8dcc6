package ytdlp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/media"
)

// now is replaced in tests.
var now = time.Now

// StreamArgs builds the argument vector that prints a direct URL for the best
// single-file variant no taller than maxHeight.
func StreamArgs(url string, maxHeight int) []string {
	args := []string{"-f", fmt.Sprintf("best[height<=%d]", maxHeight), "-g"}
	return append(append(args, commonFlags...), url)
}

// StreamingURL asks the extractor for a direct playback address of url.
// Its expiry is stream.validity_hours after this call.
func (c *Client) StreamingURL(ctx context.Context, url string) (*media.StreamingURL, error) {
	res, err := c.Runner.Run(ctx, c.command(StreamArgs(url, viper.GetInt(key.StreamMaxHeight))...))
	if err != nil {
		return nil, err
	}

	validity := time.Duration(viper.GetInt(key.StreamValidityHours)) * time.Hour
	return NewStreamingURL(url, string(res.Stdout), string(res.Stderr), now(), validity)
}

// NewStreamingURL builds the result from the tool's stdout, which must hold a URL.
func NewStreamingURL(videoURL, stdout, stderr string, issued time.Time, validity time.Duration) (*media.StreamingURL, error) {
	streamURL := strings.TrimSpace(stdout)
	if streamURL == "" {
		return nil, fault.WithDiagnostic(fault.ErrNoUsableOutput, "no streaming URL found", stderr)
	}

	return &media.StreamingURL{
		VideoURL:     videoURL,
		StreamingURL: streamURL,
		ExpireDate:   issued.Add(validity).UTC().Format(time.RFC3339),
	}, nil
}
