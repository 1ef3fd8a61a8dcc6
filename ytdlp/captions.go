package ytdlp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/log"
)

const captionFormat = "srv1"

// WatchURL is the canonical page address of a YouTube video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// CaptionArgs builds the argument vector that writes the automatic captions of
// videoID in lang to "{id}.{lang}.srv1" in the working directory.
func CaptionArgs(videoID, lang string) []string {
	args := []string{
		"--write-auto-sub",
		"--skip-download",
		"--sub-lang", lang,
		"--sub-format", captionFormat,
	}
	args = append(args, commonFlags...)
	return append(args, "-o", "%(id)s.%(ext)s", WatchURL(videoID))
}

// CaptionFile is where CaptionArgs makes the extractor write inside dir.
func CaptionFile(dir, videoID, lang string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%s.%s", videoID, lang, captionFormat))
}

// Captions downloads the raw caption document of videoID using dir as the
// working directory. The file is removed once read, whatever happens next.
// A missing file is the only failure signal; the exit status is ignored.
func (c *Client) Captions(ctx context.Context, dir, videoID, lang string) ([]byte, error) {
	cmd := c.command(CaptionArgs(videoID, lang)...)
	cmd.Dir = dir

	res, err := c.Runner.Run(ctx, cmd)

	path := CaptionFile(dir, videoID, lang)
	defer func() {
		if rmErr := filesystem.API().Remove(path); rmErr == nil {
			log.Debugf("removed caption file %s", path)
		}
	}()

	if err != nil {
		return nil, err
	}

	data, readErr := afero.ReadFile(filesystem.API(), path)
	if readErr != nil {
		return nil, fault.WithDiagnostic(fault.ErrNoUsableOutput, "could not read transcript file", string(res.Stderr))
	}
	return data, nil
}
