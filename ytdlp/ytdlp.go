// Package ytdlp drives the yt-dlp extractor: metadata, direct stream URLs,
// caption files and format downloads into a job workspace.
//
// Every operation classifies the tool's outcome by what it produced rather
// than by its exit status, since yt-dlp regularly exits non-zero after
// writing perfectly usable output.
package ytdlp

import (
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/process"
)

// Flags shared by every invocation.
var commonFlags = []string{"--no-check-certificates", "--no-warnings"}

// Client runs yt-dlp through a process.Runner.
type Client struct {
	Runner process.Runner
	Binary string
}

// New returns a client for the binary configured under ytdlp.binary.
func New(runner process.Runner) *Client {
	return &Client{
		Runner: runner,
		Binary: viper.GetString(key.YtdlpBinary),
	}
}

func (c *Client) command(args ...string) process.Command {
	return process.Command{Name: c.Binary, Args: args}
}
