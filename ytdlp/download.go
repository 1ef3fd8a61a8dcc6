package ytdlp

import (
	"context"

	"github.com/samber/mo"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/workspace"
)

// Download describes one extraction into a workspace.
type Download struct {
	URL       string
	FormatID  string
	Section   mo.Option[media.Section]
	Workspace *workspace.Workspace
}

// Args builds the argument vector for the extraction.
func (d Download) Args() []string {
	args := []string{"-f", d.FormatID + "+bestaudio"}

	if section, ok := d.Section.Get(); ok {
		args = append(args, "--download-sections", section.Arg())
	}

	args = append(args, "--merge-output-format", "mp4")
	args = append(args, commonFlags...)
	args = append(args,
		"--add-header", "referer:youtube.com",
		"--add-header", "user-agent:Mozilla/5.0",
		"-o", d.Workspace.OutputTemplate(),
		d.URL,
		"--newline",
	)
	return args
}

// Download runs the extraction, handing every stderr line to onLine while the
// tool is running, and returns the path of the file it left in the workspace.
func (c *Client) Download(ctx context.Context, d Download, onLine func(string)) (string, error) {
	cmd := c.command(d.Args()...)
	cmd.OnStderrLine = onLine
	if cmd.OnStderrLine == nil {
		cmd.OnStderrLine = func(string) {}
	}

	res, err := c.Runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}

	output, found, err := d.Workspace.Output()
	if err != nil {
		return "", err
	}

	return ClassifyDownload(res.ExitCode, output, found, string(res.Stderr))
}

// ClassifyDownload decides the outcome of an extraction. A file in the
// workspace means success no matter how the tool exited; its absence is a
// failure even on exit status 0.
func ClassifyDownload(exitCode int, output string, found bool, stderr string) (string, error) {
	if found {
		return output, nil
	}

	msg := "yt-dlp failed to download file"
	if exitCode == 0 {
		msg += " despite exiting cleanly"
	}
	return "", fault.WithDiagnostic(fault.ErrNoUsableOutput, msg, stderr)
}
