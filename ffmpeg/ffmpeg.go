// Package ffmpeg transcodes extracted media into the fixed H.264/AAC profile
// every finished artifact uses.
package ffmpeg

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/process"
)

// Encoder runs ffmpeg through a process.Runner.
type Encoder struct {
	Runner process.Runner
	Binary string
}

// New returns an encoder for the binary configured under ffmpeg.binary.
func New(runner process.Runner) *Encoder {
	return &Encoder{
		Runner: runner,
		Binary: viper.GetString(key.FfmpegBinary),
	}
}

// Args builds the argument vector: baseline H.264 at level 4.0 with stereo
// AAC and the index moved to the front of the file for progressive playback.
func Args(input, output string) []string {
	return []string{
		"-i", input,
		"-c:v", "libx264",
		"-profile:v", "baseline",
		"-level", "4.0",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-ac", "2",
		"-movflags", "+faststart",
		"-y", output,
	}
}

// Encode transcodes input into output, overwriting it.
func (e *Encoder) Encode(ctx context.Context, input, output string) error {
	res, err := e.Runner.Run(ctx, process.Command{Name: e.Binary, Args: Args(input, output)})
	if err != nil {
		return err
	}

	exists, statErr := afero.Exists(filesystem.API(), output)
	if statErr != nil {
		return fmt.Errorf("%w: stat %s: %v", fault.ErrWorkspaceIO, output, statErr)
	}

	return Classify(res.ExitCode, exists, string(res.Stderr))
}

// Classify decides the outcome of an encode: success needs both a zero exit
// status and the output file on disk.
func Classify(exitCode int, outputExists bool, stderr string) error {
	if exitCode != 0 {
		return fault.WithDiagnostic(fault.ErrEncode, fmt.Sprintf("ffmpeg exited with status %d", exitCode), stderr)
	}
	if !outputExists {
		return fault.ErrOutputMissing
	}
	return nil
}
