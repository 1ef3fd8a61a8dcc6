// Package inline runs downloads without a terminal UI, reporting progress as
// plain lines or newline-delimited JSON for scripts.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/progress"
)

// Options configures a non-interactive run.
type Options struct {
	Out  io.Writer
	JSON bool
}

// Run executes job on p, writing every event to options.Out. In plain mode
// the output path is printed last on success.
func Run(ctx context.Context, p *pipeline.Pipeline, job *pipeline.Job, options *Options) (string, error) {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	var sink progress.Sink
	if options.JSON {
		sink = EventWriter(options.Out)
	} else {
		sink = TextWriter(options.Out)
	}

	output, err := p.Run(ctx, job, sink)
	if err != nil {
		return "", err
	}

	if !options.JSON {
		_, _ = fmt.Fprintln(options.Out, output)
	}
	return output, nil
}
