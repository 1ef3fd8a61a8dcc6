// Package tui renders the progress of a single download in the terminal.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/progress"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Title is shown above the progress bar. The job's filename is used when empty.
	Title string
}

type result struct {
	output string
	err    error
}

// Run executes job on p while displaying its progress, and returns the
// path of the finished artifact. Quitting the view cancels the job.
func Run(ctx context.Context, p *pipeline.Pipeline, job *pipeline.Job, options *Options) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan progress.Event)
	done := make(chan result, 1)

	go func() {
		output, err := p.Run(ctx, job, func(e progress.Event) {
			events <- e
		})
		close(events)
		done <- result{output: output, err: err}
	}()

	bubble := newBubble(job, events, cancel, options)
	_, programErr := tea.NewProgram(bubble).Run()

	// the pipeline may still be publishing after the view is gone
	cancel()
	for range events {
	}

	res := <-done
	if programErr != nil {
		return "", programErr
	}
	return res.output, res.err
}
