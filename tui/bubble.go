package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidclip-cli/vidclip/internal/ui"
	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/progress"
	"github.com/vidclip-cli/vidclip/style"
	"github.com/vidclip-cli/vidclip/util"
	"github.com/vidclip-cli/vidclip/workspace"
)

const maxBarWidth = 60

type bubble struct {
	state      state
	keymap     *keymap
	cancelling bool

	spinnerC  spinner.Model
	progressC progressbar.Model
	helpC     help.Model
	notifier  *ui.Model

	job     *pipeline.Job
	title   string
	output  string
	events  <-chan progress.Event
	cancel  context.CancelFunc
	last    progress.Event
	failure string

	width int
}

func newBubble(job *pipeline.Job, events <-chan progress.Event, cancel context.CancelFunc, options *Options) *bubble {
	b := &bubble{
		state:    processingState,
		keymap:   newKeymap(),
		notifier: &ui.Model{},
		job:      job,
		title:    options.Title,
		output:   workspace.ResolveFinalPath(job.OutputDir, job.Filename, job.Kind),
		events:   events,
		cancel:   cancel,
	}

	if b.title == "" {
		b.title = job.Filename
	}

	b.helpC = help.New()

	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	b.progressC = progressbar.New(progressbar.WithDefaultGradient())

	if w, _, err := util.TerminalSize(); err == nil {
		b.resize(w)
	} else {
		b.resize(maxBarWidth)
	}

	return b
}

func (b *bubble) resize(width int) {
	b.width = width
	b.helpC.Width = width
	b.progressC.Width = max(10, min(width-paddingStyle.GetHorizontalPadding(), maxBarWidth))
}
