package tui

import (
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidclip-cli/vidclip/internal/ui"
	"github.com/vidclip-cli/vidclip/progress"
)

// eventMsg delivers one pipeline event to the view.
type eventMsg progress.Event

// closedMsg reports that the pipeline will publish nothing more.
type closedMsg struct{}

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.waitForEvent())
}

func (b *bubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-b.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(e)
	}
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width)
		return b, nil
	case tea.KeyMsg:
		return b.handleKey(msg)
	case eventMsg:
		return b, b.handleEvent(progress.Event(msg))
	case closedMsg:
		return b, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case progressbar.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progressbar.Model)
		return b, cmd
	}

	return b, b.notifier.Update(msg)
}

func (b *bubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.forceQuit):
		b.cancel()
		return b, tea.Quit
	case key.Matches(msg, b.keymap.quit):
		if b.state.terminal() {
			return b, tea.Quit
		}
		if b.cancelling {
			return b, nil
		}
		b.cancelling = true
		b.cancel()
		return b, ui.NotifyCancelling()
	}

	return b, nil
}

func (b *bubble) handleEvent(e progress.Event) tea.Cmd {
	b.last = e

	switch e.Status {
	case progress.StatusProcessing:
		b.state = processingState
	case progress.StatusDownloading:
		b.state = downloadingState
		if percent, ok := e.Percent.Get(); ok {
			return tea.Batch(b.progressC.SetPercent(percent/100), b.waitForEvent())
		}
	case progress.StatusDone:
		b.state = doneState
		return tea.Quit
	case progress.StatusError:
		b.state = errorState
		b.failure = e.Message
		return tea.Quit
	}

	return b.waitForEvent()
}
