package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/vidclip-cli/vidclip/color"
	"github.com/vidclip-cli/vidclip/icon"
	"github.com/vidclip-cli/vidclip/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *bubble) View() string {
	var lines []string

	switch b.state {
	case processingState:
		lines = b.viewProcessing()
	case downloadingState:
		lines = b.viewDownloading()
	case doneState:
		lines = b.viewDone()
	case errorState:
		lines = b.viewError()
	}

	if !b.state.terminal() {
		lines = append(lines, "", b.helpC.View(b.keymap))
	}

	return b.notifier.View(paddingStyle.Render(strings.Join(lines, "\n")))
}

func (b *bubble) header() string {
	i := icon.Download
	if b.job.Section().IsPresent() {
		i = icon.Clip
	}
	return style.Title(icon.Get(i) + " " + b.title)
}

func (b *bubble) viewProcessing() []string {
	return []string{
		b.header(),
		"",
		b.spinnerC.View() + " Processing",
	}
}

func (b *bubble) viewDownloading() []string {
	var details []string
	if speed, ok := b.last.Speed.Get(); ok {
		details = append(details, speed)
	}
	if eta, ok := b.last.ETA.Get(); ok {
		details = append(details, "ETA "+eta)
	}

	return []string{
		b.header(),
		"",
		b.progressC.View(),
		style.Faint(strings.Join(details, "  ")),
	}
}

func (b *bubble) viewDone() []string {
	return []string{
		b.header(),
		"",
		style.Fg(color.Green)(icon.Get(icon.Success)) + " Saved to " + style.Fg(color.Purple)(b.output),
	}
}

func (b *bubble) viewError() []string {
	message := b.failure
	if b.cancelling {
		message = "cancelled"
	}

	return []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " " + wrap.String(message, max(b.width-paddingStyle.GetHorizontalPadding(), 20)),
	}
}
