package tui

type state int

const (
	processingState state = iota
	downloadingState
	doneState
	errorState
)

func (s state) terminal() bool {
	return s == doneState || s == errorState
}
