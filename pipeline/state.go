package pipeline

// State is a step of a job's lifecycle. Jobs only move forward; any failure
// jumps straight to teardown.
type State int

const (
	StateCreated State = iota
	StateWorkspaceReady
	StateExtracting
	StateExtracted
	StateEncoding
	StateEncoded
	StateCleanedUp
)

var stateNames = [...]string{
	StateCreated:        "created",
	StateWorkspaceReady: "workspace_ready",
	StateExtracting:     "extracting",
	StateExtracted:      "extracted",
	StateEncoding:       "encoding",
	StateEncoded:        "encoded",
	StateCleanedUp:      "cleaned_up",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
