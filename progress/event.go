// Package progress defines the per-job event protocol and turns extractor output into it.
package progress

import (
	"encoding/json"

	"github.com/samber/mo"
)

// Status tags the variant an Event carries.
type Status string

const (
	StatusProcessing  Status = "processing"
	StatusDownloading Status = "downloading"
	StatusDone        Status = "done"
	StatusError       Status = "error"
)

// IsTerminal reports whether the status ends a job's event stream.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusError
}

// Progress is a best-effort reading of one extractor progress line.
// Any field may be absent even while a download is running.
type Progress struct {
	Percent mo.Option[float64]
	Speed   mo.Option[string]
	ETA     mo.Option[string]
}

// Event is one entry of a job's append-only event stream.
type Event struct {
	JobID  string
	Status Status
	Progress
	// Message is set for StatusError only.
	Message string
}

// Processing marks a phase boundary.
func Processing(jobID string) Event {
	return Event{JobID: jobID, Status: StatusProcessing}
}

// Downloading relays a parsed progress reading.
func Downloading(jobID string, p Progress) Event {
	return Event{JobID: jobID, Status: StatusDownloading, Progress: p}
}

// Done is the successful terminal event.
func Done(jobID string) Event {
	return Event{JobID: jobID, Status: StatusDone}
}

// Failed is the unsuccessful terminal event.
func Failed(jobID string, message string) Event {
	return Event{JobID: jobID, Status: StatusError, Message: message}
}

// Wire is the JSON representation of an Event.
type Wire struct {
	JobID   string   `json:"job_id" jsonschema:"description=Identifier of the job that emitted the event"`
	Status  Status   `json:"status" jsonschema:"enum=processing,enum=downloading,enum=done,enum=error"`
	Percent *float64 `json:"percent,omitempty"`
	Speed   *string  `json:"speed,omitempty"`
	ETA     *string  `json:"eta,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Wire converts the event into its JSON form.
func (e Event) Wire() Wire {
	return Wire{
		JobID:   e.JobID,
		Status:  e.Status,
		Percent: e.Percent.ToPointer(),
		Speed:   e.Speed.ToPointer(),
		ETA:     e.ETA.ToPointer(),
		Error:   e.Message,
	}
}

// MarshalJSON implements json.Marshaler.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w Wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = Event{
		JobID:  w.JobID,
		Status: w.Status,
		Progress: Progress{
			Percent: mo.PointerToOption(w.Percent),
			Speed:   mo.PointerToOption(w.Speed),
			ETA:     mo.PointerToOption(w.ETA),
		},
		Message: w.Error,
	}
	return nil
}
