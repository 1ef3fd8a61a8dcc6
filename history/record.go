package history

import (
	"fmt"
	"time"

	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/progress"
)

// Record is one finished download, successful or not.
type Record struct {
	JobID      string          `json:"job_id"`
	URL        string          `json:"url"`
	Title      string          `json:"title"`
	Kind       media.Kind      `json:"kind" jsonschema:"enum=full,enum=clip"`
	Start      string          `json:"start,omitempty"`
	End        string          `json:"end,omitempty"`
	Output     string          `json:"output,omitempty"`
	Status     progress.Status `json:"status" jsonschema:"enum=done,enum=error"`
	Error      string          `json:"error,omitempty"`
	FinishedAt time.Time       `json:"finished_at"`
}

// Succeeded reports whether the download produced its artifact.
func (r *Record) Succeeded() bool {
	return r.Status == progress.StatusDone
}

func (r *Record) String() string {
	if r.Kind == media.KindClip {
		return fmt.Sprintf("%s [%s-%s]", r.Title, r.Start, r.End)
	}
	return r.Title
}

// Finished builds the record of a job's outcome. A nil err means the job
// produced output.
func Finished(job *pipeline.Job, title, output string, err error) *Record {
	record := &Record{
		JobID:      job.ID,
		URL:        job.URL,
		Title:      title,
		Kind:       job.Kind,
		Start:      job.Start,
		End:        job.End,
		Output:     output,
		Status:     progress.StatusDone,
		FinishedAt: time.Now(),
	}

	if title == "" {
		record.Title = job.Filename
	}
	if err != nil {
		record.Status = progress.StatusError
		record.Error = err.Error()
		record.Output = ""
	}
	return record
}
