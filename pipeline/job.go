package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/transcript"
	"github.com/vidclip-cli/vidclip/util"
	"github.com/vidclip-cli/vidclip/where"
)

// Request is what a caller asks to have downloaded.
type Request struct {
	URL       string     `json:"url" validate:"required,url"`
	FormatID  string     `json:"format_id" validate:"required"`
	Kind      media.Kind `json:"-" validate:"oneof=0 1"`
	Start     string     `json:"start,omitempty" validate:"required_if=Kind 1,clocktime"`
	End       string     `json:"end,omitempty" validate:"required_if=Kind 1,clocktime"`
	OutputDir string     `json:"output_dir,omitempty"`
	Filename  string     `json:"filename" validate:"required"`
}

// Job is a validated Request with its own identity. It must not be modified once running.
type Job struct {
	ID string `json:"job_id" validate:"required,uuid"`
	Request
}

// Section is the clip range, absent for full downloads.
func (j *Job) Section() mo.Option[media.Section] {
	if j.Kind != media.KindClip {
		return mo.None[media.Section]()
	}
	return mo.Some(media.Section{Start: j.Start, End: j.End})
}

// Validator checks jobs and API payloads. It knows the "clocktime" tag,
// which accepts "SS", "M:SS" and "H:MM:SS", each with optional fractional
// seconds, as well as the empty string.
var Validator = newValidator()

var clockTime = regexp.MustCompile(`^\d+(:\d{2}){0,2}(\.\d+)?$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || clockTime.MatchString(s)
	})
	return v
}

// NewJob validates req, fills the output directory from configuration when
// it is empty and assigns a time-ordered ID.
func NewJob(req Request) (*Job, error) {
	if req.OutputDir == "" {
		req.OutputDir = where.Downloads()
	}
	req.OutputDir = util.ExpandHome(req.OutputDir)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	job := &Job{ID: id.String(), Request: req}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Validate reports every problem with the job as an ErrInvalidJob.
func (j *Job) Validate() error {
	if err := Validator.Struct(j); err != nil {
		return fmt.Errorf("%w: %v", fault.ErrInvalidJob, err)
	}

	if j.Kind != media.KindClip {
		return nil
	}

	start, err := clockSeconds(j.Start)
	if err != nil {
		return fmt.Errorf("%w: %v", fault.ErrInvalidJob, err)
	}
	end, err := clockSeconds(j.End)
	if err != nil {
		return fmt.Errorf("%w: %v", fault.ErrInvalidJob, err)
	}
	if end <= start {
		return fmt.Errorf("%w: clip end %s is not after start %s", fault.ErrInvalidJob, j.End, j.Start)
	}
	return nil
}

// clockSeconds reads a clocktime value, fractional seconds included.
func clockSeconds(ts string) (float64, error) {
	whole, frac, _ := strings.Cut(ts, ".")

	n, err := transcript.TimeToSeconds(whole)
	if err != nil {
		return 0, err
	}
	if frac == "" {
		return float64(n), nil
	}

	f, err := strconv.ParseFloat("0."+frac, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}
	return float64(n) + f, nil
}
