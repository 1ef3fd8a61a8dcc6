// Package pipeline runs download jobs: extraction into a private workspace,
// transcoding into the output directory and teardown, reporting progress to
// a per-job sink.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/ffmpeg"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/progress"
	"github.com/vidclip-cli/vidclip/workspace"
	"github.com/vidclip-cli/vidclip/ytdlp"
)

// Extractor downloads a job's media into its workspace.
type Extractor interface {
	Download(ctx context.Context, d ytdlp.Download, onLine func(string)) (string, error)
}

// Encoder transcodes the extracted file into the final artifact.
type Encoder interface {
	Encode(ctx context.Context, input, output string) error
}

// Pipeline holds the tools jobs are run with. It has no per-job state and
// may run any number of jobs concurrently.
type Pipeline struct {
	Extractor Extractor
	Encoder   Encoder
}

// New returns a pipeline running the configured binaries through runner.
func New(runner process.Runner) *Pipeline {
	return &Pipeline{
		Extractor: ytdlp.New(runner),
		Encoder:   ffmpeg.New(runner),
	}
}

// Run executes job and returns the path of the finished artifact.
//
// sink receives Processing when the workspace is set up and again before
// encoding, Downloading while the extractor reports progress, and exactly
// one Done or Error as the last event. Run returns only after the sink has
// received every event, and the workspace is removed on every path.
func (p *Pipeline) Run(ctx context.Context, job *Job, sink progress.Sink) (string, error) {
	relay := progress.NewRelay(sink, viper.GetInt(key.ProgressBuffer))
	defer relay.Close()

	logger := log.WithFields(logrus.Fields{"job": job.ID, "kind": job.Kind.String()})
	enter := func(s State) {
		logger.WithField("state", s.String()).Debug("job state changed")
	}

	output, err := p.run(ctx, job, relay.Publish, enter)
	enter(StateCleanedUp)

	if err != nil {
		logger.WithError(err).Error("job failed")
		relay.Publish(progress.Failed(job.ID, err.Error()))
		return "", err
	}

	logger.WithField("output", output).Info("job finished")
	relay.Publish(progress.Done(job.ID))
	return output, nil
}

func (p *Pipeline) run(ctx context.Context, job *Job, publish func(progress.Event), enter func(State)) (string, error) {
	enter(StateCreated)
	if err := job.Validate(); err != nil {
		return "", err
	}

	publish(progress.Processing(job.ID))
	ws, err := workspace.Create(job.OutputDir)
	if err != nil {
		return "", err
	}
	defer ws.Destroy()
	enter(StateWorkspaceReady)

	enter(StateExtracting)
	extracted, err := p.Extractor.Download(ctx, ytdlp.Download{
		URL:       job.URL,
		FormatID:  job.FormatID,
		Section:   job.Section(),
		Workspace: ws,
	}, progress.Translator(job.ID, publish))
	if err != nil {
		return "", err
	}
	enter(StateExtracted)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	publish(progress.Processing(job.ID))
	enter(StateEncoding)
	output := workspace.ResolveFinalPath(job.OutputDir, job.Filename, job.Kind)
	if err := p.Encoder.Encode(ctx, extracted, output); err != nil {
		return "", err
	}
	enter(StateEncoded)

	return output, nil
}
