package inline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/process/processtest"
	"github.com/vidclip-cli/vidclip/progress"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.YtdlpBinary, "yt-dlp")
	viper.Set(key.FfmpegBinary, "ffmpeg")
}

func scriptedPipeline() *pipeline.Pipeline {
	return pipeline.New(processtest.New().
		On("yt-dlp", func(_ context.Context, c process.Command) (*process.Result, error) {
			processtest.Lines(c, "[download]  42.5% of 10.00MiB at 1.21MiB/s ETA 00:07")
			dir := filepath.Dir(processtest.ArgAfter(c, "-o"))
			return &process.Result{}, afero.WriteFile(filesystem.API(), filepath.Join(dir, "temp.mp4"), nil, 0o644)
		}).
		On("ffmpeg", func(_ context.Context, c process.Command) (*process.Result, error) {
			return &process.Result{}, afero.WriteFile(filesystem.API(), c.Args[len(c.Args)-1], nil, 0o644)
		}))
}

func TestRun(t *testing.T) {
	Convey("Given a download job", t, func() {
		job, err := pipeline.NewJob(pipeline.Request{
			URL:       "https://youtu.be/dQw4w9WgXcQ",
			FormatID:  "18",
			OutputDir: "/inline",
			Filename:  "rick",
		})
		So(err, ShouldBeNil)

		Convey("JSON mode writes one event per line", func() {
			var buf bytes.Buffer
			output, err := Run(context.Background(), scriptedPipeline(), job, &Options{Out: &buf, JSON: true})
			So(err, ShouldBeNil)
			So(output, ShouldEqual, filepath.Join("/inline", "rick_full.mp4"))

			var statuses []progress.Status
			scanner := bufio.NewScanner(&buf)
			for scanner.Scan() {
				var e progress.Event
				So(json.Unmarshal(scanner.Bytes(), &e), ShouldBeNil)
				So(e.JobID, ShouldEqual, job.ID)
				statuses = append(statuses, e.Status)
			}
			So(statuses, ShouldResemble, []progress.Status{
				progress.StatusProcessing,
				progress.StatusDownloading,
				progress.StatusProcessing,
				progress.StatusDone,
			})
		})

		Convey("Plain mode ends with the output path", func() {
			var buf bytes.Buffer
			_, err := Run(context.Background(), scriptedPipeline(), job, &Options{Out: &buf})
			So(err, ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines[1], ShouldEqual, "downloading 42.5% 1.21MiB/s ETA 00:07")
			So(lines[len(lines)-1], ShouldEqual, filepath.Join("/inline", "rick_full.mp4"))
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("Describe renders only what is known", t, func() {
		So(Describe(progress.Processing("j")), ShouldEqual, "processing")
		So(Describe(progress.Downloading("j", progress.Progress{Percent: mo.Some(3.0)})), ShouldEqual, "downloading 3.0%")
		So(Describe(progress.Failed("j", "boom")), ShouldEqual, "error boom")
	})
}

func TestParseFormatPicker(t *testing.T) {
	formats := []media.Format{
		{FormatID: "140", Ext: "m4a", Resolution: "N/A"},
		{FormatID: "137", Ext: "mp4", Resolution: "1920x1080"},
		{FormatID: "18", Ext: "mp4", Resolution: "640x360"},
		{FormatID: "22", Ext: "mp4", Resolution: "1280x720"},
	}

	pick := func(description string) string {
		picker, err := ParseFormatPicker(description)
		So(err, ShouldBeNil)
		return picker(formats).OrEmpty().FormatID
	}

	Convey("Format pickers", t, func() {
		So(pick("best"), ShouldEqual, "137")
		So(pick("worst"), ShouldEqual, "18")
		So(pick("first"), ShouldEqual, "140")
		So(pick("last"), ShouldEqual, "22")
		So(pick("index:2"), ShouldEqual, "18")
		So(pick("index:9"), ShouldEqual, "")
		So(pick("22"), ShouldEqual, "22")
		So(pick("nope"), ShouldEqual, "")

		_, err := ParseFormatPicker("index:x")
		So(err, ShouldNotBeNil)
		_, err = ParseFormatPicker("")
		So(err, ShouldNotBeNil)
	})

	Convey("Selectors are told apart from format IDs", t, func() {
		So(IsSelector("best"), ShouldBeTrue)
		So(IsSelector("index:3"), ShouldBeTrue)
		So(IsSelector("137"), ShouldBeFalse)
	})

	Convey("Best of audio-only formats is nothing", t, func() {
		picker, _ := ParseFormatPicker("best")
		So(picker(formats[:1]).IsAbsent(), ShouldBeTrue)
	})
}
