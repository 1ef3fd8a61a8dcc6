package transcript

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/process/processtest"
	"github.com/vidclip-cli/vidclip/where"
	"github.com/vidclip-cli/vidclip/workspace"
	"github.com/vidclip-cli/vidclip/ytdlp"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.YtdlpBinary, "yt-dlp")
	viper.Set(key.TranscriptLanguage, "en")
}

const document = `<?xml version="1.0" encoding="utf-8" ?>
<transcript>
<text start="0.5" dur="2.1">never gonna
give you up</text>
<text start="65.4" dur="1.0">never  gonna let you down</text>
<text dur="1.0">no start</text>
</transcript>`

func TestParse(t *testing.T) {
	Convey("Given an srv1 caption document", t, func() {
		Convey("Every text node becomes a timestamp line and a text line", func() {
			text, err := Parse([]byte(document))
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "0:01\nnever gonna give you up\n1:05\nnever gonna let you down\n0:00\nno start")
		})

		Convey("A document without entries renders empty", func() {
			text, err := Parse([]byte(`<transcript></transcript>`))
			So(err, ShouldBeNil)
			So(text, ShouldBeEmpty)
		})

		Convey("Malformed XML is a parse failure", func() {
			_, err := Parse([]byte(`<transcript><text start="1">oops</transcript>`))
			So(errors.Is(err, fault.ErrParse), ShouldBeTrue)
		})
	})

	Convey("Timestamp floors minutes and rounds seconds", t, func() {
		So(Timestamp(65.4), ShouldEqual, "1:05")
		So(Timestamp(0), ShouldEqual, "0:00")
		So(Timestamp(119.2), ShouldEqual, "1:59")
		So(Timestamp(3600), ShouldEqual, "60:00")
	})
}

func TestFetch(t *testing.T) {
	Convey("Given the extractor writes captions", t, func() {
		runner := processtest.New().On("yt-dlp", func(_ context.Context, c process.Command) (*process.Result, error) {
			So(processtest.ArgAfter(c, "--sub-lang"), ShouldEqual, "en")
			So(afero.WriteFile(filesystem.API(), ytdlp.CaptionFile(c.Dir, "dQw4w9WgXcQ", "en"), []byte(document), 0o644), ShouldBeNil)
			return &process.Result{ExitCode: 1}, nil
		})

		text, err := Fetch(context.Background(), ytdlp.New(runner), "dQw4w9WgXcQ")
		So(err, ShouldBeNil)
		So(text, ShouldStartWith, "0:01\nnever gonna give you up")

		Convey("The scratch directory is gone afterwards", func() {
			dir := runner.Calls()[0].Dir
			exists, _ := afero.Exists(filesystem.API(), dir)
			So(exists, ShouldBeFalse)
		})
	})

	Convey("Given another invocation sweeps the scratch area mid-fetch", t, func() {
		runner := processtest.New().On("yt-dlp", func(_ context.Context, c process.Command) (*process.Result, error) {
			_, err := workspace.Sweep(where.Temp(), workspace.StaleAfter)
			So(err, ShouldBeNil)
			So(afero.WriteFile(filesystem.API(), ytdlp.CaptionFile(c.Dir, "dQw4w9WgXcQ", "en"), []byte(document), 0o644), ShouldBeNil)
			return &process.Result{}, nil
		})

		text, err := Fetch(context.Background(), ytdlp.New(runner), "dQw4w9WgXcQ")
		So(err, ShouldBeNil)
		So(text, ShouldNotBeEmpty)
		So(filepath.Dir(runner.Calls()[0].Dir), ShouldEqual, where.Temp())
	})

	Convey("Given the extractor writes nothing", t, func() {
		runner := processtest.New().On("yt-dlp", processtest.Exit(0, "There are no subtitles"))
		_, err := Fetch(context.Background(), ytdlp.New(runner), "dQw4w9WgXcQ")
		So(errors.Is(err, fault.ErrNoUsableOutput), ShouldBeTrue)
	})
}
