package ffmpeg

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/process/processtest"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.FfmpegBinary, "ffmpeg")
}

func TestEncode(t *testing.T) {
	Convey("Given an extracted file", t, func() {
		const in, out = "/out/temp_1_x/temp.mp4", "/out/title_full.mp4"
		So(filesystem.API().MkdirAll("/out", 0o755), ShouldBeNil)
		_ = filesystem.API().Remove(out)

		Convey("The argument vector is the fixed profile", func() {
			So(Args(in, out), ShouldResemble, []string{
				"-i", in,
				"-c:v", "libx264", "-profile:v", "baseline", "-level", "4.0",
				"-preset", "fast", "-crf", "23",
				"-c:a", "aac", "-b:a", "128k", "-ac", "2",
				"-movflags", "+faststart", "-y", out,
			})
		})

		Convey("Exit 0 with the output written succeeds", func() {
			runner := processtest.New().On("ffmpeg", func(_ context.Context, c process.Command) (*process.Result, error) {
				So(afero.WriteFile(filesystem.API(), c.Args[len(c.Args)-1], []byte("mp4"), 0o644), ShouldBeNil)
				return &process.Result{}, nil
			})
			So(New(runner).Encode(context.Background(), in, out), ShouldBeNil)
		})

		Convey("Exit 0 without the output is a missing output failure", func() {
			runner := processtest.New().On("ffmpeg", processtest.Exit(0, ""))
			err := New(runner).Encode(context.Background(), in, out)
			So(errors.Is(err, fault.ErrOutputMissing), ShouldBeTrue)
			So(errors.Is(err, fault.ErrEncode), ShouldBeTrue)
		})

		Convey("A non-zero exit fails with stderr even when a file exists", func() {
			runner := processtest.New().On("ffmpeg", func(_ context.Context, c process.Command) (*process.Result, error) {
				So(afero.WriteFile(filesystem.API(), out, []byte("partial"), 0o644), ShouldBeNil)
				return &process.Result{ExitCode: 1, Stderr: []byte("Invalid data found when processing input")}, nil
			})
			err := New(runner).Encode(context.Background(), in, out)
			So(errors.Is(err, fault.ErrEncode), ShouldBeTrue)
			So(errors.Is(err, fault.ErrOutputMissing), ShouldBeFalse)
			So(err.Error(), ShouldContainSubstring, "Invalid data found")
		})
	})

	Convey("Classify requires both signals", t, func() {
		So(Classify(0, true, ""), ShouldBeNil)
		So(Classify(0, false, ""), ShouldEqual, fault.ErrOutputMissing)
		So(errors.Is(Classify(255, true, ""), fault.ErrEncode), ShouldBeTrue)
		So(errors.Is(Classify(255, false, ""), fault.ErrEncode), ShouldBeTrue)
	})
}
