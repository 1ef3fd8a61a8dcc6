package ytdlp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/process/processtest"
	"github.com/vidclip-cli/vidclip/workspace"
)

const binary = "yt-dlp"

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.YtdlpBinary, binary)
	viper.Set(key.StreamMaxHeight, 720)
	viper.Set(key.StreamValidityHours, 6)
}

func TestDownload(t *testing.T) {
	Convey("Given a workspace", t, func() {
		ws, err := workspace.Create("/downloads")
		So(err, ShouldBeNil)
		defer ws.Destroy()

		full := Download{URL: "https://youtu.be/dQw4w9WgXcQ", FormatID: "137", Workspace: ws}

		Convey("A full download passes the fixed argument vector", func() {
			So(full.Args(), ShouldResemble, []string{
				"-f", "137+bestaudio",
				"--merge-output-format", "mp4",
				"--no-check-certificates", "--no-warnings",
				"--add-header", "referer:youtube.com",
				"--add-header", "user-agent:Mozilla/5.0",
				"-o", filepath.Join(ws.Path, "temp.%(ext)s"),
				"https://youtu.be/dQw4w9WgXcQ",
				"--newline",
			})
		})

		Convey("A clip adds the section right after the format", func() {
			clip := full
			clip.Section = mo.Some(media.Section{Start: "00:00:10", End: "00:00:20"})
			args := clip.Args()
			So(args[2:4], ShouldResemble, []string{"--download-sections", "*00:00:10-00:00:20"})
		})

		Convey("A produced file wins over a failing exit status", func() {
			runner := processtest.New().On(binary, func(_ context.Context, c process.Command) (*process.Result, error) {
				processtest.Lines(c, "[download]  50.0% of 1.00MiB at 1.00MiB/s ETA 00:01")
				So(afero.WriteFile(filesystem.API(), filepath.Join(ws.Path, "temp.mp4"), []byte("x"), 0o644), ShouldBeNil)
				return &process.Result{ExitCode: 1, Stderr: []byte("ERROR: postprocessing")}, nil
			})

			var lines []string
			path, err := New(runner).Download(context.Background(), full, func(l string) { lines = append(lines, l) })
			So(err, ShouldBeNil)
			So(path, ShouldEqual, filepath.Join(ws.Path, "temp.mp4"))
			So(lines, ShouldHaveLength, 1)
		})

		Convey("No file means failure even on a clean exit", func() {
			runner := processtest.New().On(binary, processtest.Exit(0, "nothing to do"))
			_, err := New(runner).Download(context.Background(), full, nil)
			So(errors.Is(err, fault.ErrNoUsableOutput), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "nothing to do")
		})

		Convey("A missing binary surfaces as a spawn failure", func() {
			_, err := New(processtest.New()).Download(context.Background(), full, nil)
			So(errors.Is(err, fault.ErrSpawn), ShouldBeTrue)
		})
	})

	Convey("ClassifyDownload ignores the exit status", t, func() {
		for _, code := range []int{0, 1, 2} {
			path, err := ClassifyDownload(code, "/ws/temp.mp4", true, "")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/ws/temp.mp4")

			_, err = ClassifyDownload(code, "", false, "boom")
			So(errors.Is(err, fault.ErrNoUsableOutput), ShouldBeTrue)
		}
	})
}

func TestMetadata(t *testing.T) {
	const dump = `{
		"title": "Never Gonna Give You Up",
		"uploader": "Rick Astley",
		"duration": 212,
		"thumbnail": "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		"formats": [
			{"format_id": "137", "ext": "mp4", "format_note": "1080p", "filesize": 80000000, "width": 1920, "height": 1080},
			{"format_id": "140", "ext": "m4a", "format_note": null, "filesize": null},
			{"ext": "mp4"},
			{"format_id": "sb0"}
		]
	}`

	Convey("Given a metadata dump", t, func() {
		Convey("Args are fixed", func() {
			So(MetadataArgs("u"), ShouldResemble, []string{"-j", "--no-check-certificates", "--no-warnings", "u"})
		})

		Convey("It is parsed whatever the exit status", func() {
			runner := processtest.New().On(binary, processtest.Print(1, dump, "WARNING: something"))
			v, err := New(runner).Metadata(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
			So(err, ShouldBeNil)

			So(v.URL, ShouldEqual, "https://youtu.be/dQw4w9WgXcQ")
			So(v.Title, ShouldEqual, "Never Gonna Give You Up")
			So(v.Author, ShouldEqual, "Rick Astley")
			So(v.Duration, ShouldEqual, 212)
			So(v.Transcript.IsAbsent(), ShouldBeTrue)

			So(v.Formats, ShouldHaveLength, 2)
			So(v.Formats[0].Quality, ShouldEqual, "1080p")
			So(v.Formats[0].Resolution, ShouldEqual, "1920x1080")
			So(v.Formats[0].Filesize.MustGet(), ShouldEqual, int64(80000000))
			So(v.Formats[1].Quality, ShouldEqual, "unknown")
			So(v.Formats[1].Resolution, ShouldEqual, "N/A")
			So(v.Formats[1].Filesize.IsAbsent(), ShouldBeTrue)
		})

		Convey("Missing duration defaults to zero and fractions are truncated", func() {
			v, err := ParseMetadata("u", []byte(`{"title":"t"}`), "")
			So(err, ShouldBeNil)
			So(v.Duration, ShouldEqual, 0)
			So(v.Formats, ShouldBeEmpty)

			v, err = ParseMetadata("u", []byte(`{"duration": 65.7}`), "")
			So(err, ShouldBeNil)
			So(v.Duration, ShouldEqual, 65)
		})

		Convey("Empty stdout is a no-output failure carrying stderr", func() {
			_, err := ParseMetadata("u", []byte("  \n"), "ERROR: Video unavailable")
			So(errors.Is(err, fault.ErrNoUsableOutput), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Video unavailable")
		})

		Convey("Garbage stdout is a parse failure", func() {
			_, err := ParseMetadata("u", []byte("not json"), "")
			So(errors.Is(err, fault.ErrParse), ShouldBeTrue)
		})
	})
}

func TestStreamingURL(t *testing.T) {
	Convey("Given a stream request", t, func() {
		issued := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		now = func() time.Time { return issued }
		defer func() { now = time.Now }()

		Convey("Args cap the height", func() {
			So(StreamArgs("u", 720), ShouldResemble, []string{"-f", "best[height<=720]", "-g", "--no-check-certificates", "--no-warnings", "u"})
		})

		Convey("The URL is trimmed and expires after the validity window", func() {
			runner := processtest.New().On(binary, processtest.Print(0, "https://cdn.example/v.mp4\n", ""))
			s, err := New(runner).StreamingURL(context.Background(), "https://youtu.be/x")
			So(err, ShouldBeNil)
			So(s.StreamingURL, ShouldEqual, "https://cdn.example/v.mp4")
			So(s.VideoURL, ShouldEqual, "https://youtu.be/x")
			So(s.ExpireDate, ShouldEqual, "2024-03-01T16:00:00Z")

			expiry, err := s.Expiry()
			So(err, ShouldBeNil)
			So(expiry.Sub(issued), ShouldEqual, 6*time.Hour)
		})

		Convey("Blank stdout fails", func() {
			_, err := NewStreamingURL("u", " \n", "ERROR: no formats", issued, time.Hour)
			So(errors.Is(err, fault.ErrNoUsableOutput), ShouldBeTrue)
		})
	})
}

func TestCaptions(t *testing.T) {
	Convey("Given a caption request", t, func() {
		dir := "/scratch"
		So(filesystem.API().MkdirAll(dir, 0o755), ShouldBeNil)

		Convey("Args target the watch page", func() {
			So(CaptionArgs("abc", "en"), ShouldResemble, []string{
				"--write-auto-sub", "--skip-download",
				"--sub-lang", "en", "--sub-format", "srv1",
				"--no-check-certificates", "--no-warnings",
				"-o", "%(id)s.%(ext)s",
				"https://www.youtube.com/watch?v=abc",
			})
		})

		Convey("The written file is returned and removed", func() {
			runner := processtest.New().On(binary, func(_ context.Context, c process.Command) (*process.Result, error) {
				So(c.Dir, ShouldEqual, dir)
				So(afero.WriteFile(filesystem.API(), CaptionFile(c.Dir, "abc", "en"), []byte("<transcript/>"), 0o644), ShouldBeNil)
				return &process.Result{ExitCode: 1}, nil
			})

			data, err := New(runner).Captions(context.Background(), dir, "abc", "en")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "<transcript/>")

			exists, _ := afero.Exists(filesystem.API(), CaptionFile(dir, "abc", "en"))
			So(exists, ShouldBeFalse)
		})

		Convey("No file is a no-output failure even on exit 0", func() {
			runner := processtest.New().On(binary, processtest.Exit(0, "no subtitles"))
			_, err := New(runner).Captions(context.Background(), dir, "abc", "en")
			So(errors.Is(err, fault.ErrNoUsableOutput), ShouldBeTrue)
		})
	})
}
