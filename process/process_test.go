//go:build !windows

package process

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidclip-cli/vidclip/fault"
)

func TestExecBuffered(t *testing.T) {
	Convey("Given a buffered run", t, func() {
		ctx := context.Background()

		Convey("It captures stdout, stderr and the exit code", func() {
			res, err := Exec{}.Run(ctx, Command{
				Name: "sh",
				Args: []string{"-c", "echo out; echo err 1>&2; exit 3"},
			})
			So(err, ShouldBeNil)
			So(res.ExitCode, ShouldEqual, 3)
			So(res.Success(), ShouldBeFalse)
			So(strings.TrimSpace(string(res.Stdout)), ShouldEqual, "out")
			So(strings.TrimSpace(string(res.Stderr)), ShouldEqual, "err")
		})

		Convey("It runs in the requested directory", func() {
			dir := t.TempDir()
			res, err := Exec{}.Run(ctx, Command{Name: "pwd", Dir: dir})
			So(err, ShouldBeNil)
			So(strings.TrimSpace(string(res.Stdout)), ShouldEndWith, dir[strings.LastIndex(dir, "/"):])
		})

		Convey("A missing binary is a spawn failure", func() {
			_, err := Exec{}.Run(ctx, Command{Name: "definitely-not-a-real-binary-7f3a"})
			So(errors.Is(err, fault.ErrSpawn), ShouldBeTrue)
		})
	})
}

func TestExecStreaming(t *testing.T) {
	Convey("Given a streamed run", t, func() {
		var lines []string
		res, err := Exec{}.Run(context.Background(), Command{
			Name:         "sh",
			Args:         []string{"-c", `printf 'one\ntwo\rthree\n' 1>&2; echo ignored; exit 1`},
			OnStderrLine: func(l string) { lines = append(lines, l) },
		})

		So(err, ShouldBeNil)
		So(res.ExitCode, ShouldEqual, 1)
		So(lines, ShouldResemble, []string{"one", "two", "three"})
		So(string(res.Stderr), ShouldEqual, "one\ntwo\nthree")
		So(res.Stdout, ShouldBeEmpty)
	})
}

func TestExecCancellation(t *testing.T) {
	Convey("Cancelling the context kills the process group", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		started := time.Now()
		_, err := Exec{}.Run(ctx, Command{
			Name:         "sh",
			Args:         []string{"-c", "sleep 30 & sleep 30"},
			OnStderrLine: func(string) {},
		})

		So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		So(time.Since(started), ShouldBeLessThan, 10*time.Second)
	})
}

func TestScanLines(t *testing.T) {
	Convey("scanLines", t, func() {
		adv, tok, err := scanLines([]byte("a\r\nb"), false)
		So(err, ShouldBeNil)
		So(adv, ShouldEqual, 3)
		So(string(tok), ShouldEqual, "a")

		adv, tok, _ = scanLines([]byte("a\r"), false)
		So(adv, ShouldEqual, 0)
		So(tok, ShouldBeNil)

		adv, tok, _ = scanLines([]byte("tail"), true)
		So(adv, ShouldEqual, 4)
		So(string(tok), ShouldEqual, "tail")
	})
}

func TestTail(t *testing.T) {
	Convey("tail keeps the newest lines in order", t, func() {
		tl := newTail(3)
		for _, l := range []string{"1", "2", "3", "4", "5"} {
			tl.add(l)
		}
		So(tl.String(), ShouldEqual, "3\n4\n5")

		short := newTail(3)
		short.add("only")
		So(short.String(), ShouldEqual, "only")
	})
}

func TestMissing(t *testing.T) {
	Convey("Missing reports absent binaries only", t, func() {
		So(Missing("sh", "definitely-not-a-real-binary-7f3a"), ShouldResemble, []string{"definitely-not-a-real-binary-7f3a"})
	})
}
