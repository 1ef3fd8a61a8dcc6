package fault

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWithDiagnostic(t *testing.T) {
	Convey("WithDiagnostic", t, func() {
		Convey("It keeps the kind reachable through wrapping", func() {
			err := WithDiagnostic(ErrNoUsableOutput, "yt-dlp failed to download file", "ERROR: Video unavailable\n")
			wrapped := fmt.Errorf("download: %w", err)

			So(errors.Is(wrapped, ErrNoUsableOutput), ShouldBeTrue)
			So(err.Error(), ShouldEndWith, "ERROR: Video unavailable")
		})

		Convey("It omits an empty diagnostic", func() {
			err := WithDiagnostic(ErrEncode, "ffmpeg failed", "   ")
			So(err.Error(), ShouldEqual, "encode failed: ffmpeg failed")
		})
	})
}

func TestTail(t *testing.T) {
	Convey("Tail keeps the end of long output", t, func() {
		long := strings.Repeat("a", 5000) + "final line"
		tail := Tail(long)

		So(len(tail), ShouldBeLessThanOrEqualTo, tailLimit+len("…"))
		So(tail, ShouldEndWith, "final line")
		So(tail, ShouldStartWith, "…")
	})

	Convey("Tail never splits a multi-byte character", t, func() {
		for _, prefix := range []string{"", "x"} {
			tail := Tail(prefix + strings.Repeat("€", 2000))
			So(utf8.ValidString(tail), ShouldBeTrue)
			So(strings.TrimPrefix(tail, "…"), ShouldEqual, strings.Repeat("€", tailLimit/3))
		}
	})
}

func TestKind(t *testing.T) {
	Convey("Kind classifies wrapped errors", t, func() {
		So(Kind(fmt.Errorf("x: %w", ErrOutputMissing)), ShouldEqual, ErrOutputMissing)
		So(errors.Is(ErrOutputMissing, ErrEncode), ShouldBeTrue)
		So(Kind(fmt.Errorf("x: %w", ErrEncode)), ShouldEqual, ErrEncode)
		So(Kind(fmt.Errorf("x: %w", ErrSpawn)), ShouldEqual, ErrSpawn)
		So(Kind(errors.New("other")), ShouldBeNil)
	})
}
