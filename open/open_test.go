package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidclip-cli/vidclip/constant"
	"github.com/vidclip-cli/vidclip/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCommand(t *testing.T) {
	Convey("Command picks the platform opener", t, func() {
		cmd, err := Command(constant.Linux, "/videos/a_full.mp4")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", "/videos/a_full.mp4"})

		cmd, err = Command(constant.Darwin, "https://cdn.example/v.mp4")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"open", "https://cdn.example/v.mp4"})

		cmd, err = Command(constant.Windows, "x")
		So(err, ShouldBeNil)
		So(cmd.Args[1:], ShouldResemble, []string{"url.dll,FileProtocolHandler", "x"})

		_, err = Command("plan9", "x")
		So(err, ShouldNotBeNil)
	})

	Convey("File refuses paths that do not exist", t, func() {
		So(File("/nowhere/video.mp4"), ShouldNotBeNil)
	})
}
