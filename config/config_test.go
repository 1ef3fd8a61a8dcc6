package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.YtdlpBinary), ShouldEqual, "yt-dlp")
			So(viper.GetInt(key.StreamValidityHours), ShouldEqual, 6)
		})

		Convey("Should pick up variables from a dotenv file", func() {
			dir := t.TempDir()
			DotEnvFile = filepath.Join(dir, ".env")
			defer func() { DotEnvFile = ".env" }()

			So(os.WriteFile(DotEnvFile, []byte("VIDCLIP_FFMPEG_BINARY=/opt/ffmpeg/bin/ffmpeg\n"), 0o644), ShouldBeNil)
			defer os.Unsetenv("VIDCLIP_FFMPEG_BINARY")

			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.FfmpegBinary), ShouldEqual, "/opt/ffmpeg/bin/ffmpeg")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("stream.max_height"), ShouldEqual, "stream_max_height")
		})

		Convey("Field.Env should carry the application prefix", func() {
			f := Default[key.DownloadsDir]
			So(f.Env(), ShouldEqual, "VIDCLIP_DOWNLOADS_DIR")
		})
	})
}
