package workspace

import (
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidclip-cli/vidclip/media"
)

func TestSanitizeName(t *testing.T) {
	Convey("Given human titles", t, func() {
		Convey("Separators and punctuation collapse into single underscores", func() {
			So(SanitizeName("My Video - Part 1", media.KindFull), ShouldEqual, "my_video_part_1_full")
			So(SanitizeName("  Hello, World!!  ", media.KindClip), ShouldEqual, "hello_world_clip")
			So(SanitizeName("a__b--c", media.KindFull), ShouldEqual, "a_b_c_full")
		})

		Convey("Letters outside ASCII are kept", func() {
			So(SanitizeName("Café Über", media.KindFull), ShouldEqual, "café_Über_full")
		})

		Convey("Every kind of numeral is kept", func() {
			So(SanitizeName("Rocky Ⅳ²", media.KindFull), ShouldEqual, "rocky_Ⅳ²_full")
			So(SanitizeName("٣ Songs", media.KindClip), ShouldEqual, "٣_songs_clip")
		})

		Convey("Long names are capped before the suffix", func() {
			name := SanitizeName(strings.Repeat("a", 150), media.KindClip)
			So(name, ShouldEqual, strings.Repeat("a", 100)+"_clip")
		})

		Convey("A cut landing on a separator does not leave a dangling underscore", func() {
			name := SanitizeName(strings.Repeat("a", 99)+" b", media.KindFull)
			So(name, ShouldEqual, strings.Repeat("a", 99)+"_full")
		})

		Convey("Nothing usable falls back to a generic stem", func() {
			So(SanitizeName("!!!", media.KindFull), ShouldEqual, "video_full")
		})

		Convey("Sanitizing its own output yields the same name", func() {
			for _, in := range []string{
				"My Video - Part 1",
				"__x__",
				strings.Repeat("ab ", 60),
				"Café Über",
			} {
				for _, kind := range []media.Kind{media.KindFull, media.KindClip} {
					once := SanitizeName(in, kind)
					stem := strings.TrimSuffix(once, "_"+kind.Suffix())
					So(SanitizeName(stem, kind), ShouldEqual, once)
				}
			}
		})
	})

	Convey("ResolveFinalPath joins the sanitized name with the mp4 extension", t, func() {
		So(ResolveFinalPath("/out", "Some Title", media.KindClip), ShouldEqual, filepath.Join("/out", "some_title_clip.mp4"))
	})
}
