package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Should accept an arbitrary backend", func() {
			Use(afero.NewReadOnlyFs(afero.NewMemMapFs()))
			So(API().WriteFile("/x", []byte("y"), 0o644), ShouldNotBeNil)
		})

		Reset(SetOsFs)
	})
}

func TestGacheFs(t *testing.T) {
	Convey("GacheFs writes through the active backend", t, func() {
		SetMemMapFs()

		var g GacheFs
		So(g.MkdirAll("/cache/dir", 0o755), ShouldBeNil)

		f, err := g.OpenFile("/cache/dir/entry.json", os.O_CREATE|os.O_WRONLY, 0o644)
		So(err, ShouldBeNil)
		_, err = f.Write([]byte("{}"))
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		exists, err := API().Exists("/cache/dir/entry.json")
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)
	})
}
