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

		Convey("Use should install an arbitrary backend", func() {
			Use(afero.NewReadOnlyFs(afero.NewMemMapFs()))
			So(API().Name(), ShouldEqual, "ReadOnlyFilter")
			SetMemMapFs()
		})
	})

	Convey("GacheFs", t, func() {
		SetMemMapFs()
		var fs GacheFs

		Convey("Should create directories and files on the active backend", func() {
			So(fs.MkdirAll("/a/b", 0o755), ShouldBeNil)

			f, err := fs.OpenFile("/a/b/c.json", os.O_RDWR|os.O_CREATE, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			exists, err := API().Exists("/a/b/c.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
