package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Hooks() should live under Config()", func() {
			So(filepath.Dir(Hooks()), ShouldEqual, Config())
		})

		Convey("History() should be a json file under Config()", func() {
			So(filepath.Ext(History()), ShouldEqual, ".json")
			So(filepath.Dir(History()), ShouldEqual, Config())
		})

		Convey("Config() should honor the override variable", func() {
			t.Setenv(EnvConfigPath, "/override/scrub")
			So(Config(), ShouldEqual, "/override/scrub")
		})
	})
}
