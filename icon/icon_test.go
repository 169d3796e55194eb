package icon

import (
	"testing"

	"github.com/scrub-cli/scrub/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Every registered icon should have a symbol in every variant", t, func() {
		for i := range icons {
			for _, v := range variants {
				So(In(i, v), ShouldNotBeEmpty)
			}
		}
	})

	Convey("Given the emoji variant", t, func() {
		viper.Set(key.IconsVariant, string(Emoji))
		So(Current(), ShouldEqual, Emoji)
		So(Get(Play), ShouldEqual, icons[Play][Emoji])
	})

	Convey("Given an unknown variant", t, func() {
		viper.Set(key.IconsVariant, "sparkles")

		Convey("It should fall back to plain", func() {
			So(Current(), ShouldEqual, Plain)
			So(Get(Pause), ShouldEqual, icons[Pause][Plain])
		})
	})

	Convey("An unregistered icon should render empty", t, func() {
		So(In(Icon(0), Plain), ShouldBeEmpty)
	})
}
