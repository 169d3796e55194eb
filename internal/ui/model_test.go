package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Without a notification the view is untouched", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("When notified", func() {
			So(m.Update(NotificationMsg("saved")), ShouldNotBeNil)

			Convey("Then the text is appended to the last line", func() {
				So(m.Current(), ShouldEqual, "saved")
				So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
				So(m.View("a\nb"), ShouldContainSubstring, "saved")
			})

			Convey("Then an outdated clear is ignored", func() {
				m.Update(NotificationMsg("newer"))
				m.Update(ClearNotificationMsg{generation: 1})
				So(m.Current(), ShouldEqual, "newer")

				m.Update(ClearNotificationMsg{generation: 2})
				So(m.Current(), ShouldBeEmpty)
			})
		})
	})
}
