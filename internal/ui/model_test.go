package ui

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Without a notification the view is untouched", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A notification is appended to the last line", func() {
			So(m.Update(NotifyCancelling()()), ShouldNotBeNil)
			So(m.Notification(), ShouldEqual, "Cancelling...")

			lines := strings.Split(m.View("a\nb"), "\n")
			So(lines[0], ShouldEqual, "a")
			So(lines[1], ShouldContainSubstring, "Cancelling...")
		})

		Convey("Only the timer of the latest notification clears it", func() {
			m.Update(NotificationMsg("first"))
			stale := ClearNotificationMsg{at: m.notifiedAt.Add(-time.Second)}
			m.Update(stale)
			So(m.Notification(), ShouldEqual, "first")

			m.Update(ClearNotificationMsg{at: m.notifiedAt})
			So(m.Notification(), ShouldBeEmpty)
		})
	})
}
