package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/progress"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given finished downloads", t, func() {
		So(Clear(), ShouldBeNil)

		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		older := &Record{
			JobID:      "job-1",
			URL:        "https://youtu.be/dQw4w9WgXcQ",
			Title:      "Never Gonna Give You Up",
			Kind:       media.KindFull,
			Output:     "/videos/never_gonna_give_you_up_full.mp4",
			Status:     progress.StatusDone,
			FinishedAt: base,
		}
		newer := &Record{
			JobID:      "job-2",
			URL:        "https://youtu.be/9bZkp7q19f0",
			Title:      "Gangnam Style",
			Kind:       media.KindClip,
			Start:      "00:01:00",
			End:        "00:01:30",
			Status:     progress.StatusError,
			Error:      "no usable output: yt-dlp failed to download file",
			FinishedAt: base.Add(time.Hour),
		}

		Convey("When saving them", func() {
			So(Save(older), ShouldBeNil)
			So(Save(newer), ShouldBeNil)

			Convey("Then they are listed newest first", func() {
				records, err := List()
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0].JobID, ShouldEqual, "job-2")
				So(records[0].Succeeded(), ShouldBeFalse)
				So(records[1].Succeeded(), ShouldBeTrue)
			})

			Convey("Then a fuzzy query narrows them down", func() {
				records, err := Find("gangnam")
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].String(), ShouldEqual, "Gangnam Style [00:01:00-00:01:30]")

				records, err = Find("")
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
			})

			Convey("Then saving the same job again replaces it", func() {
				again := *older
				again.Title = "Renamed"
				So(Save(&again), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldHaveLength, 2)
				So(saved["job-1"].Title, ShouldEqual, "Renamed")
			})

			Convey("Then removing one keeps the other", func() {
				So(Remove("job-1"), ShouldBeNil)
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldHaveLength, 1)
				So(saved, ShouldContainKey, "job-2")
			})
		})
	})
}

func TestHistoryConcurrentSave(t *testing.T) {
	Convey("Given many downloads finishing at once", t, func() {
		So(Clear(), ShouldBeNil)

		const jobs = 64
		start := make(chan struct{})
		errs := make(chan error, jobs)

		var wg sync.WaitGroup
		for i := 0; i < jobs; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				errs <- Save(&Record{
					JobID:      fmt.Sprintf("job-%d", i),
					URL:        "https://youtu.be/dQw4w9WgXcQ",
					Status:     progress.StatusDone,
					FinishedAt: time.Now(),
				})
			}(i)
		}
		close(start)
		wg.Wait()
		close(errs)

		Convey("Then every record is kept", func() {
			for err := range errs {
				So(err, ShouldBeNil)
			}

			saved, err := Get()
			So(err, ShouldBeNil)
			So(saved, ShouldHaveLength, jobs)
		})

		Convey("Then callers get a copy they can change freely", func() {
			saved, err := Get()
			So(err, ShouldBeNil)
			delete(saved, "job-0")

			again, err := Get()
			So(err, ShouldBeNil)
			So(again, ShouldContainKey, "job-0")
		})
	})
}
