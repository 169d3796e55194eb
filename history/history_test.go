package history

import (
	"testing"
	"time"

	"github.com/scrub-cli/scrub/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func at(minute int) time.Time {
	return time.Date(2026, time.March, 1, 12, minute, 0, 0, time.UTC)
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(Clear(), ShouldBeNil)

		Convey("Latest should be empty", func() {
			latest, err := Latest()
			So(err, ShouldBeNil)
			So(latest.IsPresent(), ShouldBeFalse)
		})

		Convey("When saving two entries", func() {
			So(Save(Entry{
				Path:       "https://example.com/a.mp4",
				Title:      "A",
				PositionMs: 60000,
				DurationMs: 600000,
				UpdatedAt:  at(1),
			}), ShouldBeNil)
			So(Save(Entry{
				Path:       "https://example.com/b.mp4",
				Title:      "B",
				PositionMs: 5000,
				UpdatedAt:  at(2),
			}), ShouldBeNil)

			Convey("Then both should be listed newest first", func() {
				list, err := List()
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 2)
				So(list[0].Title, ShouldEqual, "B")
				So(list[1].Title, ShouldEqual, "A")
			})

			Convey("Then Find should return the saved state", func() {
				found, err := Find("https://example.com/a.mp4")
				So(err, ShouldBeNil)

				entry, ok := found.Get()
				So(ok, ShouldBeTrue)
				So(entry.PositionMs, ShouldEqual, 60000)
				So(entry.UpdatedAt.Equal(at(1)), ShouldBeTrue)
			})

			Convey("Then Latest should be the newest", func() {
				latest, err := Latest()
				So(err, ShouldBeNil)
				So(latest.MustGet().Title, ShouldEqual, "B")
			})

			Convey("And saving the same target again", func() {
				So(Save(Entry{
					Path:       " https://example.com/a.mp4",
					Title:      "A",
					PositionMs: 120000,
					DurationMs: 600000,
					UpdatedAt:  at(3),
				}), ShouldBeNil)

				Convey("Then it should replace the old entry", func() {
					entries, err := Get()
					So(err, ShouldBeNil)
					So(entries, ShouldHaveLength, 2)
					So(entries["https://example.com/a.mp4"].PositionMs, ShouldEqual, 120000)

					latest, _ := Latest()
					So(latest.MustGet().Title, ShouldEqual, "A")
				})
			})

			Convey("And removing one", func() {
				So(Remove("https://example.com/b.mp4"), ShouldBeNil)
				So(Remove("https://example.com/missing.mp4"), ShouldBeNil)

				Convey("Then only the other should remain", func() {
					list, err := List()
					So(err, ShouldBeNil)
					So(list, ShouldHaveLength, 1)
					So(list[0].Title, ShouldEqual, "A")
				})
			})

			Convey("Then Search should match titles and paths fuzzily", func() {
				all, err := Search("")
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 2)

				byPath, err := Search("exa/b")
				So(err, ShouldBeNil)
				So(byPath, ShouldHaveLength, 1)
				So(byPath[0].Title, ShouldEqual, "B")

				none, err := Search("zzz")
				So(err, ShouldBeNil)
				So(none, ShouldBeEmpty)
			})

			Convey("And clearing", func() {
				So(Clear(), ShouldBeNil)

				list, err := List()
				So(err, ShouldBeNil)
				So(list, ShouldBeEmpty)
			})
		})

		Convey("Saving without a timestamp should stamp the entry", func() {
			before := time.Now()
			So(Save(Entry{Path: "movie.mkv"}), ShouldBeNil)

			found, err := Find("./movie.mkv")
			So(err, ShouldBeNil)
			So(found.IsPresent(), ShouldBeTrue)
			So(found.MustGet().UpdatedAt.Before(before), ShouldBeFalse)
		})
	})
}

func TestEntry(t *testing.T) {
	Convey("Given an entry ten minutes long", t, func() {
		entry := Entry{Path: "/videos/talk.mkv", DurationMs: 600000}

		Convey("Progress should be the watched fraction", func() {
			entry.PositionMs = 150000
			So(entry.Progress(), ShouldEqual, 0.25)

			entry.DurationMs = 0
			So(entry.Progress(), ShouldEqual, 0)
		})

		Convey("A position in the middle should be resumed", func() {
			entry.PositionMs = 300000
			position, ok := entry.ResumePosition(10000)
			So(ok, ShouldBeTrue)
			So(position, ShouldEqual, 300000)
		})

		Convey("A position near the start should not be resumed", func() {
			entry.PositionMs = 9000
			_, ok := entry.ResumePosition(10000)
			So(ok, ShouldBeFalse)
		})

		Convey("A position near the end should not be resumed", func() {
			entry.PositionMs = 595000
			_, ok := entry.ResumePosition(10000)
			So(ok, ShouldBeFalse)
		})

		Convey("A stream of unknown length should be resumed", func() {
			entry.DurationMs = 0
			entry.PositionMs = 3600000
			_, ok := entry.ResumePosition(10000)
			So(ok, ShouldBeTrue)
		})

		Convey("String should fall back to the file name", func() {
			entry.PositionMs = 65000
			So(entry.String(), ShouldEqual, "talk.mkv  01:05 / 10:00")

			entry.Title = "Talk"
			So(entry.String(), ShouldStartWith, "Talk  ")
		})
	})
}
