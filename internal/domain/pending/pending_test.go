package pending_test

import (
	"context"
	"sync"
	"testing"

	pending "github.com/anonrev/placerank/internal/domain/pending"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTracker(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty tracker", t, func() {
		tracker := pending.NewInMemoryTracker()

		Convey("Then size should be zero", func() {
			So(tracker.Size(), ShouldEqual, 0)
		})

		Convey("When marking a place pending", func() {
			already := tracker.MarkPending(ctx, "p1")

			Convey("Then the first mark should report not-yet-pending", func() {
				So(already, ShouldBeFalse)
				So(tracker.Size(), ShouldEqual, 1)
			})

			Convey("And a second mark should coalesce", func() {
				So(tracker.MarkPending(ctx, "p1"), ShouldBeTrue)
				So(tracker.Size(), ShouldEqual, 1)
			})

			Convey("And clearing should allow a fresh mark", func() {
				tracker.Clear(ctx, "p1")
				So(tracker.Size(), ShouldEqual, 0)
				So(tracker.MarkPending(ctx, "p1"), ShouldBeFalse)
			})
		})

		Convey("When clearing a place that was never marked", func() {
			tracker.Clear(ctx, "ghost")

			Convey("Then size should stay zero", func() {
				So(tracker.Size(), ShouldEqual, 0)
			})
		})

		Convey("When marking distinct places", func() {
			So(tracker.MarkPending(ctx, "p1"), ShouldBeFalse)
			So(tracker.MarkPending(ctx, "p2"), ShouldBeFalse)

			Convey("Then each place should track independently", func() {
				So(tracker.Size(), ShouldEqual, 2)
				tracker.Clear(ctx, "p1")
				So(tracker.Size(), ShouldEqual, 1)
				So(tracker.MarkPending(ctx, "p2"), ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent marks for one place", t, func() {
		tracker := pending.NewInMemoryTracker()

		const goroutines = 50
		var wg sync.WaitGroup
		firsts := make(chan bool, goroutines)

		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !tracker.MarkPending(ctx, "p1") {
					firsts <- true
				}
			}()
		}
		wg.Wait()
		close(firsts)

		Convey("Then exactly one mark should win", func() {
			So(len(firsts), ShouldEqual, 1)
			So(tracker.Size(), ShouldEqual, 1)
		})
	})
}
