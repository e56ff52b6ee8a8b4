package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/anonrev/placerank/internal/adapters/repository"
	app "github.com/anonrev/placerank/internal/app"
	catalog "github.com/anonrev/placerank/internal/domain/catalog"
	"github.com/anonrev/placerank/internal/domain/model"
	throttle "github.com/anonrev/placerank/internal/domain/throttle"
	vote "github.com/anonrev/placerank/internal/domain/vote"
	"github.com/anonrev/placerank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func allRated(value int) map[string]model.RatingEntry {
	entries := make(map[string]model.RatingEntry, catalog.Size())
	for _, id := range catalog.IDs() {
		entries[id] = model.Rate(value)
	}
	return entries
}

func waitUntil(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := app.New(app.WithWorkerCount(2), app.WithQueueSize(100))

		Convey("Then it should start and stop cleanly", func() {
			ctx := context.Background()
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil) // second start is a no-op
			svc.Stop()
			svc.Stop() // second stop is a no-op
		})

		Convey("And stats should work before starting", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeFalse)
		})
	})
}

func TestServiceVoteFlow(t *testing.T) {
	Convey("Given a started service with a controllable clock", t, func() {
		ctx := context.Background()
		now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
		store := repository.NewMemStore(repository.WithClock(func() time.Time { return now }))

		svc := app.New(
			app.WithStore(store),
			app.WithWorkerCount(2),
			app.WithQueueSize(100),
			app.WithRankingLimit(10),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When creating a place", func() {
			p, err := svc.CreatePlace(ctx, "Grand Resort", "Cancun", "Km 9")
			So(err, ShouldBeNil)
			So(p.ID, ShouldNotBeEmpty)

			Convey("Then creating with a blank field should fail typed", func() {
				_, err := svc.CreatePlace(ctx, "", "Cancun", "Km 9")
				So(errors.Is(err, vote.ErrMissingPlaceField), ShouldBeTrue)
			})

			Convey("And submitting a complete vote should be accepted", func() {
				sub, err := svc.SubmitVote(ctx, p.ID, allRated(4))
				So(err, ShouldBeNil)
				So(sub.AcceptedAt, ShouldEqual, now)

				Convey("And the ranking should eventually include the place", func() {
					ok := waitUntil(func() bool {
						r := svc.Ranking(ctx, 0)
						return len(r.TopPlaces) == 1
					})
					So(ok, ShouldBeTrue)

					r := svc.Ranking(ctx, 0)
					So(r.TopPlaces[0].ID, ShouldEqual, p.ID)
					So(r.TopPlaces[0].AverageRating, ShouldEqual, "4.00")
					So(r.TopPlaces[0].TotalVotes, ShouldEqual, 1)
					So(r.BottomPlaces[0].ID, ShouldEqual, p.ID)
				})

				Convey("And a second vote inside the cooldown should be throttled", func() {
					now = now.AddDate(0, 1, 0)
					_, err := svc.SubmitVote(ctx, p.ID, allRated(2))
					So(errors.Is(err, throttle.ErrThrottled), ShouldBeTrue)

					var te *throttle.ThrottledError
					So(errors.As(err, &te), ShouldBeTrue)
					So(te.Remaining, ShouldBeGreaterThan, 0)
				})

				Convey("And a vote after the cooldown should update the aggregate", func() {
					now = now.AddDate(0, 3, 0)
					_, err := svc.SubmitVote(ctx, p.ID, allRated(2))
					So(err, ShouldBeNil)

					details, err := svc.PlaceDetails(ctx, p.ID)
					So(err, ShouldBeNil)
					So(details.TotalVotes, ShouldEqual, 2)
				})
			})

			Convey("And an incomplete vote should be rejected before the store", func() {
				entries := allRated(4)
				delete(entries, "HONESTY")
				_, err := svc.SubmitVote(ctx, p.ID, entries)
				So(errors.Is(err, vote.ErrIncompleteSubmission), ShouldBeTrue)

				details, _ := svc.PlaceDetails(ctx, p.ID)
				So(details.TotalVotes, ShouldEqual, 0)
			})

			Convey("And an out-of-range vote should be rejected", func() {
				entries := allRated(4)
				entries["HR"] = model.Rate(9)
				_, err := svc.SubmitVote(ctx, p.ID, entries)
				So(errors.Is(err, vote.ErrInvalidRatingValue), ShouldBeTrue)
			})
		})

		Convey("When voting on an unknown place", func() {
			_, err := svc.SubmitVote(ctx, "ghost", allRated(3))
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When asking for details of an unknown place", func() {
			_, err := svc.PlaceDetails(ctx, "ghost")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestServiceRanking(t *testing.T) {
	Convey("Given a service with several voted places", t, func() {
		ctx := context.Background()
		svc := app.New(
			app.WithWorkerCount(2),
			app.WithQueueSize(100),
			app.WithRankingLimit(2),
			app.WithMaxRankingLimit(3),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		values := map[string]int{"Low": 1, "Mid": 3, "High": 5, "Top": 5}
		ids := make(map[string]string, len(values))
		for _, name := range []string{"Low", "Mid", "High", "Top"} {
			p, err := svc.CreatePlace(ctx, name, "Cancun", "Km 9")
			So(err, ShouldBeNil)
			ids[name] = p.ID
			_, err = svc.SubmitVote(ctx, p.ID, allRated(values[name]))
			So(err, ShouldBeNil)
		}

		So(waitUntil(func() bool {
			return len(svc.Ranking(ctx, 100).TopPlaces) == 4
		}), ShouldBeTrue)

		Convey("When fetching with the default limit", func() {
			r := svc.Ranking(ctx, 0)

			Convey("Then each list should hold two entries", func() {
				So(len(r.TopPlaces), ShouldEqual, 2)
				So(len(r.BottomPlaces), ShouldEqual, 2)
			})

			Convey("And the ends should be correct with stable ties", func() {
				// High and Top tie at 5.00; creation order breaks the tie,
				// so the later one ranks first in the top list.
				So(r.TopPlaces[0].ID, ShouldEqual, ids["Top"])
				So(r.TopPlaces[1].ID, ShouldEqual, ids["High"])
				So(r.BottomPlaces[0].ID, ShouldEqual, ids["Low"])
				So(r.BottomPlaces[1].ID, ShouldEqual, ids["Mid"])
			})
		})

		Convey("When asking beyond the configured maximum", func() {
			r := svc.Ranking(ctx, 50)

			Convey("Then the limit should be clamped", func() {
				So(len(r.TopPlaces), ShouldEqual, 3)
				So(len(r.BottomPlaces), ShouldEqual, 3)
			})
		})

		Convey("When a place has every category omitted", func() {
			p, err := svc.CreatePlace(ctx, "Silent", "Tulum", "Km 1")
			So(err, ShouldBeNil)

			omitted := make(map[string]model.RatingEntry, catalog.Size())
			for _, id := range catalog.IDs() {
				omitted[id] = model.Omit()
			}
			_, err = svc.SubmitVote(ctx, p.ID, omitted)
			So(err, ShouldBeNil)

			Convey("Then it should count votes but never rank", func() {
				details, err := svc.PlaceDetails(ctx, p.ID)
				So(err, ShouldBeNil)
				So(details.TotalVotes, ShouldEqual, 1)

				time.Sleep(100 * time.Millisecond)
				r := svc.Ranking(ctx, 100)
				for _, e := range append(r.TopPlaces, r.BottomPlaces...) {
					So(e.ID, ShouldNotEqual, p.ID)
				}
			})
		})
	})
}

func TestServicePreviewOverall(t *testing.T) {
	Convey("Given in-progress entries", t, func() {
		ctx := context.Background()
		svc := app.New()

		Convey("Then the preview should match the weighted formula", func() {
			avg, ok := svc.PreviewOverall(ctx, map[string]model.RatingEntry{
				"HR":             model.Rate(5),
				"FRONT DESK":     model.Rate(3),
				"DISCRIMINATION": model.Rate(5),
			})
			So(ok, ShouldBeTrue)
			So(avg, ShouldEqual, 4.5)
		})

		Convey("And an all-omitted draft should preview as undefined", func() {
			_, ok := svc.PreviewOverall(ctx, map[string]model.RatingEntry{
				"HR": model.Omit(),
			})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestServiceStats(t *testing.T) {
	Convey("Given a started service with activity", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithWorkerCount(1), app.WithQueueSize(10))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		p, _ := svc.CreatePlace(ctx, "Grand Resort", "Cancun", "Km 9")
		_, _ = svc.SubmitVote(ctx, p.ID, allRated(4))

		Convey("Then stats should expose the counters", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["totalPlaces"], ShouldEqual, 1)
			So(stats["totalVotes"], ShouldEqual, 1)
			So(stats["workerCount"], ShouldEqual, 1)
		})
	})
}
