package score_test

import (
	"testing"

	"github.com/anonrev/placerank/internal/domain/model"
	score "github.com/anonrev/placerank/internal/domain/score"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOverall(t *testing.T) {
	Convey("Given a submission mixing rated and omitted categories", t, func() {
		// HR 5 (w1), FRONT DESK 3 (w1), DISCRIMINATION 5 (w2), rest omitted:
		// (5*1 + 3*1 + 5*2) / (1+1+2) = 18/4 = 4.5
		entries := map[string]model.RatingEntry{
			"HR":             model.Rate(5),
			"FRONT DESK":     model.Rate(3),
			"DISCRIMINATION": model.Rate(5),
			"HOUSEKEEPING":   model.Omit(),
			"LAUNDRY":        model.Omit(),
		}

		Convey("Then the weighted average should cover only the rated entries", func() {
			avg, ok := score.Overall(entries)
			So(ok, ShouldBeTrue)
			So(avg, ShouldAlmostEqual, 4.5)
			So(score.Round2(avg), ShouldEqual, 4.50)
		})
	})

	Convey("Given a submission with every entry omitted", t, func() {
		entries := map[string]model.RatingEntry{
			"HR":         model.Omit(),
			"FRONT DESK": model.Omit(),
		}

		Convey("Then the average should be undefined, not zero", func() {
			avg, ok := score.Overall(entries)
			So(ok, ShouldBeFalse)
			So(avg, ShouldEqual, 0)
		})
	})

	Convey("Given an empty entry map", t, func() {
		Convey("Then the average should be undefined", func() {
			_, ok := score.Overall(map[string]model.RatingEntry{})
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given unanswered entries mixed with rated ones", t, func() {
		entries := map[string]model.RatingEntry{
			"HR":         model.Rate(4),
			"FRONT DESK": {}, // unanswered
		}

		Convey("Then unanswered entries should not contribute", func() {
			avg, ok := score.Overall(entries)
			So(ok, ShouldBeTrue)
			So(avg, ShouldAlmostEqual, 4.0)
		})
	})

	Convey("Given a weighted category rated low", t, func() {
		// ANIMAL ABUSE (w2) at 1 pulls harder than an unweighted 5:
		// (5*1 + 1*2) / 3 = 7/3
		entries := map[string]model.RatingEntry{
			"HR":           model.Rate(5),
			"ANIMAL ABUSE": model.Rate(1),
		}

		Convey("Then the weight should amplify its influence", func() {
			avg, ok := score.Overall(entries)
			So(ok, ShouldBeTrue)
			So(avg, ShouldAlmostEqual, 7.0/3.0)
		})
	})
}

func TestOverallOfAverages(t *testing.T) {
	Convey("Given per-category averages", t, func() {
		averages := []model.CategoryAverage{
			{Category: "HR", Average: 4, Defined: true},
			{Category: "DISCRIMINATION", Average: 2, Defined: true},
			{Category: "LAUNDRY", Defined: false},
		}

		Convey("Then undefined averages should be skipped", func() {
			// (4*1 + 2*2) / 3 = 8/3
			avg, ok := score.OverallOfAverages(averages)
			So(ok, ShouldBeTrue)
			So(avg, ShouldAlmostEqual, 8.0/3.0)
		})
	})

	Convey("Given only undefined averages", t, func() {
		averages := []model.CategoryAverage{
			{Category: "HR"},
			{Category: "LAUNDRY"},
		}

		Convey("Then the overall should be undefined", func() {
			_, ok := score.OverallOfAverages(averages)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRound2(t *testing.T) {
	Convey("Given raw averages", t, func() {
		Convey("Then they should round to two decimals", func() {
			So(score.Round2(7.0/3.0), ShouldEqual, 2.33)
			So(score.Round2(14.0/3.0), ShouldEqual, 4.67)
			So(score.Round2(4.5), ShouldEqual, 4.5)
			So(score.Round2(0), ShouldEqual, 0)
		})
	})
}
