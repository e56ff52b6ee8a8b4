package types_test

import (
	"encoding/json"
	"testing"

	"github.com/anonrev/placerank/internal/domain/model"
	"github.com/anonrev/placerank/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatRating(t *testing.T) {
	Convey("Given overall averages", t, func() {
		Convey("Then whole numbers should render with two decimals", func() {
			So(types.FormatRating(4), ShouldEqual, "4.00")
			So(types.FormatRating(1), ShouldEqual, "1.00")
		})

		Convey("And fractional averages should round half away from zero", func() {
			So(types.FormatRating(4.5), ShouldEqual, "4.50")
			So(types.FormatRating(7.0/3.0), ShouldEqual, "2.33")
			So(types.FormatRating(14.0/3.0), ShouldEqual, "4.67")
		})
	})
}

func TestRankingEntryFrom(t *testing.T) {
	Convey("Given a derived ranking row", t, func() {
		entry := model.PlaceRankingEntry{
			Place: model.Place{
				ID:      "p-1",
				Name:    "Grand Resort",
				City:    "Cancun",
				Address: "Km 9",
			},
			Overall:   4.5,
			VoteCount: 3,
		}

		Convey("When converting to the wire shape", func() {
			row := types.RankingEntryFrom(entry)

			Convey("Then the fields should carry over with a formatted average", func() {
				So(row.ID, ShouldEqual, "p-1")
				So(row.Name, ShouldEqual, "Grand Resort")
				So(row.City, ShouldEqual, "Cancun")
				So(row.AverageRating, ShouldEqual, "4.50")
				So(row.TotalVotes, ShouldEqual, 3)
			})

			Convey("And the JSON field names should match the API contract", func() {
				raw, err := json.Marshal(row)
				So(err, ShouldBeNil)

				var decoded map[string]interface{}
				So(json.Unmarshal(raw, &decoded), ShouldBeNil)
				So(decoded["averageRating"], ShouldEqual, "4.50")
				So(decoded["totalVotes"], ShouldEqual, 3)
			})
		})
	})
}

func TestCategoryAverageFrom(t *testing.T) {
	Convey("Given per-category means", t, func() {
		Convey("When the category has been rated", func() {
			row := types.CategoryAverageFrom(model.CategoryAverage{
				Category: "HR",
				Average:  10.0 / 3.0,
				Defined:  true,
			})

			Convey("Then the average should be a two-decimal string", func() {
				So(row.Category, ShouldEqual, "HR")
				So(row.Average, ShouldNotBeNil)
				So(*row.Average, ShouldEqual, "3.33")
			})
		})

		Convey("When the category was always omitted", func() {
			row := types.CategoryAverageFrom(model.CategoryAverage{
				Category: "LAUNDRY",
				Defined:  false,
			})

			Convey("Then the average should serialize as null", func() {
				So(row.Average, ShouldBeNil)

				raw, err := json.Marshal(row)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `"average":null`)
			})
		})
	})
}
