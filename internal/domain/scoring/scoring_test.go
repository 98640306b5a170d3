package scoring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scoring"
	"github.com/okian/podium/internal/event"
	. "github.com/smartystreets/goconvey/convey"
)

func testEvent() *event.Event {
	return &event.Event{
		Title:  "Spring Hackathon",
		Judges: []string{"Alice", "Bob", "Carol"},
		Teams:  []string{"Rocket", "Comet"},
		Categories: []event.PrizeCategory{
			{
				Name: "Best Overall",
				Criteria: []event.Criterion{
					{Name: "Innovation", MaxScore: 10},
					{Name: "Execution", MaxScore: 15},
				},
			},
			{
				Name: "Best Design",
				Criteria: []event.Criterion{
					{Name: "Polish", MaxScore: 5},
				},
			},
		},
	}
}

func record(team, judge, category string, scores map[string]float64) model.ScoreRecord {
	return model.ScoreRecord{
		Team:      team,
		Judge:     judge,
		Category:  category,
		Scores:    scores,
		UpdatedAt: time.Date(2025, 5, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestValidator_Validate(t *testing.T) {
	Convey("Given a validator bound to an event configuration", t, func() {
		v := scoring.NewValidator(testEvent())

		Convey("When a submission is fully within bounds", func() {
			err := v.Validate(model.Submission{
				Team:     "Rocket",
				Judge:    "Alice",
				Category: "Best Overall",
				Scores:   map[string]float64{"Innovation": 8, "Execution": 15},
			})

			Convey("Then it should pass", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the team is not configured", func() {
			err := v.Validate(model.Submission{
				Team:     "Meteor",
				Judge:    "Alice",
				Category: "Best Overall",
				Scores:   map[string]float64{"Innovation": 8},
			})

			Convey("Then it should fail naming the team field", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, scoring.ErrValidation), ShouldBeTrue)
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "team")
			})
		})

		Convey("When the judge is not configured", func() {
			err := v.Validate(model.Submission{
				Team:     "Rocket",
				Judge:    "Mallory",
				Category: "Best Overall",
				Scores:   map[string]float64{"Innovation": 8},
			})

			Convey("Then it should fail naming the judge field", func() {
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "judge")
			})
		})

		Convey("When the category is not configured", func() {
			err := v.Validate(model.Submission{
				Team:     "Rocket",
				Judge:    "Alice",
				Category: "Best Meme",
				Scores:   map[string]float64{"Innovation": 8},
			})

			Convey("Then it should fail naming the category field", func() {
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "category")
			})
		})

		Convey("When a score exceeds the criterion max", func() {
			err := v.Validate(model.Submission{
				Team:     "Rocket",
				Judge:    "Alice",
				Category: "Best Overall",
				Scores:   map[string]float64{"Innovation": 11},
			})

			Convey("Then it should fail naming the bound", func() {
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "scores")
				So(verr.Reason, ShouldContainSubstring, "exceeds max 10")
			})
		})

		Convey("When a score is negative", func() {
			err := v.Validate(model.Submission{
				Team:     "Rocket",
				Judge:    "Alice",
				Category: "Best Overall",
				Scores:   map[string]float64{"Innovation": -1},
			})

			Convey("Then it should fail naming the bound", func() {
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "scores")
				So(verr.Reason, ShouldContainSubstring, "below 0")
			})
		})

		Convey("When a criterion does not belong to the category", func() {
			err := v.Validate(model.Submission{
				Team:     "Rocket",
				Judge:    "Alice",
				Category: "Best Design",
				Scores:   map[string]float64{"Innovation": 3},
			})

			Convey("Then it should fail naming the criterion", func() {
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "scores")
				So(verr.Reason, ShouldContainSubstring, `"Innovation"`)
			})
		})

		Convey("When the scores map is empty", func() {
			err := v.Validate(model.Submission{
				Team:     "Rocket",
				Judge:    "Alice",
				Category: "Best Overall",
				Scores:   map[string]float64{},
			})

			Convey("Then it should fail", func() {
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "scores")
			})
		})

		Convey("When the notes exceed the configured cap", func() {
			short := scoring.NewValidator(testEvent(), scoring.WithMaxNotesLength(4))
			err := short.Validate(model.Submission{
				Team:     "Rocket",
				Judge:    "Alice",
				Category: "Best Overall",
				Scores:   map[string]float64{"Innovation": 5},
				Notes:    "way too long",
			})

			Convey("Then it should fail naming the notes field", func() {
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "notes")
			})
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given stored records for a team and category", t, func() {
		ev := testEvent()

		Convey("When two of three judges have scored the team", func() {
			records := []model.ScoreRecord{
				record("Rocket", "Alice", "Best Overall", map[string]float64{"Innovation": 8, "Execution": 12}),
				record("Rocket", "Bob", "Best Overall", map[string]float64{"Innovation": 6, "Execution": 10}),
				record("Comet", "Carol", "Best Overall", map[string]float64{"Innovation": 9}),
			}

			summary := scoring.Summarize(ev, records, "Rocket", "Best Overall")

			Convey("Then the average should only cover judges with a record", func() {
				So(summary.Judges, ShouldHaveLength, 2)
				So(summary.Average, ShouldEqual, 18) // (20 + 16) / 2
				So(summary.MaxTotal, ShouldEqual, 25)
				So(summary.Percentage, ShouldEqual, 72)
			})
		})

		Convey("When only one judge has scored the team", func() {
			records := []model.ScoreRecord{
				record("Rocket", "Alice", "Best Design", map[string]float64{"Polish": 4}),
			}

			summary := scoring.Summarize(ev, records, "Rocket", "Best Design")

			Convey("Then the average equals that judge's total, not half of it", func() {
				So(summary.Judges, ShouldHaveLength, 1)
				So(summary.Average, ShouldEqual, 4)
				So(summary.Percentage, ShouldEqual, 80)
			})
		})

		Convey("When no judge has scored the team", func() {
			summary := scoring.Summarize(ev, nil, "Comet", "Best Design")

			Convey("Then the summary should be empty rather than zero-filled", func() {
				So(summary.Judges, ShouldBeEmpty)
				So(summary.Average, ShouldEqual, 0)
				So(summary.Percentage, ShouldEqual, 0)
			})
		})

		Convey("When a record belongs to a judge no longer configured", func() {
			records := []model.ScoreRecord{
				record("Rocket", "Alice", "Best Design", map[string]float64{"Polish": 4}),
				record("Rocket", "Zed", "Best Design", map[string]float64{"Polish": 1}),
			}

			summary := scoring.Summarize(ev, records, "Rocket", "Best Design")

			Convey("Then the orphaned record should be excluded from the average", func() {
				So(summary.Judges, ShouldHaveLength, 1)
				So(summary.Average, ShouldEqual, 4)
			})
		})
	})
}

func TestStandings(t *testing.T) {
	Convey("Given records across teams and categories", t, func() {
		ev := testEvent()
		records := []model.ScoreRecord{
			record("Rocket", "Alice", "Best Overall", map[string]float64{"Innovation": 10, "Execution": 15}), // 100%
			record("Comet", "Alice", "Best Overall", map[string]float64{"Innovation": 5, "Execution": 5}),    // 40%
			record("Comet", "Bob", "Best Design", map[string]float64{"Polish": 5}),                           // 100%
		}

		Convey("When ranking a single category", func() {
			standings := scoring.CategoryStandings(ev, records, "Best Overall")

			Convey("Then teams should be ordered by percentage", func() {
				So(standings, ShouldHaveLength, 2)
				So(standings[0].Rank, ShouldEqual, 1)
				So(standings[0].Team, ShouldEqual, "Rocket")
				So(standings[0].Percentage, ShouldEqual, 100)
				So(standings[1].Team, ShouldEqual, "Comet")
				So(standings[1].Percentage, ShouldEqual, 40)
			})
		})

		Convey("When ranking a category nobody was judged in", func() {
			standings := scoring.CategoryStandings(ev, nil, "Best Design")

			Convey("Then the standings should be empty", func() {
				So(standings, ShouldBeEmpty)
			})
		})

		Convey("When computing overall standings", func() {
			standings := scoring.OverallStandings(ev, records)

			Convey("Then unjudged categories should not drag the average down", func() {
				So(standings, ShouldHaveLength, 2)
				// Rocket: 100% over one category; Comet: (40 + 100) / 2 = 70%.
				So(standings[0].Team, ShouldEqual, "Rocket")
				So(standings[0].Percentage, ShouldEqual, 100)
				So(standings[0].Categories, ShouldEqual, 1)
				So(standings[1].Team, ShouldEqual, "Comet")
				So(standings[1].Percentage, ShouldEqual, 70)
				So(standings[1].Categories, ShouldEqual, 2)
			})
		})
	})
}

func TestProgress(t *testing.T) {
	Convey("Given a mix of live and orphaned records", t, func() {
		ev := testEvent()
		records := []model.ScoreRecord{
			record("Rocket", "Alice", "Best Overall", map[string]float64{"Innovation": 8}),
			record("Rocket", "Bob", "Best Overall", map[string]float64{"Innovation": 6}),
			record("Gone Team", "Alice", "Best Overall", map[string]float64{"Innovation": 6}),
		}

		Convey("When computing progress", func() {
			progress := scoring.Progress(ev, records)

			Convey("Then orphans should be counted separately", func() {
				So(progress.TeamsJudged, ShouldEqual, 1)
				So(progress.TeamsTotal, ShouldEqual, 2)
				So(progress.JudgesActive, ShouldEqual, 2)
				So(progress.JudgesTotal, ShouldEqual, 3)
				So(progress.Submissions, ShouldEqual, 3)
				So(progress.OrphanedRecords, ShouldEqual, 1)
			})
		})

		Convey("When counting orphans directly", func() {
			So(scoring.CountOrphans(ev, records), ShouldEqual, 1)
		})
	})
}
