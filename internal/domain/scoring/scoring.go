// Package scoring validates judge submissions against the event
// configuration and aggregates stored records into summaries, standings
// and progress reports. Everything here is pure: no I/O, no clocks.
package scoring

import (
	"sort"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/internal/event"
)

// Default validation configuration constants.
const (
	defaultMaxNotesLength = 2_000
)

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithMaxNotesLength caps the free-form notes accepted on a submission.
func WithMaxNotesLength(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxNotesLength = n
		}
	}
}

// Validator checks submissions against a loaded event configuration.
type Validator struct {
	ev             *event.Event
	maxNotesLength int
}

// NewValidator creates a validator bound to the event configuration.
func NewValidator(ev *event.Event, opts ...Option) *Validator {
	v := &Validator{
		ev:             ev,
		maxNotesLength: defaultMaxNotesLength,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate rejects any submission referencing a team, judge, category or
// criterion outside the event configuration, or a score outside
// [0, max_score]. The returned error is always a *ValidationError naming
// the offending field.
func (v *Validator) Validate(sub model.Submission) error {
	if sub.Team == "" {
		return newValidationError("team", "must not be empty")
	}
	if !v.ev.HasTeam(sub.Team) {
		return newValidationErrorf("team", "%q is not a configured team", sub.Team)
	}
	if sub.Judge == "" {
		return newValidationError("judge", "must not be empty")
	}
	if !v.ev.HasJudge(sub.Judge) {
		return newValidationErrorf("judge", "%q is not a configured judge", sub.Judge)
	}
	if sub.Category == "" {
		return newValidationError("category", "must not be empty")
	}
	cat, ok := v.ev.Category(sub.Category)
	if !ok {
		return newValidationErrorf("category", "%q is not a configured category", sub.Category)
	}
	if len(sub.Scores) == 0 {
		return newValidationError("scores", "must not be empty")
	}
	for name, score := range sub.Scores {
		crit, ok := cat.Criterion(name)
		if !ok {
			return newValidationErrorf("scores", "criterion %q is not configured for category %q", name, sub.Category)
		}
		if score < 0 {
			return newValidationErrorf("scores", "criterion %q: score %g is below 0", name, score)
		}
		if score > crit.MaxScore {
			return newValidationErrorf("scores", "criterion %q: score %g exceeds max %g", name, score, crit.MaxScore)
		}
	}
	if len(sub.Notes) > v.maxNotesLength {
		return newValidationErrorf("notes", "longer than %d characters", v.maxNotesLength)
	}
	return nil
}

// Summarize aggregates all records for a (team, category) pair: each
// judge's per-criterion total plus the average across judges who have
// submitted. Judges without a record are excluded, not zero-counted.
func Summarize(ev *event.Event, records []model.ScoreRecord, team, category string) types.CategorySummary {
	cat, _ := ev.Category(category)
	summary := types.CategorySummary{
		Team:     team,
		Category: category,
		Judges:   []types.JudgeTotal{},
		MaxTotal: cat.MaxTotal(),
	}

	var sum float64
	for _, rec := range records {
		if rec.Team != team || rec.Category != category {
			continue
		}
		if !ev.HasJudge(rec.Judge) {
			// Orphaned record after a config edit; kept on disk, excluded here.
			continue
		}
		total := rec.Total()
		sum += total
		summary.Judges = append(summary.Judges, types.JudgeTotal{
			Judge:     rec.Judge,
			Total:     total,
			Scores:    rec.Scores,
			UpdatedAt: rec.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if n := len(summary.Judges); n > 0 {
		summary.Average = sum / float64(n)
		if summary.MaxTotal > 0 {
			summary.Percentage = summary.Average / summary.MaxTotal * 100
		}
	}
	return summary
}

// CategoryStandings ranks all teams with at least one record in the
// category, by percentage of the category maximum. Teams never judged in
// the category are omitted.
func CategoryStandings(ev *event.Event, records []model.ScoreRecord, category string) []types.Standing {
	standings := make([]types.Standing, 0, len(ev.Teams))
	for _, team := range ev.Teams {
		summary := Summarize(ev, records, team, category)
		if len(summary.Judges) == 0 {
			continue
		}
		standings = append(standings, types.Standing{
			Team:       team,
			Percentage: summary.Percentage,
			Judges:     len(summary.Judges),
		})
	}
	rank(standings)
	return standings
}

// OverallStandings ranks teams by the mean of their category percentages,
// counting only categories where at least one judge has scored the team.
func OverallStandings(ev *event.Event, records []model.ScoreRecord) []types.Standing {
	standings := make([]types.Standing, 0, len(ev.Teams))
	for _, team := range ev.Teams {
		var sum float64
		var judged int
		for _, cat := range ev.Categories {
			summary := Summarize(ev, records, team, cat.Name)
			if len(summary.Judges) == 0 {
				continue
			}
			sum += summary.Percentage
			judged++
		}
		if judged == 0 {
			continue
		}
		standings = append(standings, types.Standing{
			Team:       team,
			Percentage: sum / float64(judged),
			Categories: judged,
		})
	}
	rank(standings)
	return standings
}

// Progress reports teams judged, judges active, submission count and
// how many records no longer match the configuration.
func Progress(ev *event.Event, records []model.ScoreRecord) types.Progress {
	teams := make(map[string]struct{})
	judges := make(map[string]struct{})
	orphans := 0
	for _, rec := range records {
		if orphaned(ev, rec) {
			orphans++
			continue
		}
		teams[rec.Team] = struct{}{}
		judges[rec.Judge] = struct{}{}
	}
	return types.Progress{
		TeamsJudged:     len(teams),
		TeamsTotal:      len(ev.Teams),
		JudgesActive:    len(judges),
		JudgesTotal:     len(ev.Judges),
		Submissions:     len(records),
		OrphanedRecords: orphans,
	}
}

// CountOrphans returns how many records reference a team, judge or
// category that is no longer configured. Orphans are retained in the
// store, never dropped.
func CountOrphans(ev *event.Event, records []model.ScoreRecord) int {
	n := 0
	for _, rec := range records {
		if orphaned(ev, rec) {
			n++
		}
	}
	return n
}

func orphaned(ev *event.Event, rec model.ScoreRecord) bool {
	if !ev.HasTeam(rec.Team) || !ev.HasJudge(rec.Judge) {
		return true
	}
	_, ok := ev.Category(rec.Category)
	return !ok
}

// rank sorts by percentage descending (team name as tiebreaker for a
// stable order) and assigns 1-based ranks.
func rank(standings []types.Standing) {
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Percentage != standings[j].Percentage {
			return standings[i].Percentage > standings[j].Percentage
		}
		return standings[i].Team < standings[j].Team
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
}
