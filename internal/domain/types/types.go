// Package types contains common read shapes used across the application
package types

// JudgeTotal is one judge's total for a team in a category.
type JudgeTotal struct {
	Judge     string             `json:"judge"`
	Total     float64            `json:"total"`
	Scores    map[string]float64 `json:"scores"`
	UpdatedAt string             `json:"updated_at"`
}

// CategorySummary aggregates all submitted records for a (team, category)
// pair. Judges with no record are excluded from the average, not treated
// as zero.
type CategorySummary struct {
	Team       string       `json:"team"`
	Category   string       `json:"category"`
	Judges     []JudgeTotal `json:"judges"`
	Average    float64      `json:"average"`
	MaxTotal   float64      `json:"max_total"`
	Percentage float64      `json:"percentage"`
}

// Standing is a ranked leaderboard row. Percentage is the ranking key so
// categories with different point totals compare fairly.
type Standing struct {
	Rank       int     `json:"rank"`
	Team       string  `json:"team"`
	Percentage float64 `json:"percentage"`
	Judges     int     `json:"judges,omitempty"`
	Categories int     `json:"categories,omitempty"`
}

// Progress reports how far the judging session has come.
type Progress struct {
	TeamsJudged     int `json:"teams_judged"`
	TeamsTotal      int `json:"teams_total"`
	JudgesActive    int `json:"judges_active"`
	JudgesTotal     int `json:"judges_total"`
	Submissions     int `json:"submissions"`
	OrphanedRecords int `json:"orphaned_records"`
}
