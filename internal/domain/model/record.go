// Package model contains domain models passed between layers.
package model

import "time"

// Key identifies the single score record one judge holds for one team
// under one prize category. At most one record exists per key; a later
// submission replaces the prior record wholesale.
type Key struct {
	Team     string
	Judge    string
	Category string
}

// Submission is one judge's proposed scores for a (team, category) pair,
// before validation.
type Submission struct {
	Team     string
	Judge    string
	Category string
	Scores   map[string]float64
	Notes    string
}

// Key returns the record key the submission targets.
func (s Submission) Key() Key {
	return Key{Team: s.Team, Judge: s.Judge, Category: s.Category}
}

// ScoreRecord is the stored form of an accepted submission. Fields mirror
// the persisted JSON document, which is the system of record and must stay
// human-readable.
type ScoreRecord struct {
	ID        string             `json:"id"`
	Team      string             `json:"team"`
	Judge     string             `json:"judge"`
	Category  string             `json:"category"`
	Scores    map[string]float64 `json:"scores"`
	Notes     string             `json:"notes,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Key returns the record's composite key.
func (r ScoreRecord) Key() Key {
	return Key{Team: r.Team, Judge: r.Judge, Category: r.Category}
}

// Total sums the per-criterion scores.
func (r ScoreRecord) Total() float64 {
	var total float64
	for _, v := range r.Scores {
		total += v
	}
	return total
}
