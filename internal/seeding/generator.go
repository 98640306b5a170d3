package seeding

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/okian/podium/internal/event"
	"github.com/okian/podium/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	scoreStep          = 0.5
	notesDivisor       = 4
)

// Sample notes attached to roughly a quarter of the generated records.
var sampleNotes = []string{
	"strong demo, clear pitch",
	"ambitious scope, rough edges",
	"polished but derivative",
	"great teamwork, solid execution",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateSubmissions creates one submission per (judge, team, category)
// key, thinned by the configured fill rate so standings show teams at
// different stages of being judged.
func generateSubmissions(ctx context.Context, ev *event.Event, config *Config, stats *Stats) []Submission {
	logger.Get().Info(ctx, "generating submissions",
		logger.Int("judges", len(ev.Judges)),
		logger.Int("teams", len(ev.Teams)),
		logger.Int("categories", len(ev.Categories)),
		logger.Float64("fillRate", config.FillRate))

	var subs []Submission
	for _, judge := range ev.Judges {
		for _, team := range ev.Teams {
			for _, cat := range ev.Categories {
				if getRandomFloat() > config.FillRate {
					continue
				}
				subs = append(subs, generateSingleSubmission(judge, team, cat))
			}
		}
	}

	stats.SubmissionsGenerated = len(subs)
	logger.Get().Info(ctx, "generated submissions", logger.Int("count", len(subs)))

	return subs
}

// generateSingleSubmission fills every criterion of the category with a
// random score on a half-point grid.
func generateSingleSubmission(judge, team string, cat event.PrizeCategory) Submission {
	scores := make(map[string]float64, len(cat.Criteria))
	for _, cr := range cat.Criteria {
		raw := getRandomFloat() * cr.MaxScore
		// Snap to half points, the granularity the judging form uses.
		scores[cr.Name] = float64(int(raw/scoreStep)) * scoreStep
	}

	sub := Submission{
		Team:     team,
		Judge:    judge,
		Category: cat.Name,
		Scores:   scores,
	}

	n, _ := rand.Int(rand.Reader, big.NewInt(notesDivisor))
	if n.Int64() == 0 {
		pick, _ := rand.Int(rand.Reader, big.NewInt(int64(len(sampleNotes))))
		sub.Notes = sampleNotes[pick.Int64()]
	}
	return sub
}
