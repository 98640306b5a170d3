package seeding

import (
	"context"
	"fmt"

	"github.com/okian/podium/pkg/logger"
)

// verifyStandings checks the overall standings are internally consistent.
func verifyStandings(ctx context.Context, standings []Standing, verbose bool) error {
	logger.Get().Info(ctx, "verifying standings")

	if len(standings) == 0 {
		return fmt.Errorf("no standings to verify")
	}

	// Ranks must be sequential starting at 1.
	for i, s := range standings {
		if s.Rank != i+1 {
			return fmt.Errorf("standings rank gap: entry %d has rank %d", i, s.Rank)
		}
	}

	// Percentages must be non-increasing down the table.
	for i := 1; i < len(standings); i++ {
		if standings[i].Percentage > standings[i-1].Percentage {
			return fmt.Errorf("standings not sorted: %s (%.1f%%) above %s (%.1f%%)",
				standings[i-1].Team, standings[i-1].Percentage,
				standings[i].Team, standings[i].Percentage)
		}
	}

	displayTopTeams(ctx, standings, verbose)

	logger.Get().Info(ctx, "standings verification completed")
	return nil
}

// displayTopTeams logs the leading teams.
func displayTopTeams(ctx context.Context, standings []Standing, verbose bool) {
	topN := 10
	if len(standings) < topN {
		topN = len(standings)
	}

	for i := 0; i < topN; i++ {
		s := standings[i]
		logger.Get().Info(ctx, "standing",
			logger.Int("rank", s.Rank),
			logger.String("team", s.Team),
			logger.Float64("percentage", s.Percentage),
			logger.Int("judges", s.Judges),
			logger.Int("categories", s.Categories))
	}

	if verbose && len(standings) > 0 {
		avg := 0.0
		for _, s := range standings {
			avg += s.Percentage
		}
		avg /= float64(len(standings))

		logger.Get().Info(ctx, "standings statistics",
			logger.Float64("average", avg),
			logger.Float64("best", standings[0].Percentage),
			logger.Float64("worst", standings[len(standings)-1].Percentage))
	}
}
