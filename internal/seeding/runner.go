package seeding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/podium/internal/event"
	"github.com/okian/podium/pkg/logger"
)

// Run executes the complete seeding flow: health check, login, generate,
// submit, then fetch and verify the standings.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting podium score seeding",
		logger.String("baseURL", config.BaseURL),
		logger.Int("workers", config.Workers),
		logger.Float64("fillRate", config.FillRate),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Log in with the shared passcode
	if err := client.login(ctx, config.BaseURL, config.Passcode); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Step 3: Fetch the event configuration
	ev, err := fetchEvent(ctx, config, client)
	if err != nil {
		return fmt.Errorf("event fetch failed: %w", err)
	}

	// Step 4: Generate submissions
	subs := generateSubmissions(ctx, ev, config, stats)
	if len(subs) == 0 {
		return fmt.Errorf("no submissions generated; raise the fill rate")
	}

	// Step 5: Submit concurrently
	if err := submitScores(ctx, config, client, subs, stats); err != nil {
		return fmt.Errorf("score submission failed: %w", err)
	}

	// Step 6: Give the store a moment to settle
	time.Sleep(SettleDelay)

	// Step 7: Fetch overall standings
	standings, err := fetchStandings(ctx, config, client, stats)
	if err != nil {
		return fmt.Errorf("standings retrieval failed: %w", err)
	}

	// Step 8: Verify results
	if err := verifyStandings(ctx, standings, config.Verbose); err != nil {
		return fmt.Errorf("standings verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 is healthy (the endpoint serves Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// fetchEvent retrieves the event configuration from the service.
func fetchEvent(ctx context.Context, config *Config, client *HTTPClient) (*event.Event, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/event")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read event response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("event fetch failed with status: %d", resp.StatusCode)
	}

	var ev event.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}

	logger.Get().Info(ctx, "fetched event configuration", logger.String("title", ev.Title))
	return &ev, nil
}

// fetchStandings retrieves the overall standings.
func fetchStandings(ctx context.Context, config *Config, client *HTTPClient, stats *Stats) ([]Standing, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/standings")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read standings response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("standings fetch failed with status: %d", resp.StatusCode)
	}

	var standings []Standing
	if err := json.Unmarshal(body, &standings); err != nil {
		return nil, fmt.Errorf("failed to parse standings: %w", err)
	}

	stats.StandingsEntries = len(standings)
	return standings, nil
}

// displayFinalStats prints the final seeding statistics.
func displayFinalStats(stats *Stats) {
	var successRate, subsPerSecond float64

	if stats.SubmissionsSubmitted > 0 {
		successRate = float64(stats.SubmissionsOK) / float64(stats.SubmissionsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		subsPerSecond = float64(stats.SubmissionsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("submissionsGenerated", stats.SubmissionsGenerated),
		logger.Int("submissionsSubmitted", stats.SubmissionsSubmitted),
		logger.Int("submissionsOK", stats.SubmissionsOK),
		logger.Int("submissionsFailed", stats.SubmissionsFailed),
		logger.Int("standingsEntries", stats.StandingsEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("submissionsPerSecond", subsPerSecond))
}
