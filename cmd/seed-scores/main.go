package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/podium/internal/seeding"
)

// Default configuration constants.
const (
	defaultWorkers     = 4
	defaultFillRate    = 0.8
	defaultTimeout     = 10 * time.Second
	defaultSeedTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8090", "Base URL of the service")
		passcode = flag.String("passcode", "hackathon2025", "Shared judge passcode")
		workers  = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		fillRate = flag.Float64("fill", defaultFillRate, "Fraction of (judge, team, category) keys to score")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for seeding output (default: seed_log_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seeding.ShowHelp()
		return
	}

	// Setup logging
	if err := seeding.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSeedTimeout)
	defer cancel()

	// Create seeding configuration
	config := &seeding.Config{
		BaseURL:  *baseURL,
		Passcode: *passcode,
		Workers:  *workers,
		FillRate: *fillRate,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	// Run the seeding
	if err := seeding.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
