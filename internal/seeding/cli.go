package seeding

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/podium/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seed-scores tool.
func ShowHelp() {
	os.Stdout.WriteString(`Podium Score Seeding Tool
=========================

Fills a running podium instance with randomized judging scores, then
verifies the resulting standings. Useful for demos and load checks.

Usage:
  go run cmd/seed-scores/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8090")
  -passcode string
        Shared judge passcode (default "hackathon2025")
  -workers int
        Number of concurrent workers (default 4)
  -fill float
        Fraction of (judge, team, category) keys to score (default 0.8)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file for seeding output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-scores/main.go

  # Seed every key against a custom instance
  go run cmd/seed-scores/main.go -url http://localhost:8080 -fill 1.0

  # Seed sparsely with verbose output
  go run cmd/seed-scores/main.go -fill 0.3 -verbose
`)
}
