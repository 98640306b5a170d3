package seeding

import "time"

// Config holds configuration for the score seeding run
type Config struct {
	BaseURL  string        // Base URL of the service
	Passcode string        // Shared judge passcode
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	FillRate float64       // Fraction of (judge, team, category) keys to score
	LogFile  string        // Log file for seeding output
	Verbose  bool          // Enable verbose logging
}

// Submission represents one judge's scores to be submitted
type Submission struct {
	Team     string             `json:"team"`
	Judge    string             `json:"judge"`
	Category string             `json:"category"`
	Scores   map[string]float64 `json:"scores"`
	Notes    string             `json:"notes,omitempty"`
}

// Standing represents a leaderboard entry
type Standing struct {
	Rank       int     `json:"rank"`
	Team       string  `json:"team"`
	Percentage float64 `json:"percentage"`
	Judges     int     `json:"judges"`
	Categories int     `json:"categories"`
}

// Stats holds seeding statistics
type Stats struct {
	SubmissionsGenerated int
	SubmissionsSubmitted int
	SubmissionsOK        int
	SubmissionsFailed    int
	StandingsEntries     int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
