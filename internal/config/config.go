// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Default passcode for the access gate. A placeholder, not a security boundary.
const defaultPasscode = "hackathon2025"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// EventConfig is the path to the event configuration YAML
	// (judges, teams, prize categories, criteria).
	EventConfig string `koanf:"event_config"`

	// ScoresFile is the path to the JSON score store, the system of record.
	ScoresFile string `koanf:"scores_file"`

	// Passcode is the shared secret gating the judging UI and API.
	Passcode string `koanf:"passcode"`

	// SaveRetries bounds how many times a failed store save is retried.
	SaveRetries int `koanf:"save_retries"`

	// SaveRetryDelayMS is the fixed delay between save retries.
	SaveRetryDelayMS int `koanf:"save_retry_delay_ms"`

	// SessionLimit caps the number of live judge sessions kept in memory.
	SessionLimit int `koanf:"session_limit"`

	// MaxNotesLength caps the free-form notes accepted on a submission.
	MaxNotesLength int `koanf:"max_notes_length"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8090",
		EventConfig:      "event.yaml",
		ScoresFile:       "scores.json",
		Passcode:         defaultPasscode,
		SaveRetries:      3,
		SaveRetryDelayMS: 100,
		SessionLimit:     1_000,
		MaxNotesLength:   2_000,
	}
}
