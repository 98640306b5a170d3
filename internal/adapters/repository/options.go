// Package repository defines the score store interface and errors.
package repository

import "time"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithSaveRetries bounds how many times a failed save is retried.
func WithSaveRetries(n int) Option {
	return func(s *FileStore) {
		if n >= 0 {
			s.saveRetries = n
		}
	}
}

// WithRetryDelay sets the fixed delay between save retries.
func WithRetryDelay(d time.Duration) Option {
	return func(s *FileStore) {
		if d > 0 {
			s.retryDelay = d
		}
	}
}

// WithClock overrides the time source used for record timestamps, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc overrides record ID generation, for tests.
func WithIDFunc(id func() string) Option {
	return func(s *FileStore) {
		if id != nil {
			s.newID = id
		}
	}
}
