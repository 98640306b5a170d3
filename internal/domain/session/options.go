// Package session tracks live judge sessions behind the passcode gate.
package session

import "time"

// Option applies a configuration option to the in-memory registry.
type Option func(*inMemoryRegistry)

// WithMaxSize caps the number of live sessions kept in memory.
// If maxSize <= 0 the registry is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(r *inMemoryRegistry) {
		r.maxSize = maxSize
	}
}

// WithTTL expires sessions after d. Zero means sessions never expire.
func WithTTL(d time.Duration) Option {
	return func(r *inMemoryRegistry) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *inMemoryRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTokenFunc overrides token generation, for tests.
func WithTokenFunc(token func() string) Option {
	return func(r *inMemoryRegistry) {
		if token != nil {
			r.token = token
		}
	}
}
