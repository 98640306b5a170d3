// Package session tracks live judge sessions behind the passcode gate.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Registry issues and validates opaque session tokens. The gate is a
// shared passcode, so tokens carry no identity; they only mark a browser
// session that has passed the gate.
type Registry interface {
	// Issue creates and records a fresh token.
	Issue(ctx context.Context) string

	// Valid reports whether token is live. Expired tokens are pruned on
	// the way out.
	Valid(ctx context.Context, token string) bool

	// Revoke removes a token, ending the session.
	Revoke(ctx context.Context, token string)

	Size() int64
}

// inMemoryRegistry implements Registry with a bounded in-memory map.
// When the bound is reached the oldest session is evicted, so a stuck
// kiosk cannot grow the registry without limit.
type inMemoryRegistry struct {
	mu      sync.Mutex
	issued  map[string]time.Time
	maxSize int
	ttl     time.Duration // 0 = sessions never expire
	size    atomic.Int64
	now     func() time.Time
	token   func() string
}

// NewInMemoryRegistry creates a new in-memory registry with configuration options.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{
		maxSize: 1_000,
		now:     time.Now,
		token:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.issued = make(map[string]time.Time)

	return r
}

func (r *inMemoryRegistry) Issue(_ context.Context) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSize > 0 && len(r.issued) >= r.maxSize {
		r.evictOldest()
	}

	token := r.token()
	r.issued[token] = r.now()
	r.size.Store(int64(len(r.issued)))
	return token
}

func (r *inMemoryRegistry) Valid(_ context.Context, token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	issuedAt, ok := r.issued[token]
	if !ok {
		return false
	}
	if r.ttl > 0 && r.now().Sub(issuedAt) > r.ttl {
		delete(r.issued, token)
		r.size.Store(int64(len(r.issued)))
		return false
	}
	return true
}

func (r *inMemoryRegistry) Revoke(_ context.Context, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.issued, token)
	r.size.Store(int64(len(r.issued)))
}

// evictOldest drops the session with the earliest issue time.
// Must be called with r.mu held.
func (r *inMemoryRegistry) evictOldest() {
	var oldestToken string
	var oldestAt time.Time
	for token, at := range r.issued {
		if oldestToken == "" || at.Before(oldestAt) {
			oldestToken = token
			oldestAt = at
		}
	}
	if oldestToken != "" {
		delete(r.issued, oldestToken)
	}
}

// Size returns the current number of live sessions.
func (r *inMemoryRegistry) Size() int64 {
	return r.size.Load()
}
