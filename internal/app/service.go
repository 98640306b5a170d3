// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scoring"
	"github.com/okian/podium/internal/domain/session"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/internal/event"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultEventPath      = "event.yaml"
	defaultScoresPath     = "scores.json"
	defaultPasscode       = "hackathon2025"
	defaultSessionLimit   = 1_000
	defaultMaxNotesLength = 2_000
)

// Service owns the loaded event configuration, the score store and the
// session registry, and implements the operations the HTTP API depends
// on. It is constructed per process; tests construct isolated instances
// with injected stores.
type Service struct {
	mu sync.RWMutex

	// Core components
	ev        *event.Event
	store     repository.Store
	sessions  session.Registry
	validator *scoring.Validator

	// Configuration
	eventPath      string
	scoresPath     string
	passcode       string
	saveRetries    int
	saveRetryDelay time.Duration
	sessionLimit   int
	sessionTTL     time.Duration
	maxNotesLength int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithEventPath sets the event configuration document path.
func WithEventPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.eventPath = path
		}
	}
}

// WithScoresPath sets the score store file path.
func WithScoresPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.scoresPath = path
		}
	}
}

// WithPasscode sets the shared passcode for the access gate.
func WithPasscode(passcode string) Option {
	return func(s *Service) {
		if passcode != "" {
			s.passcode = passcode
		}
	}
}

// WithSaveRetries bounds how many times a failed store save is retried.
func WithSaveRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.saveRetries = n
		}
	}
}

// WithSaveRetryDelay sets the fixed delay between save retries.
func WithSaveRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.saveRetryDelay = d
		}
	}
}

// WithSessionLimit caps the number of live judge sessions.
func WithSessionLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sessionLimit = n
		}
	}
}

// WithSessionTTL expires sessions after d. Zero means no expiry.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sessionTTL = d
		}
	}
}

// WithMaxNotesLength caps the free-form notes accepted on a submission.
func WithMaxNotesLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxNotesLength = n
		}
	}
}

// WithEvent injects an already-loaded event configuration, for tests.
func WithEvent(ev *event.Event) Option {
	return func(s *Service) {
		if ev != nil {
			s.ev = ev
		}
	}
}

// WithStore injects a score store, for tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		eventPath:      defaultEventPath,
		scoresPath:     defaultScoresPath,
		passcode:       defaultPasscode,
		saveRetries:    3,
		saveRetryDelay: 100 * time.Millisecond,
		sessionLimit:   defaultSessionLimit,
		maxNotesLength: defaultMaxNotesLength,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the event configuration and the score store. A missing or
// invalid event document is fatal; a missing scores file is a first run.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting judging service...")

	if s.ev == nil {
		ev, err := event.Load(ctx, s.eventPath)
		if err != nil {
			return fmt.Errorf("event config: %w", err)
		}
		s.ev = ev
	}

	if s.store == nil {
		store, err := repository.NewFileStore(ctx, s.scoresPath,
			repository.WithSaveRetries(s.saveRetries),
			repository.WithRetryDelay(s.saveRetryDelay),
		)
		if err != nil {
			return fmt.Errorf("score store: %w", err)
		}
		s.store = store
	}

	s.sessions = session.NewInMemoryRegistry(
		session.WithMaxSize(s.sessionLimit),
		session.WithTTL(s.sessionTTL),
	)
	s.validator = scoring.NewValidator(s.ev,
		scoring.WithMaxNotesLength(s.maxNotesLength),
	)

	if orphans := scoring.CountOrphans(s.ev, s.store.Records(ctx)); orphans > 0 {
		// Records referencing teams, judges or categories removed from the
		// configuration are retained on disk and excluded from aggregates.
		metrics.UpdateOrphanedRecords(orphans)
		s.logger.Warn(ctx, "score store holds orphaned records",
			logger.Int("orphans", orphans),
		)
	}

	s.started = true
	s.logger.Info(ctx, "judging service started",
		logger.String("event", s.ev.Title),
		logger.Int("judges", len(s.ev.Judges)),
		logger.Int("teams", len(s.ev.Teams)),
		logger.Int("categories", len(s.ev.Categories)),
		logger.Int("records", s.store.Count(ctx)),
	)

	return nil
}

// Stop flushes the store to disk a final time.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	if err := s.store.Save(ctx); err != nil {
		s.logger.Error(ctx, "final score store save failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "judging service stopped")
}

// Login checks the shared passcode and issues a session token.
func (s *Service) Login(ctx context.Context, passcode string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(passcode), []byte(s.passcode)) != 1 {
		metrics.RecordLoginFailure()
		return "", ErrBadPasscode
	}
	token := s.sessions.Issue(ctx)
	metrics.UpdateActiveSessions(int(s.sessions.Size()))
	return token, nil
}

// Authorize reports whether token belongs to a live session.
func (s *Service) Authorize(ctx context.Context, token string) bool {
	return s.sessions.Valid(ctx, token)
}

// Logout revokes a session token.
func (s *Service) Logout(ctx context.Context, token string) {
	s.sessions.Revoke(ctx, token)
	metrics.UpdateActiveSessions(int(s.sessions.Size()))
}

// Event returns the immutable event configuration.
func (s *Service) Event() *event.Event {
	return s.ev
}

// Submit validates one judge's scores, replaces any prior record for the
// same (team, judge, category) key, and persists the whole store. A
// validation failure leaves the store untouched; a save failure keeps
// the record in memory and surfaces the error so the judge can retry.
func (s *Service) Submit(ctx context.Context, sub model.Submission) (model.ScoreRecord, error) {
	if err := s.validator.Validate(sub); err != nil {
		field := "submission"
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			field = verr.Field
		}
		metrics.RecordSubmissionRejected(field)
		s.logger.Debug(ctx, "submission rejected",
			logger.String("team", sub.Team),
			logger.String("judge", sub.Judge),
			logger.String("category", sub.Category),
			logger.Error(err),
		)
		return model.ScoreRecord{}, err
	}

	rec, err := s.store.Upsert(ctx, sub)
	if err != nil {
		return model.ScoreRecord{}, err
	}

	if err := s.store.Save(ctx); err != nil {
		s.logger.Error(ctx, "score store save failed; scores kept in memory",
			logger.String("team", sub.Team),
			logger.String("judge", sub.Judge),
			logger.Error(err),
		)
		return rec, err
	}

	metrics.RecordSubmissionAccepted()
	s.logger.Info(ctx, "scores saved",
		logger.String("team", rec.Team),
		logger.String("judge", rec.Judge),
		logger.String("category", rec.Category),
		logger.Float64("total", rec.Total()),
	)
	return rec, nil
}

// Record returns the stored record for a key, or repository.ErrNotFound.
func (s *Service) Record(ctx context.Context, team, judge, category string) (model.ScoreRecord, error) {
	return s.store.Record(ctx, team, judge, category)
}

// Summary aggregates all records for a (team, category) pair.
func (s *Service) Summary(ctx context.Context, team, category string) (types.CategorySummary, error) {
	if !s.ev.HasTeam(team) {
		return types.CategorySummary{}, fmt.Errorf("%w: %q", ErrUnknownTeam, team)
	}
	if _, ok := s.ev.Category(category); !ok {
		return types.CategorySummary{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return scoring.Summarize(s.ev, s.store.Records(ctx), team, category), nil
}

// Leaderboard ranks teams within one category by percentage of maximum.
func (s *Service) Leaderboard(ctx context.Context, category string) ([]types.Standing, error) {
	if _, ok := s.ev.Category(category); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return scoring.CategoryStandings(s.ev, s.store.Records(ctx), category), nil
}

// Standings ranks teams across all categories they have been judged in.
func (s *Service) Standings(ctx context.Context) ([]types.Standing, error) {
	return scoring.OverallStandings(s.ev, s.store.Records(ctx)), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		ctx := context.Background()
		records := s.store.Records(ctx)
		progress := scoring.Progress(s.ev, records)

		stats["event"] = s.ev.Title
		stats["progress"] = progress
		stats["sessions"] = s.sessions.Size()

		metrics.UpdateRecordsTotal(len(records))
		metrics.UpdateOrphanedRecords(progress.OrphanedRecords)
		metrics.UpdateActiveSessions(int(s.sessions.Size()))
	}

	return stats
}
