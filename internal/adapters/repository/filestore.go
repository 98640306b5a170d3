package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/metrics"
)

// Default persistence configuration constants.
const (
	defaultSaveRetries = 3
	defaultRetryDelay  = 100 * time.Millisecond
	storeFilePerm      = 0o644
)

// storeDocument is the on-disk shape. Records are serialized as an
// ordered list so the file stays human-readable and diff-friendly; it is
// the system of record.
type storeDocument struct {
	Records []model.ScoreRecord `json:"records"`
}

// FileStore implements Store on top of a single JSON file held fully in
// memory. A mutex serializes all mutations (the single-writer discipline)
// and saves write to a temporary file in the target directory before an
// atomic rename, so a crash mid-write cannot truncate scored data.
type FileStore struct {
	mu      sync.RWMutex
	saveMu  sync.Mutex
	path    string
	records map[model.Key]model.ScoreRecord

	saveRetries int
	retryDelay  time.Duration
	now         func() time.Time
	newID       func() string
}

// NewFileStore opens the store at path. A missing file is a first run
// and yields an empty store, not an error; an unreadable or malformed
// file wraps ErrCorruptStore.
func NewFileStore(_ context.Context, path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:        path,
		records:     make(map[model.Key]model.ScoreRecord),
		saveRetries: defaultSaveRetries,
		retryDelay:  defaultRetryDelay,
		now:         time.Now,
		newID:       uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		metrics.RecordStoreLoadError()
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, path, err)
	}

	var doc storeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		metrics.RecordStoreLoadError()
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, path, err)
	}
	for _, rec := range doc.Records {
		s.records[rec.Key()] = rec
	}
	metrics.UpdateRecordsTotal(len(s.records))

	return s, nil
}

// Record returns the record for the key, or ErrNotFound.
func (s *FileStore) Record(_ context.Context, team, judge, category string) (model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[model.Key{Team: team, Judge: judge, Category: category}]
	if !ok {
		return model.ScoreRecord{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// Upsert inserts or replaces the record for sub's key. Replacement is
// wholesale: criteria present in the old record but absent from sub
// disappear, per the one-record-per-key invariant.
func (s *FileStore) Upsert(_ context.Context, sub model.Submission) (model.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := model.ScoreRecord{
		ID:        s.newID(),
		Team:      sub.Team,
		Judge:     sub.Judge,
		Category:  sub.Category,
		Scores:    cloneScores(sub.Scores),
		Notes:     sub.Notes,
		UpdatedAt: s.now(),
	}
	s.records[rec.Key()] = rec
	metrics.UpdateRecordsTotal(len(s.records))

	return cloneRecord(rec), nil
}

// Records returns a snapshot sorted by (team, judge, category), matching
// the on-disk order.
func (s *FileStore) Records(_ context.Context) []model.ScoreRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

// Count returns the number of records held.
func (s *FileStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Save persists the entire store, retrying transient failures a bounded
// number of times. The in-memory state is never touched, so a failed
// save loses nothing already scored.
func (s *FileStore) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	doc := storeDocument{Records: s.snapshot()}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		metrics.RecordStoreSaveError()
		return fmt.Errorf("%w: %w", ErrSaveStore, err)
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= s.saveRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordStoreSaveRetry()
			select {
			case <-ctx.Done():
				metrics.RecordStoreSaveError()
				return fmt.Errorf("%w: %w", ErrSaveStore, ctx.Err())
			case <-time.After(s.retryDelay):
			}
		}
		if lastErr = s.writeAtomic(data); lastErr == nil {
			metrics.RecordStoreSaveDuration(float64(time.Since(start).Milliseconds()))
			return nil
		}
	}
	metrics.RecordStoreSaveError()
	return fmt.Errorf("%w: %s: %w", ErrSaveStore, s.path, lastErr)
}

// writeAtomic writes data to a temp file in the target directory, syncs
// it, then renames over the target.
func (s *FileStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, storeFilePerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// snapshot copies all records sorted by (team, judge, category).
// Must be called with at least s.mu.RLock() held.
func (s *FileStore) snapshot() []model.ScoreRecord {
	records := make([]model.ScoreRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, cloneRecord(rec))
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		if a.Judge != b.Judge {
			return a.Judge < b.Judge
		}
		return a.Category < b.Category
	})
	return records
}

func cloneRecord(rec model.ScoreRecord) model.ScoreRecord {
	rec.Scores = cloneScores(rec.Scores)
	return rec
}

func cloneScores(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v
	}
	return out
}
