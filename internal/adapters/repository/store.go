// Package repository defines the score store interface and errors.
package repository

import (
	"context"

	"github.com/okian/podium/internal/domain/model"
)

// Store provides read/write access to the score records. At most one
// record exists per (team, judge, category) key; Upsert replaces any
// prior record wholesale. All mutations serialize through a single
// writer so concurrent submissions to distinct keys cannot lose each
// other's updates.
type Store interface {
	// Record returns the record for the key, or ErrNotFound.
	Record(ctx context.Context, team, judge, category string) (model.ScoreRecord, error)

	// Upsert inserts or replaces the record for sub's key, stamping the
	// current time and a fresh record ID. The caller validates first;
	// the store only enforces the one-record-per-key invariant.
	Upsert(ctx context.Context, sub model.Submission) (model.ScoreRecord, error)

	// Records returns a snapshot of all records in a stable order.
	Records(ctx context.Context) []model.ScoreRecord

	// Count returns the number of records held.
	Count(ctx context.Context) int

	// Save persists the entire store to disk atomically. On failure the
	// in-memory state is preserved and the error surfaced so the caller
	// can retry.
	Save(ctx context.Context) error
}
