// Package memory implements an in-memory game.Repository. It backs the
// development mode (no DATABASE_URL configured) and the test suites, keeping
// the same observable semantics as the PostgreSQL store: insertion-ordered
// records, store-assigned IDs and timestamps, most-recent-first history.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tictacplay/game-hub/internal/domain/game"
)

// storedResult pairs a record with its insertion sequence so that history
// ordering is deterministic even when two inserts share a timestamp.
type storedResult struct {
	game.Result
	seq int64
}

// ResultRepository is a mutex-guarded in-memory implementation of
// game.Repository.
type ResultRepository struct {
	mu      sync.RWMutex
	records []storedResult
	nextSeq int64
	lastTS  time.Time
}

// NewResultRepository creates an empty in-memory repository.
func NewResultRepository() *ResultRepository {
	return &ResultRepository{}
}

// Save assigns ID and Timestamp if absent and appends the record.
// Timestamps are monotonically non-decreasing per insert.
func (r *ResultRepository) Save(ctx context.Context, result *game.Result) (*game.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *result
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Timestamp.IsZero() {
		now := time.Now().UTC()
		if now.Before(r.lastTS) {
			now = r.lastTS
		}
		stored.Timestamp = now
	}
	if stored.Moves == nil {
		stored.Moves = []int{}
	}
	r.lastTS = stored.Timestamp

	r.records = append(r.records, storedResult{Result: stored, seq: r.nextSeq})
	r.nextSeq++

	return &stored, nil
}

// ListByPlayer returns the player's records most recent first, truncated to limit.
func (r *ResultRepository) ListByPlayer(ctx context.Context, playerName string, limit int) ([]game.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]storedResult, 0)
	for _, rec := range r.records {
		if rec.PlayerName == playerName {
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].seq > matched[j].seq
	})

	if limit >= 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	results := make([]game.Result, len(matched))
	for i, rec := range matched {
		results[i] = rec.Result
	}
	return results, nil
}

// ListAllByPlayer returns every record for one player in insertion order.
func (r *ResultRepository) ListAllByPlayer(ctx context.Context, playerName string) ([]game.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]game.Result, 0)
	for _, rec := range r.records {
		if rec.PlayerName == playerName {
			results = append(results, rec.Result)
		}
	}
	return results, nil
}

// ListAll returns the entire collection in insertion order.
func (r *ResultRepository) ListAll(ctx context.Context) ([]game.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]game.Result, len(r.records))
	for i, rec := range r.records {
		results[i] = rec.Result
	}
	return results, nil
}

// DeleteByPlayer removes all records for the player and returns the count removed.
func (r *ResultRepository) DeleteByPlayer(ctx context.Context, playerName string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	var deleted int64
	for _, rec := range r.records {
		if rec.PlayerName == playerName {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept

	return deleted, nil
}

// Len returns the number of stored records.
func (r *ResultRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
