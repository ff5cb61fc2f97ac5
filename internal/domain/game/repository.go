package game

import "context"

// Repository is the contract the record store must satisfy. The store is an
// external collaborator: it only needs insert, filtered reads, and bulk
// delete. All aggregation math lives in this package, not in the store.
type Repository interface {
	// Save assigns ID and Timestamp if absent, persists the record, and
	// returns the stored form. A write the store does not confirm (zero
	// rows affected) is a persistence error, never silently swallowed.
	Save(ctx context.Context, result *Result) (*Result, error)

	// ListByPlayer returns the player's records most recent first,
	// truncated to limit. No records is an empty slice, not an error.
	ListByPlayer(ctx context.Context, playerName string, limit int) ([]Result, error)

	// ListAllByPlayer returns every record for one player in insertion
	// order (ascending timestamp). Feeds per-player stats aggregation.
	ListAllByPlayer(ctx context.Context, playerName string) ([]Result, error)

	// ListAll returns the entire collection in insertion order.
	// Feeds the leaderboard aggregation.
	ListAll(ctx context.Context) ([]Result, error)

	// DeleteByPlayer removes all records for the player and returns the
	// count removed. Zero is a valid count, not an error.
	DeleteByPlayer(ctx context.Context, playerName string) (int64, error)
}
