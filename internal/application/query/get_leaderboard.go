package query

import (
	"context"

	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetLeaderboardQuery requests the cross-player ranking.
type GetLeaderboardQuery struct {
	// Limit is the maximum number of entries (default 10).
	Limit int
}

// Validate rejects malformed parameters. The default limit is applied by the
// aggregation engine.
func (q *GetLeaderboardQuery) Validate() error {
	if q.Limit < 0 {
		return shared.NewDomainError("leaderboard", "GetLeaderboard", shared.ErrInvalidArgument, "limit cannot be negative")
	}
	return nil
}

// GetLeaderboardHandler ranks all players on demand. Like player stats, the
// ranking is recomputed from the store on every request; a leaderboard read
// racing an in-flight insert may or may not reflect it.
type GetLeaderboardHandler struct {
	repo game.Repository
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler.
func NewGetLeaderboardHandler(repo game.Repository) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{repo: repo}
}

// Handle returns qualified players ranked by win rate. No qualifying player
// yields an empty list, not an error.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) ([]game.PlayerStats, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	records, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return game.ComputeLeaderboard(records, q.Limit)
}
