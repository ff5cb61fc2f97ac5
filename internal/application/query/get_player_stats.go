package query

import (
	"context"

	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PLAYER STATS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetPlayerStatsQuery requests the aggregate statistics of one player.
type GetPlayerStatsQuery struct {
	// PlayerName is required; exact-match identity.
	PlayerName string
}

// Validate checks the query parameters.
func (q *GetPlayerStatsQuery) Validate() error {
	if q.PlayerName == "" {
		return shared.NewFieldError("player_name", "must not be empty")
	}
	return nil
}

// GetPlayerStatsHandler computes per-player statistics on demand. There is no
// caching: every request fetches the player's records and reduces them.
type GetPlayerStatsHandler struct {
	repo game.Repository
}

// NewGetPlayerStatsHandler creates a new GetPlayerStatsHandler.
func NewGetPlayerStatsHandler(repo game.Repository) *GetPlayerStatsHandler {
	return &GetPlayerStatsHandler{repo: repo}
}

// Handle returns the player's stats summary. A player with no records gets a
// fully-zeroed summary - a new player has stats, not an absence of stats.
func (h *GetPlayerStatsHandler) Handle(ctx context.Context, q GetPlayerStatsQuery) (*game.PlayerStats, error) {
	if err := q.Validate(); err != nil {
		return nil, shared.WrapError("stats", "GetPlayerStats", shared.ErrValidation, "invalid stats request", err)
	}

	records, err := h.repo.ListAllByPlayer(ctx, q.PlayerName)
	if err != nil {
		return nil, err
	}

	stats := game.ComputePlayerStats(q.PlayerName, records)
	return &stats, nil
}
