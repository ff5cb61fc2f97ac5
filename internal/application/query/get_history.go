// Package query contains read operations following the CQRS pattern.
// Queries never modify state - they only fetch records and reduce them.
// Each query is a self-contained use case with its own request type,
// validation, and handler.
package query

import (
	"context"

	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET HISTORY QUERY
// ══════════════════════════════════════════════════════════════════════════════

// DefaultHistoryLimit is used when the caller does not supply a limit.
const DefaultHistoryLimit = 20

// GetHistoryQuery requests a player's recent games.
type GetHistoryQuery struct {
	// PlayerName defaults to "Player" when omitted.
	PlayerName string

	// Limit is the maximum number of records to return (default 20).
	// There is no enforced upper bound; callers may request arbitrarily
	// large limits.
	Limit int
}

// Validate applies defaults and rejects malformed parameters.
func (q *GetHistoryQuery) Validate() error {
	if q.PlayerName == "" {
		q.PlayerName = game.DefaultPlayerName
	}
	if q.Limit < 0 {
		return shared.NewDomainError("game", "GetHistory", shared.ErrInvalidArgument, "limit cannot be negative")
	}
	if q.Limit == 0 {
		q.Limit = DefaultHistoryLimit
	}
	return nil
}

// GetHistoryHandler serves game history reads.
type GetHistoryHandler struct {
	repo game.Repository
}

// NewGetHistoryHandler creates a new GetHistoryHandler.
func NewGetHistoryHandler(repo game.Repository) *GetHistoryHandler {
	return &GetHistoryHandler{repo: repo}
}

// Handle returns the player's records most recent first. An unknown player
// yields an empty list, not an error.
func (h *GetHistoryHandler) Handle(ctx context.Context, q GetHistoryQuery) ([]game.Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return h.repo.ListByPlayer(ctx, q.PlayerName, q.Limit)
}
