package command

import (
	"context"

	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLEAR HISTORY COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// ClearHistoryCommand removes every stored result for one player.
type ClearHistoryCommand struct {
	// PlayerName is required; exact-match identity.
	PlayerName string
}

// Validate checks the command parameters.
func (c *ClearHistoryCommand) Validate() error {
	if c.PlayerName == "" {
		return shared.NewFieldError("player_name", "must not be empty")
	}
	return nil
}

// ClearHistoryHandler bulk-deletes a player's game history.
type ClearHistoryHandler struct {
	repo game.Repository
}

// NewClearHistoryHandler creates a new ClearHistoryHandler.
func NewClearHistoryHandler(repo game.Repository) *ClearHistoryHandler {
	return &ClearHistoryHandler{repo: repo}
}

// Handle deletes all records for the player and returns the count removed.
// A player with no history yields zero, not an error.
func (h *ClearHistoryHandler) Handle(ctx context.Context, cmd ClearHistoryCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, shared.WrapError("game", "ClearHistory", shared.ErrValidation, "invalid clear request", err)
	}

	return h.repo.DeleteByPlayer(ctx, cmd.PlayerName)
}
