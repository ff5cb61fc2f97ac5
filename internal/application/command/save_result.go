// Package command contains write operations following the CQRS pattern.
// Each command is a self-contained use case with its own request type,
// validation, and handler.
package command

import (
	"context"

	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SAVE RESULT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// SaveResultCommand carries a completed game outcome submitted by a client.
type SaveResultCommand struct {
	// PlayerName defaults to "Player" when omitted.
	PlayerName string `json:"player_name"`

	// GameMode is required ("ai", "pvp", or any other tag).
	GameMode string `json:"game_mode"`

	// Difficulty is optional; only meaningful for AI games.
	Difficulty *string `json:"difficulty"`

	// Winner is required: the symbol that won, or "draw".
	Winner string `json:"winner"`

	// Moves is required (an empty game is a valid, empty sequence).
	Moves []int `json:"moves"`

	// Duration is the game length in seconds, must not be negative.
	Duration int `json:"duration"`
}

// Validate applies defaults and checks the submitted fields. Failures carry
// the offending field name for client-error responses.
func (c *SaveResultCommand) Validate() error {
	if c.PlayerName == "" {
		c.PlayerName = game.DefaultPlayerName
	}
	return c.toResult().Validate()
}

// toResult builds the unstored domain record from the command.
func (c *SaveResultCommand) toResult() *game.Result {
	return &game.Result{
		PlayerName: c.PlayerName,
		GameMode:   c.GameMode,
		Difficulty: c.Difficulty,
		Winner:     c.Winner,
		Moves:      c.Moves,
		Duration:   c.Duration,
	}
}

// SaveResultHandler persists submitted game results.
type SaveResultHandler struct {
	repo game.Repository
}

// NewSaveResultHandler creates a new SaveResultHandler.
func NewSaveResultHandler(repo game.Repository) *SaveResultHandler {
	return &SaveResultHandler{repo: repo}
}

// Handle validates the submission and stores it, returning the stored record
// with its store-assigned ID and timestamp.
func (h *SaveResultHandler) Handle(ctx context.Context, cmd SaveResultCommand) (*game.Result, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("game", "SaveResult", shared.ErrValidation, "invalid game result", err)
	}

	stored, err := h.repo.Save(ctx, cmd.toResult())
	if err != nil {
		return nil, err
	}

	return stored, nil
}
