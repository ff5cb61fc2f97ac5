// Package game contains the domain model of the results hub: the immutable
// game result record, the repository contract, and the statistics aggregation
// engine that turns raw result records into per-player summaries and a
// cross-player leaderboard.
package game

import (
	"time"

	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// Winner symbols as they appear on the wire. The store does not enforce
// membership - whatever string a client submits is persisted verbatim.
const (
	WinnerX    = "X"
	WinnerO    = "O"
	WinnerDraw = "draw"
)

// Game modes observed in practice. The set is open: unknown modes are
// stored and aggregated like any other tag.
const (
	ModeAI  = "ai"
	ModePvP = "pvp"
)

// DefaultPlayerName is assigned when a submission omits the player name.
const DefaultPlayerName = "Player"

// Result is a completed game outcome. Once stored it is never mutated -
// records are only inserted, or bulk-deleted by player name.
type Result struct {
	// ID is an opaque unique identifier assigned by the store at insert time.
	ID string `json:"id"`

	// PlayerName identifies the submitting player. Exact-match identity:
	// "Alice" and "alice" are distinct players.
	PlayerName string `json:"player_name"`

	// GameMode is an open tag ("ai", "pvp", ...).
	GameMode string `json:"game_mode"`

	// Difficulty is present only for games against an AI opponent.
	Difficulty *string `json:"difficulty"`

	// Winner names the symbol that won ("X", "O") or "draw".
	Winner string `json:"winner"`

	// Moves is the sequence of board-cell indices in play order,
	// stored verbatim and never validated for legality.
	Moves []int `json:"moves"`

	// Duration is the game length in seconds.
	Duration int `json:"duration"`

	// Timestamp is assigned by the store at insert time (UTC).
	// Monotonically non-decreasing per insert, not necessarily strictly
	// increasing.
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the fields a client must supply on submission.
// The ID and Timestamp are store-assigned and intentionally not checked.
func (r *Result) Validate() error {
	if r.PlayerName == "" {
		return shared.NewFieldError("player_name", "must not be empty")
	}
	if r.GameMode == "" {
		return shared.NewFieldError("game_mode", "is required")
	}
	if r.Winner == "" {
		return shared.NewFieldError("winner", "is required")
	}
	if r.Moves == nil {
		return shared.NewFieldError("moves", "is required")
	}
	if r.Duration < 0 {
		return shared.NewFieldError("duration", "must not be negative")
	}
	return nil
}

// IsDraw reports whether the game ended without a winner.
func (r *Result) IsDraw() bool {
	return r.Winner == WinnerDraw
}
