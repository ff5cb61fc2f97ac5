package game

import (
	"math"
	"sort"

	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PLAYER STATS
// ══════════════════════════════════════════════════════════════════════════════

// Leaderboard defaults and qualification rules.
const (
	// DefaultLeaderboardLimit is used when the caller does not supply a limit.
	DefaultLeaderboardLimit = 10

	// QualificationThreshold is the minimum number of games a player needs
	// to appear on the leaderboard.
	QualificationThreshold = 3
)

// PlayerStats is a pure projection over a player's result records. It is
// recomputed on every request and never stored.
type PlayerStats struct {
	PlayerName string `json:"player_name"`
	TotalGames int    `json:"total_games"`

	// Wins, Losses and Draws count the literal winner symbol on the record
	// ("X" counts as a win, "O" as a loss), not which side the player
	// actually played. The submitting client always plays X.
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`

	// WinRate is wins/total*100 rounded to one decimal; 0.0 with no games.
	WinRate float64 `json:"win_rate"`

	// FavoriteMode is the most frequent game mode, "ai" with no games.
	FavoriteMode string `json:"favorite_mode"`

	// AverageGameDuration is mean seconds per game rounded to one decimal.
	AverageGameDuration float64 `json:"average_game_duration"`

	// TotalPlayTime is the unrounded sum of durations in seconds.
	TotalPlayTime int `json:"total_play_time"`
}

// ComputePlayerStats reduces one player's records (in insertion order) into a
// stats summary. Zero records is a valid input: a new player has stats, not
// an absence of stats - every numeric field is zero and the favorite mode
// defaults to "ai".
func ComputePlayerStats(playerName string, records []Result) PlayerStats {
	stats := PlayerStats{
		PlayerName:   playerName,
		FavoriteMode: ModeAI,
	}

	if len(records) == 0 {
		return stats
	}

	for _, r := range records {
		switch r.Winner {
		case WinnerX:
			stats.Wins++
		case WinnerO:
			stats.Losses++
		case WinnerDraw:
			stats.Draws++
		}
		stats.TotalPlayTime += r.Duration
	}

	stats.TotalGames = len(records)
	stats.WinRate = round1(float64(stats.Wins) / float64(stats.TotalGames) * 100)
	stats.AverageGameDuration = round1(float64(stats.TotalPlayTime) / float64(stats.TotalGames))
	stats.FavoriteMode = favoriteMode(records)

	return stats
}

// favoriteMode returns the most frequent game mode among the records.
// Ties are broken by the first-encountered maximum: modes are considered in
// the order they first appear in the records, and a later mode replaces the
// current candidate only with a strictly greater count.
func favoriteMode(records []Result) string {
	if len(records) == 0 {
		return ModeAI
	}

	counts := make(map[string]int, 4)
	order := make([]string, 0, 4)
	for _, r := range records {
		if _, seen := counts[r.GameMode]; !seen {
			order = append(order, r.GameMode)
		}
		counts[r.GameMode]++
	}

	favorite := order[0]
	for _, mode := range order[1:] {
		if counts[mode] > counts[favorite] {
			favorite = mode
		}
	}
	return favorite
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD
// ══════════════════════════════════════════════════════════════════════════════

// ComputeLeaderboard groups the entire collection by player name, computes the
// same per-player aggregates as ComputePlayerStats, drops players below the
// qualification threshold, and returns the top entries.
//
// Sort order: win rate descending, then total games descending, then player
// name ascending as a deterministic final key. A limit of zero means
// DefaultLeaderboardLimit; a negative limit is an invalid argument. No
// qualifying players yields an empty slice, not an error.
func ComputeLeaderboard(records []Result, limit int) ([]PlayerStats, error) {
	if limit < 0 {
		return nil, shared.NewDomainError("leaderboard", "Compute", shared.ErrInvalidArgument, "limit cannot be negative")
	}
	if limit == 0 {
		limit = DefaultLeaderboardLimit
	}

	// Group preserving first-seen player order so favorite-mode tie-breaks
	// stay insertion-order-derived within each group.
	groups := make(map[string][]Result)
	names := make([]string, 0)
	for _, r := range records {
		if _, seen := groups[r.PlayerName]; !seen {
			names = append(names, r.PlayerName)
		}
		groups[r.PlayerName] = append(groups[r.PlayerName], r)
	}

	entries := make([]PlayerStats, 0, len(names))
	for _, name := range names {
		stats := ComputePlayerStats(name, groups[name])
		if stats.TotalGames < QualificationThreshold {
			continue
		}
		entries = append(entries, stats)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].WinRate != entries[j].WinRate {
			return entries[i].WinRate > entries[j].WinRate
		}
		if entries[i].TotalGames != entries[j].TotalGames {
			return entries[i].TotalGames > entries[j].TotalGames
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
