package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/domain/shared"
	"github.com/tictacplay/game-hub/internal/infrastructure/persistence/memory"
)

func seed(t *testing.T, repo *memory.ResultRepository, playerName string, winners []string, durations []int) {
	t.Helper()
	for i, w := range winners {
		duration := 0
		if durations != nil {
			duration = durations[i]
		}
		_, err := repo.Save(context.Background(), &game.Result{
			PlayerName: playerName,
			GameMode:   game.ModeAI,
			Winner:     w,
			Moves:      []int{0, 4, 8},
			Duration:   duration,
		})
		require.NoError(t, err)
	}
}

func TestGetHistory_DefaultsAndOrder(t *testing.T) {
	repo := memory.NewResultRepository()
	seed(t, repo, game.DefaultPlayerName, []string{game.WinnerX, game.WinnerO}, nil)
	handler := NewGetHistoryHandler(repo)

	// Empty player name falls back to "Player".
	records, err := handler.Handle(context.Background(), GetHistoryQuery{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Most recent first.
	assert.Equal(t, game.WinnerO, records[0].Winner)
	assert.Equal(t, game.WinnerX, records[1].Winner)
}

func TestGetHistory_SubmitThenListLimitOne(t *testing.T) {
	repo := memory.NewResultRepository()
	handler := NewGetHistoryHandler(repo)

	stored, err := repo.Save(context.Background(), &game.Result{
		PlayerName: "Dana",
		GameMode:   game.ModePvP,
		Winner:     game.WinnerDraw,
		Moves:      []int{4, 0, 8, 2, 6, 1, 7, 5, 3},
		Duration:   90,
	})
	require.NoError(t, err)

	records, err := handler.Handle(context.Background(), GetHistoryQuery{PlayerName: "Dana", Limit: 1})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, stored.ID, records[0].ID)
	assert.Equal(t, stored.Moves, records[0].Moves)
	assert.True(t, records[0].Timestamp.Equal(stored.Timestamp))
}

func TestGetHistory_UnknownPlayerIsEmpty(t *testing.T) {
	repo := memory.NewResultRepository()
	handler := NewGetHistoryHandler(repo)

	records, err := handler.Handle(context.Background(), GetHistoryQuery{PlayerName: "Nobody"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetHistory_NegativeLimit(t *testing.T) {
	repo := memory.NewResultRepository()
	handler := NewGetHistoryHandler(repo)

	_, err := handler.Handle(context.Background(), GetHistoryQuery{PlayerName: "Alice", Limit: -1})
	require.Error(t, err)
	assert.True(t, shared.IsInvalidArgument(err))
}

func TestGetPlayerStats_FiveGameSummary(t *testing.T) {
	repo := memory.NewResultRepository()
	seed(t, repo, "Alice",
		[]string{game.WinnerX, game.WinnerX, game.WinnerO, game.WinnerDraw, game.WinnerX},
		[]int{10, 20, 30, 40, 50})
	handler := NewGetPlayerStatsHandler(repo)

	stats, err := handler.Handle(context.Background(), GetPlayerStatsQuery{PlayerName: "Alice"})
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalGames)
	assert.Equal(t, 3, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 60.0, stats.WinRate)
	assert.Equal(t, 30.0, stats.AverageGameDuration)
	assert.Equal(t, 150, stats.TotalPlayTime)
	assert.Equal(t, game.ModeAI, stats.FavoriteMode)
}

func TestGetPlayerStats_UnknownPlayerZeroed(t *testing.T) {
	repo := memory.NewResultRepository()
	handler := NewGetPlayerStatsHandler(repo)

	stats, err := handler.Handle(context.Background(), GetPlayerStatsQuery{PlayerName: "Ghost"})
	require.NoError(t, err)

	assert.Equal(t, "Ghost", stats.PlayerName)
	assert.Equal(t, 0, stats.TotalGames)
	assert.Equal(t, 0.0, stats.WinRate)
	assert.Equal(t, game.ModeAI, stats.FavoriteMode)
	assert.Equal(t, 0, stats.TotalPlayTime)
}

func TestGetPlayerStats_RequiresPlayerName(t *testing.T) {
	repo := memory.NewResultRepository()
	handler := NewGetPlayerStatsHandler(repo)

	_, err := handler.Handle(context.Background(), GetPlayerStatsQuery{})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestGetLeaderboard_QualificationAndOrder(t *testing.T) {
	repo := memory.NewResultRepository()
	seed(t, repo, "Ace", []string{game.WinnerX, game.WinnerX, game.WinnerX}, nil)
	seed(t, repo, "Mid", []string{game.WinnerX, game.WinnerX, game.WinnerO}, nil)
	seed(t, repo, "Low", []string{game.WinnerX, game.WinnerO, game.WinnerO}, nil)
	seed(t, repo, "Rookie", []string{game.WinnerX, game.WinnerX}, nil)
	handler := NewGetLeaderboardHandler(repo)

	board, err := handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)

	require.Len(t, board, 3)
	assert.Equal(t, "Ace", board[0].PlayerName)
	assert.Equal(t, "Mid", board[1].PlayerName)
	assert.Equal(t, "Low", board[2].PlayerName)
}

func TestGetLeaderboard_EmptyStore(t *testing.T) {
	repo := memory.NewResultRepository()
	handler := NewGetLeaderboardHandler(repo)

	board, err := handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestGetLeaderboard_NegativeLimit(t *testing.T) {
	repo := memory.NewResultRepository()
	handler := NewGetLeaderboardHandler(repo)

	_, err := handler.Handle(context.Background(), GetLeaderboardQuery{Limit: -3})
	require.Error(t, err)
	assert.True(t, shared.IsInvalidArgument(err))
}

func TestClearThenHistoryIsEmpty(t *testing.T) {
	repo := memory.NewResultRepository()
	seed(t, repo, "Alice", []string{game.WinnerX, game.WinnerO, game.WinnerDraw}, nil)
	handler := NewGetHistoryHandler(repo)

	deleted, err := repo.DeleteByPlayer(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	records, err := handler.Handle(context.Background(), GetHistoryQuery{PlayerName: "Alice"})
	require.NoError(t, err)
	assert.Empty(t, records)
}
