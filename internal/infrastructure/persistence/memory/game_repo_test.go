package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tictacplay/game-hub/internal/domain/game"
)

func save(t *testing.T, repo *ResultRepository, playerName, winner string) *game.Result {
	t.Helper()
	stored, err := repo.Save(context.Background(), &game.Result{
		PlayerName: playerName,
		GameMode:   game.ModeAI,
		Winner:     winner,
		Moves:      []int{0, 4, 8},
		Duration:   10,
	})
	require.NoError(t, err)
	return stored
}

func TestSave_AssignsIDAndTimestamp(t *testing.T) {
	repo := NewResultRepository()
	stored := save(t, repo, "Alice", game.WinnerX)

	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.Timestamp.IsZero())
	assert.Equal(t, 1, repo.Len())
}

func TestSave_KeepsPresetIDAndTimestamp(t *testing.T) {
	repo := NewResultRepository()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stored, err := repo.Save(context.Background(), &game.Result{
		ID:         "preset-id",
		PlayerName: "Alice",
		GameMode:   game.ModeAI,
		Winner:     game.WinnerX,
		Moves:      []int{},
		Timestamp:  ts,
	})
	require.NoError(t, err)

	assert.Equal(t, "preset-id", stored.ID)
	assert.True(t, stored.Timestamp.Equal(ts))
}

func TestSave_TimestampsNonDecreasing(t *testing.T) {
	repo := NewResultRepository()

	var prev time.Time
	for i := 0; i < 10; i++ {
		stored := save(t, repo, "Alice", game.WinnerX)
		assert.False(t, stored.Timestamp.Before(prev))
		prev = stored.Timestamp
	}
}

func TestListByPlayer_MostRecentFirst(t *testing.T) {
	repo := NewResultRepository()
	first := save(t, repo, "Alice", game.WinnerX)
	save(t, repo, "Bob", game.WinnerO)
	last := save(t, repo, "Alice", game.WinnerDraw)

	records, err := repo.ListByPlayer(context.Background(), "Alice", 20)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, last.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestListByPlayer_LimitOne(t *testing.T) {
	repo := NewResultRepository()
	save(t, repo, "Alice", game.WinnerX)
	last := save(t, repo, "Alice", game.WinnerO)

	records, err := repo.ListByPlayer(context.Background(), "Alice", 1)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, last.ID, records[0].ID)
}

func TestListByPlayer_ExactNameMatch(t *testing.T) {
	repo := NewResultRepository()
	save(t, repo, "Alice", game.WinnerX)

	records, err := repo.ListByPlayer(context.Background(), "alice", 20)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListAllByPlayer_InsertionOrder(t *testing.T) {
	repo := NewResultRepository()
	first := save(t, repo, "Alice", game.WinnerX)
	second := save(t, repo, "Alice", game.WinnerO)

	records, err := repo.ListAllByPlayer(context.Background(), "Alice")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
}

func TestDeleteByPlayer(t *testing.T) {
	repo := NewResultRepository()
	save(t, repo, "Alice", game.WinnerX)
	save(t, repo, "Alice", game.WinnerO)
	save(t, repo, "Bob", game.WinnerX)

	deleted, err := repo.DeleteByPlayer(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	records, err := repo.ListByPlayer(context.Background(), "Alice", 20)
	require.NoError(t, err)
	assert.Empty(t, records)

	// Other players are untouched.
	records, err = repo.ListByPlayer(context.Background(), "Bob", 20)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDeleteByPlayer_NoRecords(t *testing.T) {
	repo := NewResultRepository()

	deleted, err := repo.DeleteByPlayer(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestCanceledContext(t *testing.T) {
	repo := NewResultRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Save(ctx, &game.Result{PlayerName: "Alice", GameMode: game.ModeAI, Winner: game.WinnerX, Moves: []int{}})
	assert.Error(t, err)

	_, err = repo.ListAll(ctx)
	assert.Error(t, err)
}
