package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// ResultRepository implements game.Repository using PostgreSQL.
type ResultRepository struct {
	conn *Connection
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(conn *Connection) *ResultRepository {
	return &ResultRepository{
		conn: conn,
	}
}

const resultColumns = `id, player_name, game_mode, difficulty, winner, moves, duration, "timestamp"`

// Save assigns ID and Timestamp if absent and inserts the record. A write
// the database does not confirm is surfaced as a persistence error.
func (r *ResultRepository) Save(ctx context.Context, result *game.Result) (*game.Result, error) {
	stored := *result
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}
	if stored.Moves == nil {
		stored.Moves = []int{}
	}

	tag, err := r.conn.Exec(ctx, `
		INSERT INTO game_results (id, player_name, game_mode, difficulty, winner, moves, duration, "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, stored.ID, stored.PlayerName, stored.GameMode, stored.Difficulty,
		stored.Winner, stored.Moves, stored.Duration, stored.Timestamp)
	if err != nil {
		return nil, shared.WrapError("game", "Save", shared.ErrPersistence, "failed to insert game result", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.NewDomainError("game", "Save", shared.ErrPersistence, "insert affected no rows")
	}

	return &stored, nil
}

// ListByPlayer returns the player's records most recent first, truncated to limit.
func (r *ResultRepository) ListByPlayer(ctx context.Context, playerName string, limit int) ([]game.Result, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+resultColumns+`
		FROM game_results
		WHERE player_name = $1
		ORDER BY "timestamp" DESC
		LIMIT $2
	`, playerName, limit)
	if err != nil {
		return nil, shared.WrapError("game", "ListByPlayer", shared.ErrPersistence, "failed to query game results", err)
	}
	defer rows.Close()

	return scanResults(rows, "ListByPlayer")
}

// ListAllByPlayer returns every record for one player in insertion order.
func (r *ResultRepository) ListAllByPlayer(ctx context.Context, playerName string) ([]game.Result, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+resultColumns+`
		FROM game_results
		WHERE player_name = $1
		ORDER BY "timestamp" ASC
	`, playerName)
	if err != nil {
		return nil, shared.WrapError("game", "ListAllByPlayer", shared.ErrPersistence, "failed to query game results", err)
	}
	defer rows.Close()

	return scanResults(rows, "ListAllByPlayer")
}

// ListAll returns the entire collection in insertion order.
func (r *ResultRepository) ListAll(ctx context.Context) ([]game.Result, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+resultColumns+`
		FROM game_results
		ORDER BY "timestamp" ASC
	`)
	if err != nil {
		return nil, shared.WrapError("game", "ListAll", shared.ErrPersistence, "failed to query game results", err)
	}
	defer rows.Close()

	return scanResults(rows, "ListAll")
}

// DeleteByPlayer removes all records for the player and returns the count removed.
func (r *ResultRepository) DeleteByPlayer(ctx context.Context, playerName string) (int64, error) {
	tag, err := r.conn.Exec(ctx, `
		DELETE FROM game_results WHERE player_name = $1
	`, playerName)
	if err != nil {
		return 0, shared.WrapError("game", "DeleteByPlayer", shared.ErrPersistence, "failed to delete game results", err)
	}

	return tag.RowsAffected(), nil
}

// scanResults reads all rows into result records.
func scanResults(rows pgx.Rows, op string) ([]game.Result, error) {
	results := make([]game.Result, 0)
	for rows.Next() {
		var res game.Result
		if err := rows.Scan(
			&res.ID,
			&res.PlayerName,
			&res.GameMode,
			&res.Difficulty,
			&res.Winner,
			&res.Moves,
			&res.Duration,
			&res.Timestamp,
		); err != nil {
			return nil, shared.WrapError("game", op, shared.ErrPersistence, "failed to scan game result row", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("game", op, shared.ErrPersistence, "failed to read game result rows", err)
	}

	return results, nil
}
