// Package postgres implements the PostgreSQL persistence layer for the game
// results hub.
package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE GAME RESULTS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create game_results table
-- Version: 001

CREATE TABLE IF NOT EXISTS game_results (
    id UUID PRIMARY KEY,
    player_name TEXT NOT NULL,
    game_mode TEXT NOT NULL,
    difficulty TEXT,
    winner TEXT NOT NULL,
    moves INTEGER[] NOT NULL DEFAULT '{}',
    duration INTEGER NOT NULL,
    "timestamp" TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_duration CHECK (duration >= 0)
);

-- History queries filter by exact player name, newest first
CREATE INDEX IF NOT EXISTS idx_game_results_player_name ON game_results(player_name);
CREATE INDEX IF NOT EXISTS idx_game_results_player_ts ON game_results(player_name, "timestamp" DESC);

-- Leaderboard aggregation scans the whole table in insertion order
CREATE INDEX IF NOT EXISTS idx_game_results_ts ON game_results("timestamp");
`

const migration001Down = `
DROP INDEX IF EXISTS idx_game_results_ts;
DROP INDEX IF EXISTS idx_game_results_player_ts;
DROP INDEX IF EXISTS idx_game_results_player_name;
DROP TABLE IF EXISTS game_results;
`

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_game_results",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
	}
}
