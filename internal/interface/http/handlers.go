package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tictacplay/game-hub/internal/application/command"
	"github.com/tictacplay/game-hub/internal/application/query"
	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleHealth returns the overall health of the service.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	storeStatus := "ok"
	if s.deps.Store != nil {
		if err := s.deps.Store.Ping(r.Context()); err != nil {
			storeStatus = "unreachable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"store":     storeStatus,
		"uptime":    s.Uptime().String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady returns readiness status. The service is ready when the store
// answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store != nil {
		if err := s.deps.Store.Ping(r.Context()); err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, "not_ready", "Store is not reachable", "")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive returns liveness status.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// GAME RESULTS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleAPIRoot handles GET /api/ - a human-readable liveness message kept
// for compatibility with the game client's connectivity check.
func (s *Server) handleAPIRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Tic Tac Toe API is running!",
	})
}

// handleSaveGame handles POST /api/games - submit a completed game result.
func (s *Server) handleSaveGame(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to read request body", "")
		return
	}

	var cmd command.SaveResultCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON", err.Error())
		return
	}

	stored, err := s.deps.SaveResult.Handle(r.Context(), cmd)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// handleGetHistory handles GET /api/games?player_name=...&limit=...
// Records are returned most recent first.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := getQueryParamInt(r, "limit", 0)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_argument", err.Error(), "limit")
		return
	}

	q := query.GetHistoryQuery{
		PlayerName: getQueryParam(r, "player_name", ""),
		Limit:      limit,
	}

	records, err := s.deps.GetHistory.Handle(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Empty history is an empty array on the wire, never null.
	if records == nil {
		records = []game.Result{}
	}

	writeJSON(w, http.StatusOK, records)
}

// handleGetPlayerStats handles GET /api/stats/{player_name}.
func (s *Server) handleGetPlayerStats(w http.ResponseWriter, r *http.Request) {
	q := query.GetPlayerStatsQuery{
		PlayerName: r.PathValue("player_name"),
	}

	stats, err := s.deps.GetPlayerStats.Handle(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handleGetLeaderboard handles GET /api/leaderboard?limit=...
func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := getQueryParamInt(r, "limit", 0)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_argument", err.Error(), "limit")
		return
	}

	board, err := s.deps.GetLeaderboard.Handle(r.Context(), query.GetLeaderboardQuery{Limit: limit})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if board == nil {
		board = []game.PlayerStats{}
	}

	writeJSON(w, http.StatusOK, board)
}

// handleClearHistory handles DELETE /api/games/{player_name}.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	cmd := command.ClearHistoryCommand{
		PlayerName: r.PathValue("player_name"),
	}

	deleted, err := s.deps.ClearHistory.Handle(r.Context(), cmd)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Game history cleared",
		"deleted_count": deleted,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// respondError maps domain errors to HTTP status codes. Validation and
// argument errors are the caller's fault (400); everything else is ours (500).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *shared.ValidationFieldError

	switch {
	case errors.As(err, &fieldErr):
		writeJSONError(w, http.StatusBadRequest, "validation_error", fieldErr.Message, fieldErr.Field)

	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error(), "")

	case shared.IsInvalidArgument(err):
		writeJSONError(w, http.StatusBadRequest, "invalid_argument", err.Error(), "")

	case errors.Is(err, shared.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error(), "")

	default:
		s.logger.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", getRequestID(r.Context())),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "The operation could not be completed", "")
	}
}
