package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/yourusername/race-night/internal/game"
	"github.com/yourusername/race-night/internal/models"
)

const defaultHistoryLimit = 50

type createGameRequest struct {
	Settings game.Settings `json:"settings"`
}

type gameResponse struct {
	ID     uuid.UUID   `json:"id"`
	Status string      `json:"status"`
	State  *game.State `json:"state"`
}

type submitTurnRequest struct {
	PlayerID uuid.UUID       `json:"playerId"`
	LapTimes []game.LapEntry `json:"lapTimes"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	record, state, err := s.games.CreateGame(r.Context(), req.Settings)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, gameResponse{ID: record.ID, Status: record.Status, State: state})
}

func (s *Server) handleActiveGame(w http.ResponseWriter, r *http.Request) {
	record, state, err := s.games.ActiveGame(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, gameResponse{ID: record.ID, Status: record.Status, State: state})
}

func (s *Server) handleGameHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	games, err := s.games.History(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if games == nil {
		games = []*models.Game{}
	}
	s.writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.games.Leaderboard(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if board == nil {
		board = []game.LapLogEntry{}
	}
	s.writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleCircuitStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.games.CircuitStandings(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if standings == nil {
		standings = []game.PlayerScore{}
	}
	s.writeJSON(w, http.StatusOK, standings)
}

func (s *Server) handleSubmitTurn(w http.ResponseWriter, r *http.Request) {
	var req submitTurnRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	state, err := s.games.SubmitTurn(r.Context(), req.PlayerID, req.LapTimes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleAdvanceCircuit(w http.ResponseWriter, r *http.Request) {
	state, err := s.games.AdvanceCircuit(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	state, err := s.games.EndGame(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleCheckRecords(w http.ResponseWriter, r *http.Request) {
	circuitID, err := uuid.Parse(r.URL.Query().Get("circuitId"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: models.ErrInvalidID.Error()})
		return
	}

	update, err := s.games.CheckCircuitRecords(r.Context(), circuitID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if update == nil {
		s.writeJSON(w, http.StatusOK, map[string]bool{"recordBroken": false})
		return
	}
	s.writeJSON(w, http.StatusOK, update)
}
