package api

import (
	"net/http"

	"github.com/yourusername/race-night/internal/models"
)

type playerRequest struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.roster.ListPlayers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if players == nil {
		players = []*models.Player{}
	}
	s.writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	player, err := s.roster.CreatePlayer(r.Context(), req.Name, req.AvatarURL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	player, err := s.roster.GetPlayer(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req playerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	player := &models.Player{ID: id, Name: req.Name, AvatarURL: req.AvatarURL}
	if err := s.roster.UpdatePlayer(r.Context(), player); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.roster.DeletePlayer(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
