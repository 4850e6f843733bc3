package api

import (
	"net/http"

	"github.com/yourusername/race-night/internal/models"
)

type circuitRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func (s *Server) handleListCircuits(w http.ResponseWriter, r *http.Request) {
	circuits, err := s.roster.ListCircuits(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if circuits == nil {
		circuits = []*models.Circuit{}
	}
	s.writeJSON(w, http.StatusOK, circuits)
}

func (s *Server) handleCreateCircuit(w http.ResponseWriter, r *http.Request) {
	var req circuitRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	circuit, err := s.roster.CreateCircuit(r.Context(), req.Name, req.ImageURL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, circuit)
}

func (s *Server) handleGetCircuit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	circuit, err := s.roster.GetCircuit(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, circuit)
}

func (s *Server) handleUpdateCircuit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req circuitRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	circuit := &models.Circuit{ID: id, Name: req.Name, ImageURL: req.ImageURL}
	if err := s.roster.UpdateCircuit(r.Context(), circuit); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, circuit)
}

func (s *Server) handleDeleteCircuit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.roster.DeleteCircuit(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
