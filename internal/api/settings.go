package api

import (
	"errors"
	"net/http"

	"github.com/yourusername/race-night/internal/auth"
	"github.com/yourusername/race-night/internal/models"
)

type verifyPINRequest struct {
	PIN string `json:"pin"`
}

type updatePINRequest struct {
	CurrentPIN string `json:"currentPin"`
	NewPIN     string `json:"newPin"`
}

func (s *Server) handleVerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req verifyPINRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if err := s.pin.Verify(r.Context(), req.PIN); err != nil {
		if errors.Is(err, models.ErrInvalidPIN) || errors.Is(err, auth.ErrRateLimited) {
			s.gameLog.LogPINFailure(r.RemoteAddr, errors.Is(err, auth.ErrRateLimited))
		}
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (s *Server) handleUpdatePIN(w http.ResponseWriter, r *http.Request) {
	var req updatePINRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if err := s.pin.UpdatePIN(r.Context(), req.CurrentPIN, req.NewPIN); err != nil {
		if errors.Is(err, models.ErrInvalidPIN) || errors.Is(err, auth.ErrRateLimited) {
			s.gameLog.LogPINFailure(r.RemoteAddr, errors.Is(err, auth.ErrRateLimited))
		}
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}
