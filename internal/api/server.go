// Package api exposes the scoring service over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-night/internal/auth"
	"github.com/yourusername/race-night/internal/config"
	"github.com/yourusername/race-night/internal/logger"
	"github.com/yourusername/race-night/internal/models"
	"github.com/yourusername/race-night/internal/service"
)

// Server is the HTTP API server for the scoring service.
type Server struct {
	roster   *service.RosterService
	games    *service.GameService
	pin      *auth.PINVerifier
	logger   *logrus.Logger
	gameLog  *logger.GameLogger
	server   *http.Server
	shutdown time.Duration
}

// NewServer wires the API routes onto an HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	roster *service.RosterService,
	games *service.GameService,
	pin *auth.PINVerifier,
	log *logrus.Logger,
) *Server {
	s := &Server{
		roster:   roster,
		games:    games,
		pin:      pin,
		logger:   log,
		gameLog:  logger.NewGameLogger(log),
		shutdown: time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/players", s.handleListPlayers)
	mux.HandleFunc("POST /api/players", s.withPIN(s.handleCreatePlayer))
	mux.HandleFunc("GET /api/players/{id}", s.handleGetPlayer)
	mux.HandleFunc("PUT /api/players/{id}", s.withPIN(s.handleUpdatePlayer))
	mux.HandleFunc("DELETE /api/players/{id}", s.withPIN(s.handleDeletePlayer))

	mux.HandleFunc("GET /api/circuits", s.handleListCircuits)
	mux.HandleFunc("POST /api/circuits", s.withPIN(s.handleCreateCircuit))
	mux.HandleFunc("GET /api/circuits/{id}", s.handleGetCircuit)
	mux.HandleFunc("PUT /api/circuits/{id}", s.withPIN(s.handleUpdateCircuit))
	mux.HandleFunc("DELETE /api/circuits/{id}", s.withPIN(s.handleDeleteCircuit))

	mux.HandleFunc("POST /api/game", s.withPIN(s.handleCreateGame))
	mux.HandleFunc("GET /api/game/active", s.handleActiveGame)
	mux.HandleFunc("GET /api/game/history", s.handleGameHistory)
	mux.HandleFunc("GET /api/game/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /api/game/standings", s.handleCircuitStandings)
	mux.HandleFunc("POST /api/game/turn", s.handleSubmitTurn)
	mux.HandleFunc("POST /api/game/advance", s.handleAdvanceCircuit)
	mux.HandleFunc("POST /api/game/end", s.withPIN(s.handleEndGame))

	mux.HandleFunc("GET /api/records/check", s.handleCheckRecords)

	mux.HandleFunc("POST /api/settings/verify-pin", s.handleVerifyPIN)
	mux.HandleFunc("PUT /api/settings/pin", s.handleUpdatePIN)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.logRequests(mux),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start serves requests until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Error("API server shutdown error")
		}
	}()

	s.logger.WithField("addr", s.server.Addr).Info("API server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("Request handled")
	})
}

// withPIN gates a handler behind the admin PIN carried in the X-Admin-PIN header.
func (s *Server) withPIN(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.pin.Verify(r.Context(), r.Header.Get("X-Admin-PIN")); err != nil {
			if errors.Is(err, models.ErrInvalidPIN) || errors.Is(err, auth.ErrRateLimited) {
				s.gameLog.LogPINFailure(r.RemoteAddr, errors.Is(err, auth.ErrRateLimited))
			}
			s.writeError(w, err)
			return
		}
		next(w, r)
	}
}
