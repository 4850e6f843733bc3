// Package health exposes liveness and readiness endpoints for the scoring
// service. Readiness covers the database and the serve flag; the status
// endpoint additionally reports whether a championship night is running.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-night/internal/models"
)

// DatabasePinger checks database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// GameSource reports the currently active championship night, if any.
type GameSource interface {
	GetActive(ctx context.Context) (*models.Game, error)
}

const checkTimeout = 3 * time.Second

// Status is the JSON payload of the health endpoints.
type Status struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version,omitempty"`
	Night   string            `json:"night,omitempty"`
	Uptime  string            `json:"uptime,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Server serves /live, /ready and /health on its own port so probes keep
// working while the API port is draining.
type Server struct {
	service string
	version string
	port    string
	logger  *logrus.Logger
	db      DatabasePinger
	games   GameSource
	server  *http.Server
	started time.Time

	mu    sync.RWMutex
	ready bool
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Port        string
	Logger      *logrus.Logger
	DB          DatabasePinger
	Games       GameSource
}

// NewServer creates a health server. The port falls back to HEALTH_PORT and
// then 8080.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("HEALTH_PORT")
	}
	if port == "" {
		port = "8080"
	}

	return &Server{
		service: cfg.ServiceName,
		version: cfg.Version,
		port:    port,
		logger:  cfg.Logger,
		db:      cfg.DB,
		games:   cfg.Games,
		started: time.Now(),
	}
}

// SetReady flips the readiness flag reported by /ready.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns the current readiness flag.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start serves probes in the background until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithField("port", s.port).Info("Health server starting")
		}
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown stops the health server gracefully.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// handleLive reports that the process is up. It must stay dependency-free
// so a stuck database never gets the process restarted.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, Status{Status: "ok", Service: s.service})
}

// handleReady gates traffic on the serve flag and database connectivity.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	healthy := true

	if s.IsReady() {
		checks["service"] = "ok"
	} else {
		checks["service"] = "not_ready"
		healthy = false
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	status := Status{Status: "ok", Service: s.service, Checks: checks}
	code := http.StatusOK
	if !healthy {
		status.Status = "not_ready"
		code = http.StatusServiceUnavailable
	}
	s.respond(w, code, status)
}

// handleHealth is the operator-facing summary: version, uptime and whether
// a night is currently being scored.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := Status{
		Status:  "ok",
		Service: s.service,
		Version: s.version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Night:   s.nightStatus(r.Context()),
	}
	s.respond(w, http.StatusOK, status)
}

// nightStatus classifies the active game lookup into a probe-friendly word.
func (s *Server) nightStatus(ctx context.Context) string {
	if s.games == nil {
		return ""
	}
	lookupCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	switch _, err := s.games.GetActive(lookupCtx); {
	case err == nil:
		return "active"
	case errors.Is(err, models.ErrNoActiveGame):
		return "idle"
	default:
		return "unknown"
	}
}

func (s *Server) respond(w http.ResponseWriter, code int, status Status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil && s.logger != nil {
		s.logger.WithError(err).Error("Failed to encode health response")
	}
}
