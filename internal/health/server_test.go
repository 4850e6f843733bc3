package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yourusername/race-night/internal/models"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	return f.err
}

type fakeGameSource struct {
	game *models.Game
	err  error
}

func (f *fakeGameSource) GetActive(ctx context.Context) (*models.Game, error) {
	return f.game, f.err
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) Status {
	t.Helper()
	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return status
}

func TestReadyReflectsServeFlagAndDatabase(t *testing.T) {
	pinger := &fakePinger{}
	srv := NewServer(Config{ServiceName: "race-night", DB: pinger})

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before SetReady, got %d", rec.Code)
	}

	srv.SetReady(true)
	rec = httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when ready, got %d", rec.Code)
	}
	status := decodeStatus(t, rec)
	if status.Checks["database"] != "ok" {
		t.Fatalf("expected database check ok, got %q", status.Checks["database"])
	}

	pinger.err = errors.New("connection refused")
	rec = httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on database failure, got %d", rec.Code)
	}
}

func TestHealthReportsNightStatus(t *testing.T) {
	games := &fakeGameSource{err: models.ErrNoActiveGame}
	srv := NewServer(Config{ServiceName: "race-night", Version: "test", Games: games})

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	status := decodeStatus(t, rec)
	if status.Night != "idle" {
		t.Fatalf("expected idle night, got %q", status.Night)
	}

	games.game = &models.Game{Status: models.GameStatusActive}
	games.err = nil
	rec = httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if status = decodeStatus(t, rec); status.Night != "active" {
		t.Fatalf("expected active night, got %q", status.Night)
	}
	if status.Version != "test" {
		t.Fatalf("expected version in health summary, got %q", status.Version)
	}
}

func TestLiveNeedsNoDependencies(t *testing.T) {
	srv := NewServer(Config{ServiceName: "race-night"})

	rec := httptest.NewRecorder()
	srv.handleLive(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
