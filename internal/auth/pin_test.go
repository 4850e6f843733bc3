package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-night/internal/config"
	"github.com/yourusername/race-night/internal/models"
)

type fakeSettingsRepo struct {
	pin     string
	updated string
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	return &models.Settings{ID: models.SettingsID, PIN: f.pin, UpdatedAt: time.Now()}, nil
}

func (f *fakeSettingsRepo) UpdatePIN(ctx context.Context, pin string) error {
	f.updated = pin
	return nil
}

func newTestVerifier(pin string, attemptsPerMinute float64, burst int) (*PINVerifier, *fakeSettingsRepo) {
	repo := &fakeSettingsRepo{pin: pin}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	cfg := &config.AuthConfig{DefaultPIN: pin, AttemptsPerMinute: attemptsPerMinute, AttemptBurst: burst}
	return NewPINVerifier(repo, cfg, logger), repo
}

func TestVerifyAcceptsCorrectPIN(t *testing.T) {
	v, _ := newTestVerifier("2024", 600, 10)

	if err := v.Verify(context.Background(), "2024"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestVerifyRejectsWrongPIN(t *testing.T) {
	v, _ := newTestVerifier("2024", 600, 10)

	if err := v.Verify(context.Background(), "9999"); !errors.Is(err, models.ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN, got %v", err)
	}
}

func TestVerifyRateLimitsBurst(t *testing.T) {
	// A tiny refill rate with burst one: the second immediate attempt must bounce.
	v, _ := newTestVerifier("2024", 0.01, 1)

	if err := v.Verify(context.Background(), "9999"); !errors.Is(err, models.ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN on first attempt, got %v", err)
	}
	if err := v.Verify(context.Background(), "2024"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited on second attempt, got %v", err)
	}
}

func TestUpdatePINRequiresCurrentPIN(t *testing.T) {
	v, repo := newTestVerifier("2024", 600, 10)

	if err := v.UpdatePIN(context.Background(), "0000", "1234"); !errors.Is(err, models.ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN, got %v", err)
	}
	if repo.updated != "" {
		t.Fatal("PIN must not rotate without the current PIN")
	}
}

func TestUpdatePINValidatesFormat(t *testing.T) {
	v, repo := newTestVerifier("2024", 600, 10)

	for _, bad := range []string{"123", "12345", "12ab", ""} {
		if err := v.UpdatePIN(context.Background(), "2024", bad); err == nil {
			t.Fatalf("expected error for PIN %q", bad)
		}
	}
	if repo.updated != "" {
		t.Fatal("malformed PIN must not be stored")
	}

	if err := v.UpdatePIN(context.Background(), "2024", "8451"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.updated != "8451" {
		t.Fatalf("expected stored PIN 8451, got %q", repo.updated)
	}
}
