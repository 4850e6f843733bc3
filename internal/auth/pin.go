// Package auth provides the admin PIN gate for state-mutating operations.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/race-night/internal/config"
	"github.com/yourusername/race-night/internal/metrics"
	"github.com/yourusername/race-night/internal/models"
	"github.com/yourusername/race-night/internal/repository"
)

// ErrRateLimited is returned when PIN attempts arrive faster than allowed.
var ErrRateLimited = errors.New("too many PIN attempts")

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// PINVerifier checks admin PINs against the stored settings row. A single
// limiter covers all attempts; the night runs on one shared screen, so
// per-client buckets would add nothing.
type PINVerifier struct {
	settings repository.SettingsRepository
	limiter  *rate.Limiter
	logger   *logrus.Logger
}

// NewPINVerifier creates a PIN verifier from auth configuration.
func NewPINVerifier(settings repository.SettingsRepository, cfg *config.AuthConfig, logger *logrus.Logger) *PINVerifier {
	return &PINVerifier{
		settings: settings,
		limiter:  rate.NewLimiter(rate.Limit(cfg.AttemptsPerMinute/60.0), cfg.AttemptBurst),
		logger:   logger,
	}
}

// Verify checks the submitted PIN. It returns ErrRateLimited when the
// attempt budget is exhausted and models.ErrInvalidPIN on a mismatch.
func (v *PINVerifier) Verify(ctx context.Context, pin string) error {
	if !v.limiter.Allow() {
		metrics.RecordPINFailure()
		return ErrRateLimited
	}

	stored, err := v.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored.PIN), []byte(pin)) != 1 {
		metrics.RecordPINFailure()
		return models.ErrInvalidPIN
	}

	return nil
}

// UpdatePIN rotates the admin PIN after verifying the current one.
func (v *PINVerifier) UpdatePIN(ctx context.Context, currentPIN, newPIN string) error {
	if err := v.Verify(ctx, currentPIN); err != nil {
		return err
	}

	if !pinPattern.MatchString(newPIN) {
		return fmt.Errorf("%w: PIN must be exactly four digits", models.ErrInvalidPIN)
	}

	if err := v.settings.UpdatePIN(ctx, newPIN); err != nil {
		return fmt.Errorf("failed to rotate PIN: %w", err)
	}

	v.logger.Info("Admin PIN rotated")
	return nil
}
