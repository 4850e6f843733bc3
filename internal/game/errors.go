package game

import (
	"errors"
	"fmt"
)

// Sentinel errors for invariant violations. These indicate a programming
// error or corrupted state, not bad user input; transitions refuse to run
// rather than compute on inconsistent data.
var (
	ErrGameFinished    = errors.New("game is finished")
	ErrTurnIncomplete  = errors.New("turn does not have a result for every player")
	ErrCircuitComplete = errors.New("circuit is complete; advance before submitting")
	ErrUnknownPlayer   = errors.New("player is not part of this game")
)

// ValidationError rejects malformed turn input before any state mutation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a named input field
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a turn-input validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
