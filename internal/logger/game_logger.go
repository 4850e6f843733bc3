// Package logger provides game event logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// GameLogger provides a dedicated trail of scoring-night events.
type GameLogger struct {
	*logrus.Entry
}

// NewGameLogger creates a new game event logger.
func NewGameLogger(baseLogger *logrus.Logger) *GameLogger {
	return &GameLogger{
		Entry: baseLogger.WithField("component", "game"),
	}
}

// LogGameCreated logs the start of a championship night.
func (gl *GameLogger) LogGameCreated(gameID string, playerCount, circuitCount, turnsPerCircuit int, scoringMethod string) {
	gl.WithFields(logrus.Fields{
		"game_id":           gameID,
		"player_count":      playerCount,
		"circuit_count":     circuitCount,
		"turns_per_circuit": turnsPerCircuit,
		"scoring_method":    scoringMethod,
	}).Info("Game created")
}

// LogTurnSubmitted logs a completed player turn.
func (gl *GameLogger) LogTurnSubmitted(gameID, playerID string, circuitIndex, turn int, averageTime *int64) {
	fields := logrus.Fields{
		"game_id":       gameID,
		"player_id":     playerID,
		"circuit_index": circuitIndex,
		"turn":          turn,
	}
	if averageTime != nil {
		fields["average_time_ms"] = *averageTime
	}
	gl.WithFields(fields).Info("Turn submitted")
}

// LogCircuitAdvanced logs the move to the next circuit.
func (gl *GameLogger) LogCircuitAdvanced(gameID string, fromIndex, toIndex int, leaderID string) {
	gl.WithFields(logrus.Fields{
		"game_id":    gameID,
		"from_index": fromIndex,
		"to_index":   toIndex,
		"leader_id":  leaderID,
	}).Info("Circuit advanced")
}

// LogRecordBroken logs a fallen historical record.
func (gl *GameLogger) LogRecordBroken(circuitID, circuitName, recordType string, newTime int64, holderID string, at time.Time) {
	gl.WithFields(logrus.Fields{
		"circuit_id":   circuitID,
		"circuit_name": circuitName,
		"record_type":  recordType,
		"new_time_ms":  newTime,
		"holder_id":    holderID,
		"timestamp":    at.Unix(),
	}).Info("Historical record broken")
}

// LogGameCompleted logs the end of a championship night.
func (gl *GameLogger) LogGameCompleted(gameID string, winnerID string, winnerScore int, circuitsRun int) {
	gl.WithFields(logrus.Fields{
		"game_id":      gameID,
		"winner_id":    winnerID,
		"winner_score": winnerScore,
		"circuits_run": circuitsRun,
	}).Info("Game completed")
}

// LogPINFailure logs a rejected admin PIN attempt.
func (gl *GameLogger) LogPINFailure(remoteAddr string, rateLimited bool) {
	gl.WithFields(logrus.Fields{
		"remote_addr":  remoteAddr,
		"rate_limited": rateLimited,
	}).Warn("Admin PIN attempt rejected")
}
