package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("bogus", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerFormatterFollowsEnvironment(t *testing.T) {
	prod := NewLogger("info", "production")
	_, isJSON := prod.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON, "production should log JSON")

	dev := NewLogger("info", "development")
	_, isText := dev.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText, "development should log text")
}

func TestGameLoggerGameCreated(t *testing.T) {
	log, buf := setupTestLogger()
	gameLogger := NewGameLogger(log)

	gameLogger.LogGameCreated("game_001", 4, 3, 2, "average")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "game_001", logEntry["game_id"])
	assert.Equal(t, "game", logEntry["component"])
	assert.Equal(t, float64(4), logEntry["player_count"])
}

func TestGameLoggerTurnSubmitted(t *testing.T) {
	log, buf := setupTestLogger()
	gameLogger := NewGameLogger(log)

	avg := int64(61250)
	gameLogger.LogTurnSubmitted("game_001", "player_007", 1, 2, &avg)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "player_007", logEntry["player_id"])
	assert.Equal(t, float64(61250), logEntry["average_time_ms"])
}

func TestGameLoggerTurnSubmittedWithoutAverage(t *testing.T) {
	log, buf := setupTestLogger()
	gameLogger := NewGameLogger(log)

	gameLogger.LogTurnSubmitted("game_001", "player_007", 0, 1, nil)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	_, present := logEntry["average_time_ms"]
	assert.False(t, present)
}

func TestGameLoggerRecordBroken(t *testing.T) {
	log, buf := setupTestLogger()
	gameLogger := NewGameLogger(log)

	gameLogger.LogRecordBroken(
		"circuit_01",
		"Monza",
		"lap",
		58250,
		"player_007",
		time.Date(2024, 2, 3, 21, 0, 0, 0, time.UTC),
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Monza", logEntry["circuit_name"])
	assert.Equal(t, "lap", logEntry["record_type"])
	assert.Equal(t, float64(58250), logEntry["new_time_ms"])
}

func TestGameLoggerPINFailure(t *testing.T) {
	log, buf := setupTestLogger()
	gameLogger := NewGameLogger(log)

	gameLogger.LogPINFailure("10.0.0.9", true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, true, logEntry["rate_limited"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	gameLogger := NewGameLogger(log)

	gameLogger.LogGameCompleted("game_001", "player_007", 18, 3)

	// Verify output is valid JSON
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}

func BenchmarkGameLoggerTurnSubmitted(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	gameLogger := NewGameLogger(log)

	avg := int64(61250)
	for i := 0; i < b.N; i++ {
		gameLogger.LogTurnSubmitted("game_001", "player_007", 1, 2, &avg)
	}
}
