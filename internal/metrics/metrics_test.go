package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordGameLifecycle(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordGameCreated()
	})

	assert.NotPanics(t, func() {
		RecordGameCompleted()
	})
}

func TestRecordTurnSubmitted(t *testing.T) {
	InitRegistry()
	durationSeconds := 0.02

	assert.NotPanics(t, func() {
		RecordTurnSubmitted(durationSeconds)
	})

	assert.NotPanics(t, func() {
		RecordTurnRejected()
	})
}

func TestRecordLapTime(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name         string
		milliseconds int64
	}{
		{
			name:         "typical lap",
			milliseconds: 61250,
		},
		{
			name:         "very quick lap",
			milliseconds: 28000,
		},
		{
			name:         "slow lap",
			milliseconds: 240000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordLapTime(tt.milliseconds)
			})
		})
	}
}

func TestRecordRecordBroken(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordRecordBroken("lap")
	})

	assert.NotPanics(t, func() {
		RecordRecordBroken("average")
	})
}

func TestRecordPINFailure(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordPINFailure()
	})
}

func TestGaugeUpdates(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateRosterSize(6)
	})

	assert.NotPanics(t, func() {
		UpdateCircuitCount(3)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordTurnSubmitted(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordTurnSubmitted(0.02)
	}
}

func BenchmarkRecordLapTime(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordLapTime(61250)
	}
}
