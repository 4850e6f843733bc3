// Package metrics provides the centralized Prometheus metrics registry for the scoring service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_night",
		Name:      "games_created_total",
		Help:      "Total number of championship nights started",
	})
	GamesCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_night",
		Name:      "games_completed_total",
		Help:      "Total number of championship nights completed",
	})
	TurnsSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_night",
		Name:      "turns_submitted_total",
		Help:      "Total number of turns submitted",
	})
	TurnsRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_night",
		Name:      "turns_rejected_total",
		Help:      "Total number of turn submissions rejected by validation",
	})
	RecordsBrokenTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_night",
		Name:      "records_broken_total",
		Help:      "Total number of historical records broken",
	}, []string{"record_type"})
	PINFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_night",
		Name:      "pin_failures_total",
		Help:      "Total number of rejected admin PIN attempts",
	})
	RecordWebhookErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_night",
		Name:      "record_webhook_errors_total",
		Help:      "Total number of failed record announcement deliveries",
	})
)

// Gauge metrics
var (
	ActiveGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_night",
		Name:      "active_games",
		Help:      "Number of currently active games",
	})
	RosterSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_night",
		Name:      "roster_size",
		Help:      "Number of players in the roster",
	})
	CircuitCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_night",
		Name:      "circuit_count",
		Help:      "Number of configured circuits",
	})
)

// Histogram metrics
var (
	TurnProcessingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "race_night",
		Name:      "turn_processing_duration_seconds",
		Help:      "Duration of turn submission processing in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	SubmittedLapTime = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "race_night",
		Name:      "submitted_lap_time_seconds",
		Help:      "Distribution of submitted lap times in seconds",
		Buckets:   []float64{30, 45, 60, 75, 90, 120, 180, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(GamesCreatedTotal)
		registry.MustRegister(GamesCompletedTotal)
		registry.MustRegister(TurnsSubmittedTotal)
		registry.MustRegister(TurnsRejectedTotal)
		registry.MustRegister(RecordsBrokenTotal)
		registry.MustRegister(PINFailuresTotal)
		registry.MustRegister(RecordWebhookErrorsTotal)

		// Register gauge metrics
		registry.MustRegister(ActiveGames)
		registry.MustRegister(RosterSize)
		registry.MustRegister(CircuitCount)

		// Register histogram metrics
		registry.MustRegister(TurnProcessingDuration)
		registry.MustRegister(SubmittedLapTime)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordGameCreated records the start of a championship night.
func RecordGameCreated() {
	GamesCreatedTotal.Inc()
	ActiveGames.Set(1)
}

// RecordGameCompleted records a completed championship night.
func RecordGameCompleted() {
	GamesCompletedTotal.Inc()
	ActiveGames.Set(0)
}

// RecordTurnSubmitted records an accepted turn and its processing time.
func RecordTurnSubmitted(durationSeconds float64) {
	TurnsSubmittedTotal.Inc()
	TurnProcessingDuration.Observe(durationSeconds)
}

// RecordTurnRejected records a turn submission rejected by validation.
func RecordTurnRejected() {
	TurnsRejectedTotal.Inc()
}

// RecordLapTime records a single submitted lap time.
func RecordLapTime(milliseconds int64) {
	SubmittedLapTime.Observe(float64(milliseconds) / 1000.0)
}

// RecordRecordBroken records a fallen historical record.
func RecordRecordBroken(recordType string) {
	RecordsBrokenTotal.WithLabelValues(recordType).Inc()
}

// RecordPINFailure records a rejected admin PIN attempt.
func RecordPINFailure() {
	PINFailuresTotal.Inc()
}

// RecordWebhookError records a failed record announcement delivery.
func RecordWebhookError() {
	RecordWebhookErrorsTotal.Inc()
}

// UpdateRosterSize updates the roster size gauge.
func UpdateRosterSize(count float64) {
	RosterSize.Set(count)
}

// UpdateCircuitCount updates the circuit count gauge.
func UpdateCircuitCount(count float64) {
	CircuitCount.Set(count)
}
