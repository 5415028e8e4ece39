package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ActiveSessions  prometheus.Gauge
	SessionEvents   *prometheus.CounterVec
	WSMessages      *prometheus.CounterVec
	ScoreEvents     *prometheus.CounterVec
	MatchesFinished *prometheus.CounterVec
	NarrationChunks *prometheus.CounterVec
	NarrationErrors *prometheus.CounterVec
	BadgesEarned    *prometheus.CounterVec
	FinalScoreGap   prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of active match sessions.",
		}),
		SessionEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_events_total",
			Help:      "Session events by type.",
		}, []string{"event"}),
		WSMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_messages_total",
			Help:      "WebSocket messages by direction and type.",
		}, []string{"direction", "type"}),
		ScoreEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_events_total",
			Help:      "Applied scoring deltas by team.",
		}, []string{"team"}),
		MatchesFinished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_finished_total",
			Help:      "Finished matches by outcome.",
		}, []string{"winner"}),
		NarrationChunks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narration_chunks_total",
			Help:      "Narration chunks by outcome (spoken, abandoned, failed).",
		}, []string{"outcome"}),
		NarrationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narration_errors_total",
			Help:      "Speech engine errors by code.",
		}, []string{"code"}),
		BadgesEarned: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "badges_earned_total",
			Help:      "Badges earned by badge id.",
		}, []string{"badge"}),
		FinalScoreGap: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score_gap",
			Help:      "Absolute score difference at match end.",
			Buckets:   []float64{0, 1, 2, 4, 6, 9, 14, 20},
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
