// Package metrics provides Prometheus metrics for the message pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voice_digest"

// Metrics holds all Prometheus metrics for the bot
type Metrics struct {
	// Message metrics
	MessagesTotal   *prometheus.CounterVec
	MessageOutcomes *prometheus.CounterVec
	MessageDuration prometheus.Histogram
	AudioBytesTotal prometheus.Counter

	// Stage metrics
	StageLatency *prometheus.HistogramVec
	StageErrors  *prometheus.CounterVec

	// Poll metrics
	PollAttempts *prometheus.HistogramVec
	PollStatuses *prometheus.CounterVec

	// Reply metrics
	RepliesTotal *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. A nil reg leaves
// them unregistered, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Inbound chat messages seen, by kind",
		}, []string{"kind"}),
		MessageOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "message_outcomes_total",
			Help:      "Pipeline outcomes per processed message",
		}, []string{"outcome"}),
		MessageDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_duration_seconds",
			Help:      "Wall time spent on one audio message",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 90, 120, 180, 300},
		}),
		AudioBytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_total",
			Help:      "Audio bytes downloaded from the chat platform",
		}),
		StageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Latency of each pipeline stage",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Stage failures by stage and error kind",
		}, []string{"stage", "kind"}),
		PollAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_attempts",
			Help:      "Transcript lookups needed per job, by final result",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 90, 121},
		}, []string{"result"}),
		PollStatuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_statuses_total",
			Help:      "Job statuses observed while polling",
		}, []string{"status"}),
		RepliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Replies sent, by content source and result",
		}, []string{"source", "result"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.MessagesTotal,
			m.MessageOutcomes,
			m.MessageDuration,
			m.AudioBytesTotal,
			m.StageLatency,
			m.StageErrors,
			m.PollAttempts,
			m.PollStatuses,
			m.RepliesTotal,
		)
	}

	return m
}

// ObservePoll records one transcript lookup. Terminal statuses also record
// how many lookups the job needed.
func (m *Metrics) ObservePoll(attempt int, status string) {
	m.PollStatuses.WithLabelValues(status).Inc()
	if status == "completed" || status == "error" {
		m.PollAttempts.WithLabelValues(status).Observe(float64(attempt + 1))
	}
}
