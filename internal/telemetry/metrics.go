package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	TracksTotal    *prometheus.CounterVec
	TrackDuration  *prometheus.HistogramVec
	TrackErrors    *prometheus.CounterVec
	EventsReturned *prometheus.HistogramVec
}

// NewMetrics creates metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TracksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parceltrack_tracks_total",
				Help: "Total number of tracking calls by carrier and outcome",
			},
			[]string{"carrier", "outcome"},
		),
		TrackDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parceltrack_track_duration_seconds",
				Help:    "Tracking call duration in seconds by carrier",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"carrier"},
		),
		TrackErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parceltrack_track_errors_total",
				Help: "Total tracking failures by carrier and error kind",
			},
			[]string{"carrier", "kind"},
		),
		EventsReturned: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parceltrack_events_returned",
				Help:    "Number of events in returned tracks by carrier",
				Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
			},
			[]string{"carrier"},
		),
	}
}

// RecordTrack records a successful tracking call.
func (m *Metrics) RecordTrack(carrier string, events int, duration float64) {
	m.TracksTotal.WithLabelValues(carrier, "success").Inc()
	m.TrackDuration.WithLabelValues(carrier).Observe(duration)
	m.EventsReturned.WithLabelValues(carrier).Observe(float64(events))
}

// RecordError records a failed tracking call.
func (m *Metrics) RecordError(carrier, kind string, duration float64) {
	m.TracksTotal.WithLabelValues(carrier, "error").Inc()
	m.TrackDuration.WithLabelValues(carrier).Observe(duration)
	m.TrackErrors.WithLabelValues(carrier, kind).Inc()
}
