package observability

import (
	"context"

	"github.com/aretw0/brochure/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records initialization and fetch outcomes as Prometheus series.
type Metrics struct {
	Initializations *prometheus.CounterVec
	Fetches         *prometheus.CounterVec
	Superseded      prometheus.Counter
	FetchDuration   *prometheus.HistogramVec
	InFlight        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Initializations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brochure_initializations_total",
				Help: "Data service initializations by final state and dependency status",
			},
			[]string{"state", "status"},
		),
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brochure_fetches_total",
				Help: "Completed fetches by outcome",
			},
			[]string{"outcome"},
		),
		Superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brochure_fetches_superseded_total",
			Help: "Fetches whose result was discarded because a newer one was issued",
		}),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brochure_fetch_duration_seconds",
				Help:    "Time from issuing a fetch to classifying its result",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "brochure_fetches_in_flight",
			Help: "Fetches issued and not yet completed",
		}),
	}
	reg.MustRegister(m.Initializations, m.Fetches, m.Superseded, m.FetchDuration, m.InFlight)
	return m
}

// Hooks returns lifecycle hooks feeding these metrics.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnInitialized: func(_ context.Context, e *domain.InitEvent) {
			m.Initializations.WithLabelValues(e.State.String(), e.Status.String()).Inc()
		},
		OnFetchStarted: func(_ context.Context, _ *domain.FetchEvent) {
			m.InFlight.Inc()
		},
		OnFetchCompleted: func(_ context.Context, e *domain.FetchEvent) {
			m.InFlight.Dec()
			m.Fetches.WithLabelValues(string(e.Kind)).Inc()
			m.FetchDuration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
			if e.Superseded {
				m.Superseded.Inc()
			}
		},
	}
}
