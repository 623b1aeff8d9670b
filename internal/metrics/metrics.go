// Package metrics exposes Prometheus collectors for database round trips
// and reservation events.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector the service records.
type Metrics struct {
	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec
	eventsTotal   *prometheus.CounterVec
}

// New registers the collectors on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors on registerer.  Collectors
// already registered under the same name are reused.
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Metrics{
		queryDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "lunchly_db_query_duration_seconds",
			Help:    "Duration of database round trips in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"op"}),
		queryErrors: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "lunchly_db_query_errors_total",
			Help: "Total number of failed database round trips",
		}, []string{"op"}),
		eventsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "lunchly_reservation_events_total",
			Help: "Reservation events by outcome (published, failed, consumed, rejected)",
		}, []string{"outcome"}),
	}
}

// ObserveQuery implements database.Observer.
func (m *Metrics) ObserveQuery(op string, d time.Duration, err error) {
	m.queryDuration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		m.queryErrors.WithLabelValues(op).Inc()
	}
}

// RecordEvent counts a reservation event outcome.
func (m *Metrics) RecordEvent(outcome string) {
	m.eventsTotal.WithLabelValues(outcome).Inc()
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}
