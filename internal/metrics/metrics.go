// Package metrics registers the service's Prometheus instruments.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "kassabot_"

const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation_error"
	OutcomeStorage    = "storage_error"
)

var (
	registerOnce sync.Once

	eventsTotal    *prometheus.CounterVec
	eventLatency   *prometheus.HistogramVec
	recordsCreated prometheus.Counter
	recordsDeleted prometheus.Counter
	reportsBuilt   *prometheus.CounterVec
)

// Init registers all instruments with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		eventsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "events_total",
				Help: "Inbound conversation events by outcome",
			},
			[]string{"outcome"},
		)
		eventLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "event_latency_seconds",
				Help:    "Event handling latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		)
		recordsCreated = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_created_total",
				Help: "Expense records written to the ledger",
			},
		)
		recordsDeleted = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_deleted_total",
				Help: "Expense records removed by clear-all",
			},
		)
		reportsBuilt = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reports_built_total",
				Help: "Reports built by window",
			},
			[]string{"window"},
		)

		prometheus.MustRegister(
			eventsTotal,
			eventLatency,
			recordsCreated,
			recordsDeleted,
			reportsBuilt,
		)
	})
}

// ObserveEvent records one handled event with its outcome and latency.
func ObserveEvent(outcome string, d time.Duration) {
	if eventsTotal == nil {
		return
	}
	eventsTotal.WithLabelValues(outcome).Inc()
	eventLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

func RecordCreated() {
	if recordsCreated != nil {
		recordsCreated.Inc()
	}
}

func RecordsDeleted(n int64) {
	if recordsDeleted != nil {
		recordsDeleted.Add(float64(n))
	}
}

func ReportBuilt(window string) {
	if reportsBuilt != nil {
		reportsBuilt.WithLabelValues(window).Inc()
	}
}
