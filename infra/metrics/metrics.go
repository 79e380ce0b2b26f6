package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg            *prometheus.Registry
	Runs           *prometheus.CounterVec
	Records        *prometheus.CounterVec
	FilesSkipped   prometheus.Counter
	RowsSkipped    prometheus.Counter
	NotifyFailures prometheus.Counter
	RunDurationSec prometheus.Histogram
	LastRunRecords prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "order_validation_runs_total"}, []string{"status"})
	records := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "order_validation_records_total"}, []string{"partition"})
	filesSkipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_validation_files_skipped_total"})
	rowsSkipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_validation_rows_skipped_total"})
	notifyFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_validation_notify_failures_total"})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_validation_run_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	lastRunRecords := prometheus.NewGauge(prometheus.GaugeOpts{Name: "order_validation_last_run_records"})

	r.MustRegister(runs, records, filesSkipped, rowsSkipped, notifyFailures, runDuration, lastRunRecords)
	return &Registry{
		reg:            r,
		Runs:           runs,
		Records:        records,
		FilesSkipped:   filesSkipped,
		RowsSkipped:    rowsSkipped,
		NotifyFailures: notifyFailures,
		RunDurationSec: runDuration,
		LastRunRecords: lastRunRecords,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
