package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "award_engine"

// Metrics holds the Prometheus collectors. Each instance owns its registry,
// so tests can create as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	Calculations        *prometheus.CounterVec
	CalculationDuration prometheus.Histogram
	WeeklyPay           prometheus.Histogram
	SkippedShifts       prometheus.Counter
	HistoryPruned       prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Weekly pay calculations by schedule and employment type.",
		}, []string{"schedule", "employment_type"}),
		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent calculating one week.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		WeeklyPay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "weekly_pay_dollars",
			Help:      "Distribution of calculated weekly totals.",
			Buckets:   prometheus.LinearBuckets(0, 250, 12),
		}),
		SkippedShifts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_shifts_total",
			Help:      "Shifts that contributed nothing because of invalid times.",
		}),
		HistoryPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_pruned_total",
			Help:      "Calculation records removed by retention.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Calculations,
		m.CalculationDuration,
		m.WeeklyPay,
		m.SkippedShifts,
		m.HistoryPruned,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// ObserveCalculation records one weekly calculation.
func (m *Metrics) ObserveCalculation(schedule, employmentType string, total decimal.Decimal, took time.Duration) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(schedule, employmentType).Inc()
	m.CalculationDuration.Observe(took.Seconds())
	m.WeeklyPay.Observe(total.InexactFloat64())
}

// AddSkippedShifts counts shifts that had times but produced no segments.
func (m *Metrics) AddSkippedShifts(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SkippedShifts.Add(float64(n))
}

// AddPruned counts records removed by retention.
func (m *Metrics) AddPruned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.HistoryPruned.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
