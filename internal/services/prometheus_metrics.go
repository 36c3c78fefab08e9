package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsCreated *prometheus.CounterVec
	analyticsRequests   *prometheus.CounterVec
	analyticsDuration   *prometheus.HistogramVec
	authEventsTotal     *prometheus.CounterVec
	activeUsersTotal    prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_created_total",
				Help: "Total number of transactions recorded",
			},
			[]string{"type"},
		),
		analyticsRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_requests_total",
				Help: "Total number of analytics and dashboard requests",
			},
			[]string{"kind"},
		),
		analyticsDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_generation_duration_milliseconds",
				Help:    "Analytics report generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"kind"},
		),
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event", "result"},
		),
		activeUsersTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_users_total",
				Help: "Current number of registered users",
			},
		),
	}
}

func (m *PrometheusMetrics) RecordTransactionCreated(transactionType string) {
	m.transactionsCreated.WithLabelValues(transactionType).Inc()
}

func (m *PrometheusMetrics) RecordAnalyticsRequest(kind string, duration time.Duration) {
	m.analyticsRequests.WithLabelValues(kind).Inc()
	m.analyticsDuration.WithLabelValues(kind).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordAuthEvent(event, result string) {
	m.authEventsTotal.WithLabelValues(event, result).Inc()
}

func (m *PrometheusMetrics) SetActiveUsers(count float64) {
	m.activeUsersTotal.Set(count)
}
