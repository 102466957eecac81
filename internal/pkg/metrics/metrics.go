package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder метрики расчётов в Prometheus
type Recorder struct {
	calculations *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	cacheResults *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
}

// New регистрирует метрики в reg (prometheus.DefaultRegisterer в приложении)
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kundali_calculations_total",
				Help: "Total number of completed calculations",
			},
			[]string{"operation", "ephemeris"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kundali_errors_total",
				Help: "Total number of failed calculations by kind",
			},
			[]string{"operation", "kind"},
		),
		cacheResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kundali_cache_requests_total",
				Help: "Chart cache lookups by result",
			},
			[]string{"result"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kundali_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kundali_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
	}
}

// RecordCalculation успешный расчёт
func (r *Recorder) RecordCalculation(op, ephemeris string) {
	r.calculations.WithLabelValues(op, ephemeris).Inc()
}

// RecordError ошибка расчёта
func (r *Recorder) RecordError(op, kind string) {
	r.errorsTotal.WithLabelValues(op, kind).Inc()
}

// RecordCache hit | miss | error
func (r *Recorder) RecordCache(result string) {
	r.cacheResults.WithLabelValues(result).Inc()
}

// RecordLatency длительность операции
func (r *Recorder) RecordLatency(op string, d time.Duration) {
	r.latency.WithLabelValues(op).Observe(d.Seconds())
}

// RecordHTTP запрос к HTTP API
func (r *Recorder) RecordHTTP(route, status string) {
	r.httpRequests.WithLabelValues(route, status).Inc()
}
