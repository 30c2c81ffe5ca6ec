package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"vestd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncWithdrawals(wallet string)
	ObserveWithdrawnAmount(wallet string, amount uint64)
	IncBurns()
	SetLifecycleStage(stage int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	withdrawalsTotal    *prometheus.CounterVec
	withdrawnAmount     *prometheus.CounterVec
	burnsTotal          prometheus.Counter
	lifecycleStage      prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncWithdrawals(wallet string) {
	m.withdrawalsTotal.WithLabelValues(wallet).Inc()
}

func (m *MetricsProvider) ObserveWithdrawnAmount(wallet string, amount uint64) {
	m.withdrawnAmount.WithLabelValues(wallet).Add(float64(amount))
}

func (m *MetricsProvider) IncBurns() {
	m.burnsTotal.Inc()
}

func (m *MetricsProvider) SetLifecycleStage(stage int) {
	m.lifecycleStage.Set(float64(stage))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vestd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vestd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vestd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vestd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vestd_persistence_duration_seconds",
			Help:    "Duration of state snapshot operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		withdrawalsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vestd_withdrawals_total",
			Help: "Number of accepted withdrawals per wallet",
		}, []string{"wallet"}),

		withdrawnAmount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vestd_withdrawn_amount_total",
			Help: "Token units withdrawn per wallet",
		}, []string{"wallet"}),

		burnsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vestd_burns_total",
			Help: "Number of executed monthly reserve burns",
		}),

		lifecycleStage: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "vestd_lifecycle_stage",
			Help: "Contract lifecycle stage: 0 uninitialized, 1 initialized, 2 migrated",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncWithdrawals(_ string)                          {}
func (n *noopMetrics) ObserveWithdrawnAmount(_ string, _ uint64)        {}
func (n *noopMetrics) IncBurns()                                        {}
func (n *noopMetrics) SetLifecycleStage(_ int)                          {}
