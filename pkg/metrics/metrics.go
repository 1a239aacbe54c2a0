package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// База данных
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBPoolOpenConns prometheus.Gauge
	DBPoolIdleConns prometheus.Gauge
	DBPoolInUse     prometheus.Gauge

	// Домен планирования
	ConflictChecksTotal      *prometheus.CounterVec
	ReschedulesTotal         *prometheus.CounterVec
	MessageDispatchesTotal   *prometheus.CounterVec
	TxSerializationRetries   prometheus.Counter
}

// New создает и регистрирует все метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: constLabels,
		}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBPoolOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}),

		DBPoolIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}),

		DBPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),

		ConflictChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_conflict_checks_total",
			Help:        "Total number of conflict checks by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		ReschedulesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_reschedules_total",
			Help:        "Total number of reschedule attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		MessageDispatchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "automatic_message_dispatches_total",
			Help:        "Total number of automatic message dispatch attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		TxSerializationRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "tx_serialization_retries_total",
			Help:        "Total number of serializable transaction retries",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveDBQuery записывает метрики одного запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetPoolStats обновляет gauge-метрики состояния пула соединений
func (m *Metrics) SetPoolStats(open, idle, inUse int) {
	m.DBPoolOpenConns.Set(float64(open))
	m.DBPoolIdleConns.Set(float64(idle))
	m.DBPoolInUse.Set(float64(inUse))
}
