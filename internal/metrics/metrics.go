package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const namespace = "configurator_service"

var (
	httpBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	queryBuckets    = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	externalBuckets = []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrorsTotal     *prometheus.CounterVec

	// Database
	DBConnectionsOpen        prometheus.Gauge
	DBConnectionsInUse       prometheus.Gauge
	DBConnectionsIdle        prometheus.Gauge
	DBConnectionsMax         prometheus.Gauge
	DBConnectionWaitTotal    prometheus.Counter
	DBConnectionWaitDuration prometheus.Counter
	DBQueryDuration          *prometheus.HistogramVec
	DBQueryErrors            *prometheus.CounterVec

	// External calls (notification service, S3)
	ExternalAPIRequestDuration *prometheus.HistogramVec
	ExternalAPIRequestsTotal   *prometheus.CounterVec
	ExternalAPIErrors          *prometheus.CounterVec

	// Configurations
	ConfigurationsTotal          prometheus.Gauge
	ConfigurationsLocked         prometheus.Gauge
	OrphanedSelections           prometheus.Gauge
	ConfigurationCreatedTotal    prometheus.Counter
	ConfigurationSavedTotal      *prometheus.CounterVec
	ConfigurationCompletedTotal  prometheus.Counter
	ConfigurationLockedTotal     prometheus.Counter
	ConfigurationDuplicatedTotal prometheus.Counter
	ConfigurationExportedTotal   *prometheus.CounterVec
	SaveRejectedTotal            *prometheus.CounterVec
	SnapshotCacheTotal           *prometheus.CounterVec

	poolMu           sync.Mutex
	lastWaitCount    int64
	lastWaitDuration time.Duration

	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := factory{promauto.With(registerer)}

	return &Metrics{
		HTTPRequestsTotal:   f.counterVec("http_requests_total", "Total number of HTTP requests", "method", "endpoint", "status"),
		HTTPRequestDuration: f.histogramVec("http_request_duration_seconds", "HTTP request duration in seconds", httpBuckets, "method", "endpoint"),
		HTTPErrorsTotal:     f.counterVec("http_errors_total", "Requests that ended in an application error, by route and error code", "endpoint", "code"),

		DBConnectionsOpen:        f.gauge("db_connections_open", "Current number of open database connections"),
		DBConnectionsInUse:       f.gauge("db_connections_in_use", "Current number of in-use database connections"),
		DBConnectionsIdle:        f.gauge("db_connections_idle", "Current number of idle database connections"),
		DBConnectionsMax:         f.gauge("db_connections_max", "Maximum number of open database connections configured"),
		DBConnectionWaitTotal:    f.counter("db_connection_wait_total", "Total number of times waited for a database connection"),
		DBConnectionWaitDuration: f.counter("db_connection_wait_duration_seconds_total", "Total duration waited for database connections in seconds"),
		DBQueryDuration:          f.histogramVec("db_query_duration_seconds", "Database query duration in seconds", queryBuckets, "operation", "table"),
		DBQueryErrors:            f.counterVec("db_query_errors_total", "Total number of database query errors", "operation", "table"),

		ExternalAPIRequestDuration: f.histogramVec("external_api_request_duration_seconds", "External call duration in seconds", externalBuckets, "endpoint", "status"),
		ExternalAPIRequestsTotal:   f.counterVec("external_api_requests_total", "Total number of external calls", "endpoint", "method", "status"),
		ExternalAPIErrors:          f.counterVec("external_api_errors_total", "Total number of failed external calls", "endpoint", "error_type"),

		ConfigurationsTotal:          f.gauge("configurations_total", "Total number of stored configurations"),
		ConfigurationsLocked:         f.gauge("configurations_locked", "Number of locked configurations"),
		OrphanedSelections:           f.gauge("orphaned_selections", "Number of saved selections whose catalog item or variation no longer exists"),
		ConfigurationCreatedTotal:    f.counter("configuration_created_total", "Total number of configuration creation events"),
		ConfigurationSavedTotal:      f.counterVec("configuration_saved_total", "Total number of persisted selection saves by trigger", "trigger"),
		ConfigurationCompletedTotal:  f.counter("configuration_completed_total", "Total number of configurations marked completed"),
		ConfigurationLockedTotal:     f.counter("configuration_locked_total", "Total number of configurations locked"),
		ConfigurationDuplicatedTotal: f.counter("configuration_duplicated_total", "Total number of configuration duplications"),
		ConfigurationExportedTotal:   f.counterVec("configuration_exported_total", "Total number of configuration exports by destination", "destination"),
		SaveRejectedTotal:            f.counterVec("save_rejected_total", "Total number of rejected selection saves by reason", "reason"),
		SnapshotCacheTotal:           f.counterVec("snapshot_cache_total", "Wizard snapshot cache lookups by result", "result"),

		logger: logger,
	}
}

// factory registers metrics under the service namespace
type factory struct {
	promauto.Factory
}

func (f factory) gauge(name, help string) prometheus.Gauge {
	return f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

func (f factory) counter(name, help string) prometheus.Counter {
	return f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
}

func (f factory) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return f.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func (f factory) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return f.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
}

// safeExecute keeps a failing metric operation from reaching the request path
func (m *Metrics) safeExecute(operation string, fn func()) {
	defer func() {
		if r := recover(); r != nil && m.logger != nil {
			m.logger.Error("Panic in metrics operation",
				zap.String("operation", operation),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}
