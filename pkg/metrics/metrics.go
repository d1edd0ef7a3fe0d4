package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all service metrics on a private registry
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Kafka metrics
	KafkaEventsPublished *prometheus.CounterVec
	KafkaPublishDuration *prometheus.HistogramVec

	// Database metrics
	DBOperations        *prometheus.CounterVec
	DBOperationDuration *prometheus.HistogramVec

	// Cache metrics
	CacheRequests *prometheus.CounterVec

	// Business metrics
	StockRowsLoaded    *prometheus.CounterVec
	ResolutionsTotal   prometheus.Counter
	RequestsResolved   *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram
	LinesImported      *prometheus.CounterVec
	LinesDivided       prometheus.Counter
	ItemsPicked        prometheus.Counter

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "wms",
	}
}

// New creates a new Metrics instance
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ns := config.Namespace
	service := prometheus.Labels{"service": config.ServiceName}

	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"service", "method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"service", "method", "path"})

	m.HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Name:        "http_requests_in_flight",
		Help:        "Number of HTTP requests currently being processed",
		ConstLabels: service,
	})

	m.KafkaEventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "kafka_events_published_total",
		Help:      "Total number of Kafka events published",
	}, []string{"service", "topic", "event_type", "status"})

	m.KafkaPublishDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "kafka_publish_duration_seconds",
		Help:      "Kafka publish duration in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"service", "topic"})

	m.DBOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "db_operations_total",
		Help:      "Total number of SQL operations",
	}, []string{"service", "table", "operation", "status"})

	m.DBOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "db_operation_duration_seconds",
		Help:      "SQL operation duration in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"service", "table", "operation"})

	m.CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "cache_requests_total",
		Help:      "Cache lookups by result (hit, miss, error)",
	}, []string{"service", "cache", "result"})

	m.StockRowsLoaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "stock_rows_loaded_total",
		Help:      "Stock snapshot rows processed by outcome (inserted, skipped)",
	}, []string{"service", "outcome"})

	m.ResolutionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   ns,
		Name:        "replenishment_resolutions_total",
		Help:        "Total number of resolution calls",
		ConstLabels: service,
	})

	m.RequestsResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "replenishment_requests_total",
		Help:      "Replenishment requests by outcome (resolved, unresolved)",
	}, []string{"service", "outcome"})

	m.ResolutionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   ns,
		Name:        "replenishment_resolution_duration_seconds",
		Help:        "Time spent in the resolver, excluding storage reads",
		Buckets:     []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		ConstLabels: service,
	})

	m.LinesImported = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "replenishment_lines_imported_total",
		Help:      "Replenishment list rows by outcome (inserted, not_found)",
	}, []string{"service", "outcome"})

	m.LinesDivided = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   ns,
		Name:        "replenishment_lines_divided_total",
		Help:        "Replenishment lines assigned to workers",
		ConstLabels: service,
	})

	m.ItemsPicked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   ns,
		Name:        "items_picked_total",
		Help:        "Picks recorded by workers",
		ConstLabels: service,
	})

	m.CircuitBreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: ns,
		Name:      "circuit_breaker_state",
		Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"service", "name"})

	m.CircuitBreakerTrips = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of circuit breaker trips",
	}, []string{"service", "name"})

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.KafkaEventsPublished,
		m.KafkaPublishDuration,
		m.DBOperations,
		m.DBOperationDuration,
		m.CacheRequests,
		m.StockRowsLoaded,
		m.ResolutionsTotal,
		m.RequestsResolved,
		m.ResolutionDuration,
		m.LinesImported,
		m.LinesDivided,
		m.ItemsPicked,
		m.CircuitBreakerState,
		m.CircuitBreakerTrips,
	)

	return m
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments in-flight requests
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements in-flight requests
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

// RecordKafkaPublish records a Kafka publish
func (m *Metrics) RecordKafkaPublish(topic, eventType string, success bool, duration time.Duration) {
	m.KafkaEventsPublished.WithLabelValues(m.serviceName, topic, eventType, status(success)).Inc()
	m.KafkaPublishDuration.WithLabelValues(m.serviceName, topic).Observe(duration.Seconds())
}

// RecordDBOperation records a SQL statement against table
func (m *Metrics) RecordDBOperation(table, operation string, success bool, duration time.Duration) {
	m.DBOperations.WithLabelValues(m.serviceName, table, operation, status(success)).Inc()
	m.DBOperationDuration.WithLabelValues(m.serviceName, table, operation).Observe(duration.Seconds())
}

// RecordCacheRequest records a cache lookup; result is hit, miss or error
func (m *Metrics) RecordCacheRequest(cache, result string) {
	m.CacheRequests.WithLabelValues(m.serviceName, cache, result).Inc()
}

// RecordStockLoad records the outcome of a snapshot load
func (m *Metrics) RecordStockLoad(inserted, skipped int) {
	m.StockRowsLoaded.WithLabelValues(m.serviceName, "inserted").Add(float64(inserted))
	m.StockRowsLoaded.WithLabelValues(m.serviceName, "skipped").Add(float64(skipped))
}

// RecordResolution records one resolver call
func (m *Metrics) RecordResolution(resolved, unresolved int, duration time.Duration) {
	m.ResolutionsTotal.Inc()
	m.RequestsResolved.WithLabelValues(m.serviceName, "resolved").Add(float64(resolved))
	m.RequestsResolved.WithLabelValues(m.serviceName, "unresolved").Add(float64(unresolved))
	m.ResolutionDuration.Observe(duration.Seconds())
}

// RecordLinesImported records the outcome of a replenishment list import
func (m *Metrics) RecordLinesImported(inserted, notFound int) {
	m.LinesImported.WithLabelValues(m.serviceName, "inserted").Add(float64(inserted))
	m.LinesImported.WithLabelValues(m.serviceName, "not_found").Add(float64(notFound))
}

// RecordLinesDivided records lines handed out to workers
func (m *Metrics) RecordLinesDivided(count int) {
	m.LinesDivided.Add(float64(count))
}

// RecordItemPicked records a pick
func (m *Metrics) RecordItemPicked() {
	m.ItemsPicked.Inc()
}

// SetCircuitBreakerState sets the circuit breaker state
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.CircuitBreakerState.WithLabelValues(m.serviceName, name).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(name string) {
	m.CircuitBreakerTrips.WithLabelValues(m.serviceName, name).Inc()
}
