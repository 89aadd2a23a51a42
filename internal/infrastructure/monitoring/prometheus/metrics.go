package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every chemsolver metric. A nil *AppMetrics is valid and
// records nothing.
type AppMetrics struct {
	// Solver
	SolvesTotal         CounterVec
	SolveDuration       HistogramVec
	ShapesTotal         CounterVec
	FamiliesTotal       CounterVec
	BatchSize           HistogramVec
	BatchActiveWorkers  GaugeVec
	CatalogLookupsTotal CounterVec

	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Infrastructure
	CacheRequestsTotal     CounterVec
	CacheOperationDuration HistogramVec
	MessagesTotal          CounterVec
	MessageProcessDuration HistogramVec

	// System
	ServiceInfo       GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	DefaultSolveDurationBuckets = []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05}
	DefaultHTTPDurationBuckets  = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	DefaultCacheDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1}
	DefaultBatchSizeBuckets     = []float64{1, 2, 5, 10, 25, 50, 100, 250}
)

// Outcome labels shared by the Record helpers.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	CacheHit       = "hit"
	CacheMiss      = "miss"
	CacheError     = "error"
)

// NewAppMetrics registers all metrics with collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.SolvesTotal = collector.RegisterCounter("solves_total", "Formula classifications by operation and error code", "operation", "code")
	m.SolveDuration = collector.RegisterHistogram("solve_duration_seconds", "Formula classification duration", DefaultSolveDurationBuckets, "operation")
	m.ShapesTotal = collector.RegisterCounter("shapes_total", "Molecules classified per shape", "shape")
	m.FamiliesTotal = collector.RegisterCounter("families_total", "Molecules classified per compound family", "family")
	m.BatchSize = collector.RegisterHistogram("batch_size", "Formulas per batch request", DefaultBatchSizeBuckets)
	m.BatchActiveWorkers = collector.RegisterGauge("batch_active_workers", "Goroutines solving batch items")
	m.CatalogLookupsTotal = collector.RegisterCounter("catalog_lookups_total", "Element catalog queries", "kind", "status")

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests")

	m.CacheRequestsTotal = collector.RegisterCounter("cache_requests_total", "Result cache lookups by result", "result")
	m.CacheOperationDuration = collector.RegisterHistogram("cache_operation_duration_seconds", "Result cache round trips", DefaultCacheDurationBuckets, "operation")
	m.MessagesTotal = collector.RegisterCounter("messages_total", "Messages processed by topic and status", "topic", "status")
	m.MessageProcessDuration = collector.RegisterHistogram("message_process_duration_seconds", "Message handling duration", DefaultHTTPDurationBuckets, "topic")

	m.ServiceInfo = collector.RegisterGauge("service_info", "Build information, always 1", "service", "version")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component and code", "component", "code")

	return m
}

// ─────────────────────────────────────────────────────────────────────────────
// Record helpers
// ─────────────────────────────────────────────────────────────────────────────

// RecordSolve counts one classification. code is empty on success.
func (m *AppMetrics) RecordSolve(operation, code string, d time.Duration) {
	if m == nil {
		return
	}
	if code == "" {
		code = OutcomeSuccess
	}
	m.SolvesTotal.WithLabelValues(operation, code).Inc()
	m.SolveDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *AppMetrics) RecordShape(shape string) {
	if m == nil {
		return
	}
	m.ShapesTotal.WithLabelValues(shape).Inc()
}

func (m *AppMetrics) RecordFamily(family string) {
	if m == nil {
		return
	}
	m.FamiliesTotal.WithLabelValues(family).Inc()
}

func (m *AppMetrics) RecordBatch(size int) {
	if m == nil {
		return
	}
	m.BatchSize.WithLabelValues().Observe(float64(size))
}

// WorkerStarted and WorkerDone bracket one batch goroutine.
func (m *AppMetrics) WorkerStarted() {
	if m == nil {
		return
	}
	m.BatchActiveWorkers.WithLabelValues().Inc()
}

func (m *AppMetrics) WorkerDone() {
	if m == nil {
		return
	}
	m.BatchActiveWorkers.WithLabelValues().Dec()
}

func (m *AppMetrics) RecordCatalogLookup(kind string, found bool) {
	if m == nil {
		return
	}
	status := OutcomeSuccess
	if !found {
		status = OutcomeFailure
	}
	m.CatalogLookupsTotal.WithLabelValues(kind, status).Inc()
}

func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *AppMetrics) HTTPRequestStarted() {
	if m == nil {
		return
	}
	m.HTTPActiveRequests.WithLabelValues().Inc()
}

func (m *AppMetrics) HTTPRequestDone() {
	if m == nil {
		return
	}
	m.HTTPActiveRequests.WithLabelValues().Dec()
}

// RecordCacheAccess counts a lookup as CacheHit, CacheMiss or CacheError.
func (m *AppMetrics) RecordCacheAccess(result string, operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(result).Inc()
	m.CacheOperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *AppMetrics) RecordMessage(topic string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := OutcomeSuccess
	if err != nil {
		status = OutcomeFailure
	}
	m.MessagesTotal.WithLabelValues(topic, status).Inc()
	m.MessageProcessDuration.WithLabelValues(topic).Observe(d.Seconds())
}

func (m *AppMetrics) SetServiceInfo(service, version string) {
	if m == nil {
		return
	}
	m.ServiceInfo.WithLabelValues(service, version).Set(1)
}

func (m *AppMetrics) SetHealth(component string, up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

func (m *AppMetrics) RecordError(component, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

//Personal.AI order the ending
