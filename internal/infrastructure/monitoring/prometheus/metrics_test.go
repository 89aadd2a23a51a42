package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	t.Helper()
	c := newTestCollector(t)
	m := NewAppMetrics(c)
	require.NotNil(t, m)
	return m, c
}

func TestNewAppMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestAppMetrics(t)

	assert.NotNil(t, m.SolvesTotal)
	assert.NotNil(t, m.SolveDuration)
	assert.NotNil(t, m.ShapesTotal)
	assert.NotNil(t, m.FamiliesTotal)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.CacheRequestsTotal)
	assert.NotNil(t, m.MessagesTotal)
	assert.NotNil(t, m.ErrorsTotal)
}

func TestRecordSolve(t *testing.T) {
	m, c := newTestAppMetrics(t)
	m.RecordSolve("shape", "", time.Millisecond)
	m.RecordSolve("shape", "MOL_001", time.Millisecond)
	m.RecordShape("line")
	m.RecordFamily("anhydride")

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_solves_total{code="success",operation="shape"} 1`)
	assert.Contains(t, out, `test_unit_solves_total{code="MOL_001",operation="shape"} 1`)
	assert.Contains(t, out, `test_unit_solve_duration_seconds_count{operation="shape"} 2`)
	assert.Contains(t, out, `test_unit_shapes_total{shape="line"} 1`)
	assert.Contains(t, out, `test_unit_families_total{family="anhydride"} 1`)
}

func TestRecordBatchAndWorkers(t *testing.T) {
	m, c := newTestAppMetrics(t)
	m.RecordBatch(3)
	m.WorkerStarted()
	m.WorkerStarted()
	m.WorkerDone()

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, "test_unit_batch_size_count 1")
	assert.Contains(t, out, "test_unit_batch_active_workers 1")
}

func TestRecordHTTPRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)
	m.HTTPRequestStarted()
	m.RecordHTTPRequest("POST", "/api/v1/solve", 422, 2*time.Millisecond)
	m.HTTPRequestDone()

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_http_requests_total{method="POST",path="/api/v1/solve",status_code="422"} 1`)
	assert.Contains(t, out, "test_unit_http_active_requests 0")
}

func TestRecordInfrastructure(t *testing.T) {
	m, c := newTestAppMetrics(t)
	m.RecordCacheAccess(CacheHit, "get", time.Millisecond)
	m.RecordCacheAccess(CacheMiss, "get", time.Millisecond)
	m.RecordMessage("chemsolver.formula.requested", nil, time.Millisecond)
	m.RecordMessage("chemsolver.formula.requested", errors.New("boom"), time.Millisecond)
	m.RecordCatalogLookup("element", false)
	m.RecordError("cache", "CACHE_002")
	m.SetHealth("redis", true)
	m.SetServiceInfo("apiserver", "dev")

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_cache_requests_total{result="hit"} 1`)
	assert.Contains(t, out, `test_unit_cache_requests_total{result="miss"} 1`)
	assert.Contains(t, out, `test_unit_messages_total{status="failure",topic="chemsolver.formula.requested"} 1`)
	assert.Contains(t, out, `test_unit_messages_total{status="success",topic="chemsolver.formula.requested"} 1`)
	assert.Contains(t, out, `test_unit_catalog_lookups_total{kind="element",status="failure"} 1`)
	assert.Contains(t, out, `test_unit_errors_total{code="CACHE_002",component="cache"} 1`)
	assert.Contains(t, out, `test_unit_health_check_status{component="redis"} 1`)
	assert.Contains(t, out, `test_unit_service_info{service="apiserver",version="dev"} 1`)
}

func TestNilAppMetrics_IsSafe(t *testing.T) {
	var m *AppMetrics
	assert.NotPanics(t, func() {
		m.RecordSolve("shape", "", time.Millisecond)
		m.RecordShape("line")
		m.RecordFamily("oxoacid")
		m.RecordBatch(1)
		m.WorkerStarted()
		m.WorkerDone()
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
		m.HTTPRequestStarted()
		m.HTTPRequestDone()
		m.RecordCacheAccess(CacheHit, "get", 0)
		m.RecordMessage("t", nil, 0)
		m.RecordCatalogLookup("element", true)
		m.SetServiceInfo("s", "v")
		m.SetHealth("c", false)
		m.RecordError("c", "x")
	})
}

func TestAppMetrics_OnNoopCollector(t *testing.T) {
	m := NewAppMetrics(NewNoopCollector())
	assert.NotPanics(t, func() { m.RecordSolve("compound", "", time.Millisecond) })
}

//Personal.AI order the ending
