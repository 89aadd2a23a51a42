package app

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chemsolver/internal/config"
	"github.com/turtacn/chemsolver/internal/domain/locale"
	"github.com/turtacn/chemsolver/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/chemsolver/internal/testutil"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
	"github.com/turtacn/chemsolver/pkg/types/common"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Server.Mode = gin.TestMode
	cfg.Server.Host = "127.0.0.1"
	return cfg
}

type capturePublisher struct {
	mu   sync.Mutex
	msgs []*common.ProducerMessage
}

func (p *capturePublisher) Publish(_ context.Context, m *common.ProducerMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, m)
	return nil
}

func TestNewRuntime_WithoutDependencies(t *testing.T) {
	cfg := testConfig()
	cfg.Solver.Locale = "it"

	rt, err := NewRuntime(cfg, nil, "test", "v0")
	require.NoError(t, err)
	defer rt.Close()

	assert.Nil(t, rt.Redis)
	assert.Empty(t, rt.HealthCheckers())
	assert.Equal(t, locale.Italian, rt.Solver.Locale())

	res, err := rt.Solver.Solve(context.Background(), chemistry.SolveRequest{Formula: "C,O2"})
	require.NoError(t, err)
	assert.Equal(t, "line", res.Shape)
	assert.False(t, res.Cached)
}

func TestNewRuntime_NilConfig(t *testing.T) {
	_, err := NewRuntime(nil, nil, "test", "v0")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestNewRuntime_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()

	rt, err := NewRuntime(cfg, nil, "test", "v0")
	require.NoError(t, err)
	require.NotNil(t, rt.Redis)

	ctx := context.Background()
	_, err = rt.Solver.Solve(ctx, chemistry.SolveRequest{Formula: "H2,O"})
	require.NoError(t, err)
	again, err := rt.Solver.Solve(ctx, chemistry.SolveRequest{Formula: "H2,O"})
	require.NoError(t, err)
	assert.True(t, again.Cached)

	checks := rt.HealthCheckers()
	require.Len(t, checks, 1)
	assert.Equal(t, "redis", checks[0].Name())
	assert.NoError(t, checks[0].Check(ctx))

	require.NoError(t, rt.Close())
	assert.Error(t, checks[0].Check(ctx))
}

func TestNewRuntime_RedisUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.Redis.DialTimeout = 200 * time.Millisecond

	_, err := NewRuntime(cfg, nil, "test", "v0")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheUnavailable))
}

func TestRuntime_Reload(t *testing.T) {
	log := testutil.NewMockLogger()
	rt, err := NewRuntime(testConfig(), log, "test", "v0")
	require.NoError(t, err)

	next := testConfig()
	next.Solver.Locale = "it"
	rt.Reload(next)
	assert.Equal(t, locale.Italian, rt.Solver.Locale())
	assert.True(t, log.HasMessage("info", "configuration reloaded"))

	next.Solver.Locale = "xx"
	rt.Reload(next)
	assert.Equal(t, locale.Italian, rt.Solver.Locale())
}

func TestPingKafka_NoBrokers(t *testing.T) {
	err := pingKafka(context.Background(), nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
}

// ─────────────────────────────────────────────────────────────────────────────
// API server
// ─────────────────────────────────────────────────────────────────────────────

func startAPI(t *testing.T, cfg *config.Config, opts ...APIServerOption) (string, context.CancelFunc, chan error) {
	t.Helper()
	rt, err := NewRuntime(cfg, nil, "test", "v1.0.0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	srv, err := NewAPIServer(rt, "v1.0.0", opts...)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()
	return "http://" + ln.Addr().String(), cancel, done
}

func TestAPIServer_ServesAndShutsDown(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = true
	base, cancel, done := startAPI(t, cfg)

	resp, err := http.Post(base+"/api/v1/solve", "application/json", strings.NewReader(`{"formula":"N,H3","lang":"it"}`))
	require.NoError(t, err)
	var body struct {
		Success bool                  `json:"success"`
		Data    chemistry.SolveResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.True(t, body.Success)
	assert.Equal(t, "Piramide", body.Data.ShapeName)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(raw), `chemsolver_service_info`)

	resp, err = http.Post(base+"/api/v1/jobs", "application/json", strings.NewReader(`{"formula":"C,O2"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestAPIServer_JobsWithKafka(t *testing.T) {
	cfg := testConfig()
	cfg.Kafka.Enabled = true
	cfg.Server.RateLimit = 100
	pub := &capturePublisher{}
	base, cancel, _ := startAPI(t, cfg, WithPublisher(pub))
	defer cancel()

	resp, err := http.Post(base+"/api/v1/jobs", "application/json", strings.NewReader(`{"formula":"C,O2"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Limit"))

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, config.DefaultKafkaRequestTopic, pub.msgs[0].Topic)
	assert.Equal(t, kafka.EventFormulaRequested, pub.msgs[0].Headers[kafka.HeaderEventType])
}

func TestNewWorkerProcess_RequiresKafka(t *testing.T) {
	rt, err := NewRuntime(testConfig(), nil, "test", "v0")
	require.NoError(t, err)
	_, err = NewWorkerProcess(context.Background(), rt, "v0")
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

//Personal.AI order the ending
