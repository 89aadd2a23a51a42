// Package app assembles chemsolver processes from configuration. The API
// server, the worker and the CLI build their dependencies here.
package app

import (
	"context"
	"net"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/chemsolver/internal/application/solver"
	"github.com/turtacn/chemsolver/internal/config"
	"github.com/turtacn/chemsolver/internal/domain/locale"
	"github.com/turtacn/chemsolver/internal/infrastructure/database/redis"
	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/chemsolver/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/chemsolver/internal/interfaces/http/handlers"
	"github.com/turtacn/chemsolver/pkg/errors"
)

// NewLogger builds the process logger from the log section.
func NewLogger(cfg config.LogConfig) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:       cfg.Level,
		Format:      cfg.Format,
		OutputPaths: cfg.OutputPaths,
	})
}

// Runtime holds the dependencies shared by every chemsolver process.
type Runtime struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector metrics.MetricsCollector
	Metrics   *metrics.AppMetrics
	Solver    *solver.Solver
	// Redis is nil unless redis.enabled is set.
	Redis *redis.Client

	closers []func() error
}

// NewRuntime wires metrics, the optional redis result cache and the solver.
// service names the process in the service_info metric.
func NewRuntime(cfg *config.Config, log logging.Logger, service, version string) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.InvalidParam("config is required")
	}
	log = logging.OrNop(log)
	rt := &Runtime{Config: cfg, Logger: log}

	rt.Collector = metrics.NewNoopCollector()
	if cfg.Metrics.Enabled {
		c, err := metrics.NewMetricsCollector(metrics.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, log)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "metrics collector init failed")
		}
		rt.Collector = c
	}
	rt.Metrics = metrics.NewAppMetrics(rt.Collector)
	rt.Metrics.SetServiceInfo(service, version)

	tag, err := locale.Parse(cfg.Solver.Locale)
	if err != nil {
		return nil, err
	}
	opts := []solver.Option{
		solver.WithLogger(log),
		solver.WithMetrics(rt.Metrics),
		solver.WithLocale(tag),
		solver.WithMaxAtoms(cfg.Solver.MaxAtoms),
		solver.WithBatchLimits(cfg.Solver.BatchWorkers, cfg.Solver.MaxBatchSize),
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(redis.ClientConfig{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		rt.Redis = client
		rt.onClose(client.Close)
		opts = append(opts, solver.WithCache(redis.NewResultCache(client, log,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithCompression(cfg.Redis.Compress),
			redis.WithMetrics(rt.Metrics),
		)))
	}

	rt.Solver = solver.New(opts...)
	return rt, nil
}

func (r *Runtime) onClose(fn func() error) {
	r.closers = append(r.closers, fn)
}

// Reload applies the settings that may change while running: the log level
// and the default locale.
func (r *Runtime) Reload(next *config.Config) {
	if ls, ok := r.Logger.(logging.LevelSetter); ok {
		if err := ls.SetLevel(next.Log.Level); err != nil {
			r.Logger.Warn("log level not applied", logging.String("level", next.Log.Level), logging.Err(err))
		}
	}
	if tag, err := locale.Parse(next.Solver.Locale); err == nil {
		r.Solver.SetLocale(tag)
	}
	r.Logger.Info("configuration reloaded",
		logging.String("log_level", next.Log.Level),
		logging.String("locale", next.Solver.Locale))
}

// HealthCheckers returns a readiness probe per enabled dependency.
func (r *Runtime) HealthCheckers() []handlers.HealthChecker {
	var checks []handlers.HealthChecker
	if r.Redis != nil {
		checks = append(checks, handlers.CheckFunc{Component: "redis", Fn: r.Redis.Ping})
	}
	if r.Config.Kafka.Enabled {
		brokers := r.Config.Kafka.Brokers
		checks = append(checks, handlers.CheckFunc{Component: "kafka", Fn: func(ctx context.Context) error {
			return pingKafka(ctx, brokers)
		}})
	}
	return checks
}

// pingKafka succeeds when any broker accepts a connection.
func pingKafka(ctx context.Context, brokers []string) error {
	var last error
	for _, b := range brokers {
		conn, err := (&kafka.Dialer{Timeout: 2 * time.Second}).DialContext(ctx, "tcp", b)
		if err != nil {
			last = err
			continue
		}
		_ = conn.Close()
		return nil
	}
	if last == nil {
		last = &net.AddrError{Err: "no brokers configured"}
	}
	return errors.Wrap(last, errors.ErrCodeServiceUnavailable, "kafka unreachable")
}

// Close releases dependencies in reverse order of creation.
func (r *Runtime) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

//Personal.AI order the ending
