package app

import (
	"context"
	"net"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/chemsolver/internal/application/solver"
	"github.com/turtacn/chemsolver/internal/config"
	"github.com/turtacn/chemsolver/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	httpapi "github.com/turtacn/chemsolver/internal/interfaces/http"
	"github.com/turtacn/chemsolver/internal/interfaces/http/handlers"
	"github.com/turtacn/chemsolver/internal/interfaces/http/middleware"
)

const (
	limiterSweepInterval = time.Minute
	limiterIdle          = 10 * time.Minute
)

// APIServerOption customizes NewAPIServer.
type APIServerOption func(*apiServerOptions)

type apiServerOptions struct {
	publisher kafka.Publisher
}

// WithPublisher replaces the kafka producer behind POST /jobs.
func WithPublisher(p kafka.Publisher) APIServerOption {
	return func(o *apiServerOptions) { o.publisher = p }
}

// APIServer is the REST API process.
type APIServer struct {
	rt      *Runtime
	server  *httpapi.Server
	limiter *middleware.TokenBucketLimiter
	logger  logging.Logger
}

// NewAPIServer builds the router and HTTP server on top of rt. The job
// endpoint is mounted only when kafka is enabled.
func NewAPIServer(rt *Runtime, version string, opts ...APIServerOption) (*APIServer, error) {
	var o apiServerOptions
	for _, opt := range opts {
		opt(&o)
	}
	cfg := rt.Config
	gin.SetMode(cfg.Server.Mode)

	s := &APIServer{rt: rt, logger: rt.Logger.Named("apiserver")}
	routes := httpapi.RouterConfig{
		SolveHandler:   handlers.NewSolveHandler(rt.Solver),
		CatalogHandler: handlers.NewCatalogHandler(rt.Solver),
		HealthHandler:  handlers.NewHealthHandler(version, rt.Metrics, rt.HealthCheckers()...),
		Logger:         rt.Logger,
		Metrics:        rt.Metrics,
	}
	if cfg.Metrics.Enabled {
		routes.MetricsHandler = rt.Collector.Handler()
		routes.MetricsPath = cfg.Metrics.Path
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = cfg.Server.AllowedOrigins
		routes.CORS = &cors
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = middleware.NewTokenBucketLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
		routes.RateLimiter = s.limiter
	}

	if cfg.Kafka.Enabled {
		pub := o.publisher
		if pub == nil {
			producer, err := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers}, rt.Logger, rt.Metrics)
			if err != nil {
				return nil, err
			}
			rt.onClose(producer.Close)
			pub = producer
		}
		routes.JobHandler = handlers.NewJobHandler(solver.NewJobSubmitter(pub, cfg.Kafka.RequestTopic, rt.Logger))
	}

	s.server = httpapi.NewServer(cfg.Server, httpapi.NewRouter(routes), rt.Logger)
	return s, nil
}

// Server exposes the underlying HTTP server.
func (s *APIServer) Server() *httpapi.Server { return s.server }

// Run listens on the configured address until ctx is done.
func (s *APIServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.rt.Config.Server.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *APIServer) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.server.Serve(ln) }()
	if s.limiter != nil {
		go s.sweepLimiter(ctx)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := s.server.Stop(context.Background()); err != nil {
		s.logger.Error("graceful shutdown failed", logging.Err(err))
		return err
	}
	return <-errCh
}

func (s *APIServer) sweepLimiter(ctx context.Context) {
	t := time.NewTicker(limiterSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.limiter.Sweep(limiterIdle); n > 0 {
				s.logger.Debug("rate limiter swept", logging.Int("clients", n))
			}
		}
	}
}

// ServeAPI runs the API server for cfg until ctx is done. When configPath is
// set the file is watched and runtime-safe settings are reloaded.
func ServeAPI(ctx context.Context, configPath string, cfg *config.Config, log logging.Logger, version string) error {
	rt, err := NewRuntime(cfg, log, solver.SourceAPI, version)
	if err != nil {
		return err
	}
	defer rt.Close()

	if configPath != "" {
		if _, err := config.Watch(configPath, rt.Reload, func(err error) {
			rt.Logger.Warn("ignoring invalid configuration change", logging.Err(err))
		}); err != nil {
			rt.Logger.Warn("config watch disabled", logging.Err(err))
		}
	}

	srv, err := NewAPIServer(rt, version)
	if err != nil {
		return err
	}
	rt.Logger.Info("starting chemsolver api",
		logging.String("version", version),
		logging.String("addr", cfg.Server.Address()),
		logging.Bool("cache", rt.Redis != nil),
		logging.Bool("jobs", cfg.Kafka.Enabled))
	return srv.Run(ctx)
}

//Personal.AI order the ending
