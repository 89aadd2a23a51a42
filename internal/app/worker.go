package app

import (
	"context"
	"net"
	"time"

	"github.com/turtacn/chemsolver/internal/application/solver"
	"github.com/turtacn/chemsolver/internal/config"
	"github.com/turtacn/chemsolver/internal/infrastructure/database/redis"
	"github.com/turtacn/chemsolver/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	httpapi "github.com/turtacn/chemsolver/internal/interfaces/http"
	"github.com/turtacn/chemsolver/internal/interfaces/http/handlers"
	"github.com/turtacn/chemsolver/pkg/errors"
)

const (
	claimTTL           = 10 * time.Minute
	topicReplication   = 1
	topicSetupDeadline = 30 * time.Second
)

// WorkerProcess consumes formula requests and publishes outcomes. It serves
// health and metrics on the server address.
type WorkerProcess struct {
	rt       *Runtime
	consumer *kafka.Consumer
	probes   *httpapi.Server
	logger   logging.Logger
}

// NewWorkerProcess connects the producer and the consumer and subscribes the
// solve worker to the request topic.
func NewWorkerProcess(ctx context.Context, rt *Runtime, version string) (*WorkerProcess, error) {
	cfg := rt.Config
	if !cfg.Kafka.Enabled {
		return nil, errors.New(errors.ErrCodeValidation, "worker requires kafka.enabled")
	}
	log := rt.Logger

	if cfg.Kafka.EnsureTopics {
		if err := ensureTopics(ctx, cfg.Kafka, log); err != nil {
			return nil, err
		}
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers}, log, rt.Metrics)
	if err != nil {
		return nil, err
	}
	rt.onClose(producer.Close)

	wcfg := solver.WorkerConfig{
		Solver:      rt.Solver,
		Publisher:   producer,
		ResultTopic: cfg.Kafka.ResultTopic,
		Logger:      log,
		Metrics:     rt.Metrics,
	}
	if rt.Redis != nil {
		wcfg.Claims = redis.NewJobClaims(rt.Redis, log, cfg.Redis.KeyPrefix, claimTTL)
	}
	w, err := solver.NewWorker(wcfg)
	if err != nil {
		return nil, err
	}

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
		Topics:  []string{cfg.Kafka.RequestTopic},
		RetryConfig: kafka.RetryConfig{
			MaxRetries:      cfg.Kafka.MaxRetries,
			DeadLetterTopic: cfg.Kafka.DeadLetterTopic,
		},
	}, producer, log, rt.Metrics)
	if err != nil {
		return nil, err
	}
	rt.onClose(consumer.Close)
	if err := consumer.Subscribe(cfg.Kafka.RequestTopic, w.Handle); err != nil {
		return nil, err
	}

	routes := httpapi.RouterConfig{
		HealthHandler: handlers.NewHealthHandler(version, rt.Metrics, rt.HealthCheckers()...),
		Logger:        log,
		Metrics:       rt.Metrics,
	}
	if cfg.Metrics.Enabled {
		routes.MetricsHandler = rt.Collector.Handler()
		routes.MetricsPath = cfg.Metrics.Path
	}

	return &WorkerProcess{
		rt:       rt,
		consumer: consumer,
		probes:   httpapi.NewServer(cfg.Server, httpapi.NewRouter(routes), log),
		logger:   log.Named("worker.process"),
	}, nil
}

func ensureTopics(ctx context.Context, cfg config.KafkaConfig, log logging.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, topicSetupDeadline)
	defer cancel()
	tm, err := kafka.NewTopicManager(cfg.Brokers, log)
	if err != nil {
		return err
	}
	defer tm.Close()
	return tm.EnsureTopics(ctx, kafka.SolveTopics(cfg.RequestTopic, cfg.ResultTopic, cfg.DeadLetterTopic, topicReplication))
}

// Run consumes until ctx is done. The consumer is closed by the runtime.
func (p *WorkerProcess) Run(ctx context.Context) error {
	if err := p.consumer.Start(ctx); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", p.rt.Config.Server.Address())
	if err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() { errCh <- p.probes.Serve(ln) }()

	p.logger.Info("consuming formula requests",
		logging.String("topic", p.rt.Config.Kafka.RequestTopic),
		logging.String("group", p.rt.Config.Kafka.GroupID))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := p.probes.Stop(context.Background()); err != nil {
		p.logger.Warn("probe server shutdown failed", logging.Err(err))
	}
	stats := p.consumer.Stats()
	p.logger.Info("worker stopped",
		logging.Int64("processed", stats.Processed),
		logging.Int64("failed", stats.Failed),
		logging.Int64("dead_lettered", stats.DeadLettered))
	return nil
}

// RunWorker runs the solve worker for cfg until ctx is done.
func RunWorker(ctx context.Context, cfg *config.Config, log logging.Logger, version string) error {
	rt, err := NewRuntime(cfg, log, solver.SourceWorker, version)
	if err != nil {
		return err
	}
	defer rt.Close()

	p, err := NewWorkerProcess(ctx, rt, version)
	if err != nil {
		return err
	}
	return p.Run(ctx)
}

//Personal.AI order the ending
