// Worker entry point for chemsolver: consumes formula requests from Kafka and
// publishes solved outcomes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/turtacn/chemsolver/internal/app"
	"github.com/turtacn/chemsolver/internal/config"
	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	brokers := flag.String("brokers", "", "comma-separated Kafka brokers (overrides config)")
	probePort := flag.Int("probe-port", 0, "health and metrics port (overrides server.port)")
	flag.Parse()

	cfg, err := config.LoadOrEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.Kafka.Enabled = true
	if *brokers != "" {
		cfg.Kafka.Brokers = strings.Split(*brokers, ",")
		for i := range cfg.Kafka.Brokers {
			cfg.Kafka.Brokers[i] = strings.TrimSpace(cfg.Kafka.Brokers[i])
		}
	}
	if *probePort > 0 {
		cfg.Server.Port = *probePort
	}

	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	logger.Info("starting chemsolver worker",
		logging.String("version", version),
		logging.String("brokers", strings.Join(cfg.Kafka.Brokers, ",")),
		logging.Bool("claims", cfg.Redis.Enabled))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx, cfg, logger, version); err != nil {
		logger.Fatal("worker failed", logging.Err(err))
	}
}

//Personal.AI order the ending
