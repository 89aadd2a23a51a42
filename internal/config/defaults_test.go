package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/chemsolver/internal/config"
)

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, "en", cfg.Solver.Locale)
	assert.Equal(t, 64, cfg.Solver.MaxAtoms)
	assert.Equal(t, config.DefaultSolverBatchWorkers, cfg.Solver.BatchWorkers)
	assert.Equal(t, []string{config.DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, "chemsolver.formula.requested", cfg.Kafka.RequestTopic)
	assert.Equal(t, "chemsolver.formula.solved", cfg.Kafka.ResultTopic)
	assert.Equal(t, "chemsolver.formula.dead_letter", cfg.Kafka.DeadLetterTopic)
	assert.Equal(t, config.DefaultRedisTTL, cfg.Redis.TTL)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Server.Port = 9999
	cfg.Solver.Locale = "it"
	cfg.Redis.KeyPrefix = "x:"
	config.ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "it", cfg.Solver.Locale)
	assert.Equal(t, "x:", cfg.Redis.KeyPrefix)
}

func TestApplyDefaults_Nil(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { config.ApplyDefaults(nil) })
}

//Personal.AI order the ending
