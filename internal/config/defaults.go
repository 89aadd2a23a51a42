package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/turtacn/chemsolver/internal/domain/formula"
	"github.com/turtacn/chemsolver/internal/domain/locale"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 10 * time.Second
	DefaultServerWriteTimeout    = 10 * time.Second
	DefaultServerShutdownTimeout = 15 * time.Second
	DefaultServerRateBurst       = 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultSolverLocale       = string(locale.Default)
	DefaultSolverMaxAtoms     = formula.DefaultMaxAtoms
	DefaultSolverBatchWorkers = 8
	DefaultSolverMaxBatchSize = 256

	DefaultRedisAddr        = "localhost:6379"
	DefaultRedisPoolSize    = 10
	DefaultRedisKeyPrefix   = "chemsolver:"
	DefaultRedisTTL         = 24 * time.Hour
	DefaultRedisDialTimeout = 5 * time.Second

	DefaultKafkaBroker          = "localhost:9092"
	DefaultKafkaGroupID         = "chemsolver-worker"
	DefaultKafkaRequestTopic    = "chemsolver.formula.requested"
	DefaultKafkaResultTopic     = "chemsolver.formula.solved"
	DefaultKafkaDeadLetterTopic = "chemsolver.formula.dead_letter"
	DefaultKafkaMaxRetries      = 3

	DefaultMetricsNamespace = "chemsolver"
	DefaultMetricsPath      = "/metrics"
)

// ApplyDefaults fills every zero-value field in cfg. Fields already set are
// left unchanged. Booleans are not touched here; their defaults come from
// setViperDefaults.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = DefaultServerRateBurst
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}

	// ── Solver ────────────────────────────────────────────────────────────────
	if cfg.Solver.Locale == "" {
		cfg.Solver.Locale = DefaultSolverLocale
	}
	if cfg.Solver.MaxAtoms == 0 {
		cfg.Solver.MaxAtoms = DefaultSolverMaxAtoms
	}
	if cfg.Solver.BatchWorkers == 0 {
		cfg.Solver.BatchWorkers = DefaultSolverBatchWorkers
	}
	if cfg.Solver.MaxBatchSize == 0 {
		cfg.Solver.MaxBatchSize = DefaultSolverMaxBatchSize
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = DefaultRedisTTL
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisDialTimeout
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.RequestTopic == "" {
		cfg.Kafka.RequestTopic = DefaultKafkaRequestTopic
	}
	if cfg.Kafka.ResultTopic == "" {
		cfg.Kafka.ResultTopic = DefaultKafkaResultTopic
	}
	if cfg.Kafka.DeadLetterTopic == "" {
		cfg.Kafka.DeadLetterTopic = DefaultKafkaDeadLetterTopic
	}
	if cfg.Kafka.MaxRetries == 0 {
		cfg.Kafka.MaxRetries = DefaultKafkaMaxRetries
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

// setViperDefaults registers every key with viper. Registration is what lets
// AutomaticEnv resolve CHEMSOLVER_* variables during Unmarshal.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.rate_limit", 0.0)
	v.SetDefault("server.rate_burst", DefaultServerRateBurst)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{"stdout"})

	v.SetDefault("solver.locale", DefaultSolverLocale)
	v.SetDefault("solver.max_atoms", DefaultSolverMaxAtoms)
	v.SetDefault("solver.batch_workers", DefaultSolverBatchWorkers)
	v.SetDefault("solver.max_batch_size", DefaultSolverMaxBatchSize)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", DefaultRedisPoolSize)
	v.SetDefault("redis.key_prefix", DefaultRedisKeyPrefix)
	v.SetDefault("redis.ttl", DefaultRedisTTL)
	v.SetDefault("redis.compress", true)
	v.SetDefault("redis.dial_timeout", DefaultRedisDialTimeout)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{DefaultKafkaBroker})
	v.SetDefault("kafka.group_id", DefaultKafkaGroupID)
	v.SetDefault("kafka.request_topic", DefaultKafkaRequestTopic)
	v.SetDefault("kafka.result_topic", DefaultKafkaResultTopic)
	v.SetDefault("kafka.dead_letter_topic", DefaultKafkaDeadLetterTopic)
	v.SetDefault("kafka.max_retries", DefaultKafkaMaxRetries)
	v.SetDefault("kafka.ensure_topics", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.path", DefaultMetricsPath)
}

//Personal.AI order the ending
