package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"slotwise/pkg/client"
	"slotwise/pkg/logger"
	"slotwise/pkg/model"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Scheduling policy. Duration bounds are wall-clock minutes; the cancel
	// and reschedule deadlines are intentionally independent values.
	MinDurationMin     int
	MaxDurationMin     int
	CancelDeadline     time.Duration
	RescheduleDeadline time.Duration
	RefundPolicy       model.CancellationPolicy

	SlotLockTTL  time.Duration
	TxMaxRetries int

	KafkaEnabled            bool
	KafkaNotificationsTopic string
	KafkaNotificationsDLQ   string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// Best-effort .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	tiers, err := ParseRefundTiers(getEnvStr(EnvRefundTiers, DefaultRefundTiers))

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		MinDurationMin:     getEnvNum(EnvMinDurationMin, DefaultMinDurationMin),
		MaxDurationMin:     getEnvNum(EnvMaxDurationMin, DefaultMaxDurationMin),
		CancelDeadline:     getEnvDuration(EnvCancelDeadline, DefaultCancelDeadline),
		RescheduleDeadline: getEnvDuration(EnvRescheduleDeadline, DefaultRescheduleDeadline),
		RefundPolicy:       tiers,

		SlotLockTTL:  getEnvDuration(EnvSlotLockTTL, DefaultSlotLockTTL),
		TxMaxRetries: getEnvNum(EnvTxMaxRetries, DefaultTxMaxRetries),

		KafkaEnabled:            getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaNotificationsTopic: getEnvStr(EnvKafkaNotificationsTopic, DefaultKafkaNotificationsTopic),
		KafkaNotificationsDLQ:   getEnvStr(EnvKafkaNotificationsDLQ, DefaultKafkaNotificationsDLQ),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err != nil {
		cfg.Log.Fatal("Invalid refund tier table", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// ParseRefundTiers parses a "hours:percent,hours:percent,..." table.
func ParseRefundTiers(s string) (model.CancellationPolicy, error) {
	var policy model.CancellationPolicy

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.SplitN(part, ":", 2)
		if len(fields) != 2 {
			return policy, fmt.Errorf("malformed refund tier %q, expected hours:percent", part)
		}
		hours, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || hours < 0 {
			return policy, fmt.Errorf("malformed refund tier hours in %q", part)
		}
		percent, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || percent < 0 || percent > 100 {
			return policy, fmt.Errorf("refund percent in %q must be 0-100", part)
		}
		policy.Tiers = append(policy.Tiers, model.RefundTier{
			HoursBefore:   hours,
			RefundPercent: percent,
		})
	}

	if len(policy.Tiers) == 0 {
		return policy, fmt.Errorf("refund tier table cannot be empty")
	}
	return policy, nil
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.MinDurationMin <= 0 {
		errors = append(errors, fmt.Sprintf("MinDurationMin must be positive, got: %d", cfg.MinDurationMin))
	}
	if cfg.MaxDurationMin < cfg.MinDurationMin {
		errors = append(errors, fmt.Sprintf("MaxDurationMin (%d) must be >= MinDurationMin (%d)", cfg.MaxDurationMin, cfg.MinDurationMin))
	}
	if cfg.CancelDeadline < 0 {
		errors = append(errors, fmt.Sprintf("CancelDeadline cannot be negative, got: %s", cfg.CancelDeadline))
	}
	if cfg.RescheduleDeadline < 0 {
		errors = append(errors, fmt.Sprintf("RescheduleDeadline cannot be negative, got: %s", cfg.RescheduleDeadline))
	}
	if cfg.SlotLockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("SlotLockTTL must be positive, got: %s", cfg.SlotLockTTL))
	}
	if cfg.TxMaxRetries <= 0 {
		errors = append(errors, fmt.Sprintf("TxMaxRetries must be positive, got: %d", cfg.TxMaxRetries))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"min_duration_min", cfg.MinDurationMin,
		"max_duration_min", cfg.MaxDurationMin,
		"cancel_deadline", cfg.CancelDeadline,
		"reschedule_deadline", cfg.RescheduleDeadline,
		"refund_tiers", len(cfg.RefundPolicy.Tiers),
		"slot_lock_ttl", cfg.SlotLockTTL,
		"tx_max_retries", cfg.TxMaxRetries,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_notifications_topic", cfg.KafkaNotificationsTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
