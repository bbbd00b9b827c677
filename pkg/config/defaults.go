package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "slotwise"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	// Scheduling policy defaults.
	DefaultMinDurationMin = 15
	DefaultMaxDurationMin = 8 * 60

	// The cancellation and reschedule deadlines share a default but are
	// deliberately independent knobs.
	DefaultCancelDeadline     = 24 * time.Hour
	DefaultRescheduleDeadline = 24 * time.Hour

	DefaultRefundTiers = "72:100,48:75,24:50,0:0"

	DefaultSlotLockTTL  = 10 * time.Second
	DefaultTxMaxRetries = 3

	DefaultKafkaEnabled            = false
	DefaultKafkaNotificationsTopic = "appointments.events"
	DefaultKafkaNotificationsDLQ   = "appointments.events.dlq"
)
