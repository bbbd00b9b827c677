package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMinDurationMin     = "MIN_APPOINTMENT_DURATION_MIN"
	EnvMaxDurationMin     = "MAX_APPOINTMENT_DURATION_MIN"
	EnvCancelDeadline     = "CANCEL_DEADLINE"
	EnvRescheduleDeadline = "RESCHEDULE_DEADLINE"
	EnvRefundTiers        = "REFUND_TIERS"

	EnvSlotLockTTL  = "SLOT_LOCK_TTL"
	EnvTxMaxRetries = "TX_MAX_RETRIES"

	EnvKafkaEnabled            = "KAFKA_ENABLED"
	EnvKafkaNotificationsTopic = "KAFKA_NOTIFICATIONS_TOPIC"
	EnvKafkaNotificationsDLQ   = "KAFKA_NOTIFICATIONS_DLQ_TOPIC"
)
