package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvTimeZone = "TIME_ZONE"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotLockTTL = "SLOT_LOCK_TTL"

	EnvChangeTopic    = "CHANGE_TOPIC"
	EnvChangeDLQTopic = "CHANGE_DLQ_TOPIC"
	EnvChangeGroupID  = "CHANGE_GROUP_ID"

	EnvAudiovisualURL = "AUDIOVISUAL_URL"
	EnvMarketingURL   = "MARKETING_URL"
	EnvCerimonialURL  = "CERIMONIAL_URL"
)
