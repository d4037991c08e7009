package config

import (
	"time"

	"campushub/pkg/locale"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "campushub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultTimeZone = locale.DefaultTimezone

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotLockTTL = 10 * time.Second

	DefaultChangeTopic    = "campushub-changes"
	DefaultChangeDLQTopic = "campushub-changes-dlq"
	DefaultChangeGroupID  = "campushub-dashboard"

	DefaultAudiovisualURL = "http://localhost:8081"
	DefaultMarketingURL   = "http://localhost:8082"
	DefaultCerimonialURL  = "http://localhost:8083"

	DefaultLogLevel = "info"

	DefaultPaginationLimit = 100
)
