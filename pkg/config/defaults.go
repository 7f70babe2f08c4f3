package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "petzify"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Device fixes are requested fresh every time with a hard bound.
	DefaultGeolocationTimeout = 10 * time.Second
	// A resolved location older than this is re-acquired from the next tier.
	DefaultLocationMaxAge = 30 * time.Minute

	DefaultReminderInterval  = 5 * time.Minute
	DefaultReminderLeadTime  = 30 * time.Minute
	DefaultReminderTolerance = 5 * time.Minute

	DefaultSMTPPort = 587

	DefaultKafkaReminderTopic = "appointment-reminders"

	DefaultPaginationLimit = 100
)
