package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMapsAPIKey         = "MAPS_API_KEY"
	EnvGeolocationTimeout = "GEOLOCATION_TIMEOUT"
	EnvLocationMaxAge     = "LOCATION_MAX_AGE"

	EnvReminderInterval  = "REMINDER_INTERVAL"
	EnvReminderLeadTime  = "REMINDER_LEAD_TIME"
	EnvReminderTolerance = "REMINDER_TOLERANCE"

	EnvSMTPHost     = "SMTP_HOST"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPUsername = "SMTP_USERNAME"
	EnvSMTPPassword = "SMTP_PASSWORD"
	EnvSMTPFrom     = "SMTP_FROM"

	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvKafkaReminderTopic = "KAFKA_REMINDER_TOPIC"
)
