package config

// EnvPrefix is handed to envconfig; every field carries its full name in the tag.
const EnvPrefix = "MOBISWAP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	EventsBackendNone     = "none"
	EventsBackendPubSub   = "pubsub"
	EventsBackendRabbitMQ = "rabbitmq"
)

const (
	EnvAppEnv        = "MOBISWAP_APP_ENV"
	EnvPort          = "MOBISWAP_APP_PORT"
	EnvDBDSN         = "MOBISWAP_DB_DSN"
	EnvDBDriver      = "MOBISWAP_DB_DRIVER"
	EnvDBHost        = "MOBISWAP_DB_HOST"
	EnvDBUser        = "MOBISWAP_DB_USER"
	EnvDBName        = "MOBISWAP_DB_NAME"
	EnvRedisURL      = "MOBISWAP_REDIS_URL"
	EnvUseSQLite     = "MOBISWAP_USE_SQLITE"
	EnvGenAIAPIKey   = "MOBISWAP_GENAI_API_KEY"
	EnvEventsBackend = "MOBISWAP_EVENTS_BACKEND"
	EnvGCPProjectID  = "MOBISWAP_GCP_PROJECT_ID"
	EnvRabbitMQURL   = "MOBISWAP_RABBITMQ_URL"
	EnvCartTTL       = "MOBISWAP_CART_SNAPSHOT_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
