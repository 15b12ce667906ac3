package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App               AppConfig
	DB                DBConfig
	Redis             RedisConfig
	Cart              CartConfig
	GenAI             GenAIConfig
	AdvisoryRateLimit AdvisoryRateLimitConfig
	Events            EventsConfig
	GCP               GCPConfig
	RabbitMQ          RabbitMQConfig
	FeatureFlags      FeatureFlagsConfig
	CORS              CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Events.validate(cfg.GCP, cfg.RabbitMQ); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MOBISWAP_APP_ENV" required:"true"`
	Port         string `envconfig:"MOBISWAP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MOBISWAP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MOBISWAP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MOBISWAP_DB_DSN"`
	Driver string `envconfig:"MOBISWAP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MOBISWAP_DB_HOST"`
	LegacyPort     int    `envconfig:"MOBISWAP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MOBISWAP_DB_USER"`
	LegacyPassword string `envconfig:"MOBISWAP_DB_PASSWORD"`
	LegacyName     string `envconfig:"MOBISWAP_DB_NAME"`
	LegacySSLMode  string `envconfig:"MOBISWAP_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"MOBISWAP_SQLITE_PATH" default:"mobiswap.db"`

	MaxOpenConns    int           `envconfig:"MOBISWAP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MOBISWAP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MOBISWAP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MOBISWAP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the SQLite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"MOBISWAP_REDIS_URL"`
	Address      string        `envconfig:"MOBISWAP_REDIS_ADDR"`
	Password     string        `envconfig:"MOBISWAP_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOBISWAP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOBISWAP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOBISWAP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOBISWAP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOBISWAP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOBISWAP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type CartConfig struct {
	SnapshotTTL    time.Duration `envconfig:"MOBISWAP_CART_SNAPSHOT_TTL" default:"720h"`
	SessionIdleTTL time.Duration `envconfig:"MOBISWAP_CART_SESSION_IDLE_TTL" default:"30m"`
	SweepInterval  time.Duration `envconfig:"MOBISWAP_CART_SWEEP_INTERVAL" default:"5m"`
}

type GenAIConfig struct {
	APIKey      string        `envconfig:"MOBISWAP_GENAI_API_KEY"`
	Model       string        `envconfig:"MOBISWAP_GENAI_MODEL" default:"gemini-2.0-flash"`
	Temperature float32       `envconfig:"MOBISWAP_GENAI_TEMPERATURE" default:"0.4"`
	Timeout     time.Duration `envconfig:"MOBISWAP_GENAI_TIMEOUT" default:"30s"`
}

// Enabled reports whether an API key was provided for the model host.
func (g GenAIConfig) Enabled() bool {
	return strings.TrimSpace(g.APIKey) != ""
}

type AdvisoryRateLimitConfig struct {
	Window  time.Duration `envconfig:"MOBISWAP_ADVISORY_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"MOBISWAP_ADVISORY_RATE_LIMIT_IP_LIMIT" default:"10"`

	// Number of reverse proxies whose X-Forwarded-For entries are trusted.
	TrustedProxyHops int `envconfig:"MOBISWAP_TRUSTED_PROXY_HOPS" default:"0"`
}

type EventsConfig struct {
	Backend           string `envconfig:"MOBISWAP_EVENTS_BACKEND" default:"none"`
	OrdersTopic       string `envconfig:"MOBISWAP_EVENTS_ORDERS_TOPIC" default:"ms-order-events"`
	ExchangeTopic     string `envconfig:"MOBISWAP_EVENTS_EXCHANGE_TOPIC" default:"ms-exchange-events"`
	PublishTimeoutSec int    `envconfig:"MOBISWAP_EVENTS_PUBLISH_TIMEOUT_SEC" default:"5"`
}

// PublishTimeout returns the per-publish deadline.
func (e EventsConfig) PublishTimeout() time.Duration {
	if e.PublishTimeoutSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(e.PublishTimeoutSec) * time.Second
}

// NormalizedBackend returns the lower-cased backend name, defaulting to none.
func (e EventsConfig) NormalizedBackend() string {
	backend := strings.ToLower(strings.TrimSpace(e.Backend))
	if backend == "" {
		return EventsBackendNone
	}
	return backend
}

func (e EventsConfig) validate(gcp GCPConfig, mq RabbitMQConfig) error {
	switch e.NormalizedBackend() {
	case EventsBackendNone:
		return nil
	case EventsBackendPubSub:
		if strings.TrimSpace(gcp.ProjectID) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvGCPProjectID, EnvEventsBackend, EventsBackendPubSub)
		}
		return nil
	case EventsBackendRabbitMQ:
		if strings.TrimSpace(mq.URL) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvRabbitMQURL, EnvEventsBackend, EventsBackendRabbitMQ)
		}
		return nil
	default:
		return fmt.Errorf("unsupported %s %q", EnvEventsBackend, e.Backend)
	}
}

type GCPConfig struct {
	ProjectID string `envconfig:"MOBISWAP_GCP_PROJECT_ID"`
}

type RabbitMQConfig struct {
	URL      string `envconfig:"MOBISWAP_RABBITMQ_URL"`
	PoolSize int    `envconfig:"MOBISWAP_RABBITMQ_POOL_SIZE" default:"4"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MOBISWAP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MOBISWAP_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MOBISWAP_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:9002"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DBDriverSQLite
	}
	if db.IsSQLite() {
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
