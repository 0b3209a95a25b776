package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	Discord  DiscordConfig
	Database DatabaseConfig
	Cache    CacheConfig
	EventLog EventLogConfig

	HTTPPort    int    `envconfig:"HTTP_PORT" default:"8080" validate:"min=1,max=65535"`
	APIKey      string `envconfig:"API_KEY" validate:"required"` // API key for the lookup endpoints
	API         APIConfig
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error DEBUG INFO WARN ERROR"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	LogDir      string `envconfig:"LOG_DIR" default:"logs"` // empty logs to stdout only
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"phoenix-bot"`
	Version     string `envconfig:"VERSION" default:"dev"`
}

// DiscordConfig holds bot credentials
type DiscordConfig struct {
	Token string `envconfig:"DISCORD_TOKEN" validate:"required"`
	AppID string `envconfig:"DISCORD_APP_ID" validate:"required"`
	// GuildID registers commands to one guild when set, globally otherwise
	GuildID            string `envconfig:"DISCORD_GUILD_ID"`
	ForceCommandUpdate bool   `envconfig:"DISCORD_FORCE_COMMAND_UPDATE" default:"false"`
}

// DatabaseConfig holds the Postgres connection settings
type DatabaseConfig struct {
	User            string        `envconfig:"DB_USER" default:"postgres" validate:"required"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Host            string        `envconfig:"DB_HOST" default:"localhost" validate:"required"`
	Port            string        `envconfig:"DB_PORT" default:"5432" validate:"required,numeric"`
	Name            string        `envconfig:"DB_NAME" default:"phoenixbot" validate:"required"`
	MaxConns        int           `envconfig:"DB_MAX_CONNS" default:"20" validate:"min=1"`
	MaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE" default:"5m"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// APIConfig bounds clients of the guild API
type APIConfig struct {
	// TrustedProxies are the proxy addresses whose X-Forwarded-For is believed
	TrustedProxies []string      `envconfig:"API_TRUSTED_PROXIES"`
	RateLimit      int           `envconfig:"API_RATE_LIMIT" default:"1000" validate:"min=1"`
	RateWindow     time.Duration `envconfig:"API_RATE_WINDOW" default:"5m" validate:"gt=0"`
}

// CacheConfig sizes the guild settings cache
type CacheConfig struct {
	Size int           `envconfig:"CACHE_SIZE" default:"1000" validate:"min=1"`
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"5m" validate:"gt=0"`
}

// EventLogConfig controls persistence and retention of the regear history table
type EventLogConfig struct {
	RetentionDays   int           `envconfig:"EVENT_LOG_RETENTION_DAYS" default:"90" validate:"min=1"`
	CleanupInterval time.Duration `envconfig:"EVENT_LOG_CLEANUP_INTERVAL" default:"24h" validate:"gt=0"`
	Workers         int           `envconfig:"WORKER_POOL_SIZE" default:"2" validate:"min=1"`

	// Failed history appends are retried with exponential backoff, then written to DeadLetterPath
	PublishRetries int           `envconfig:"EVENT_LOG_PUBLISH_RETRIES" default:"3" validate:"min=0,max=10"`
	RetryDelay     time.Duration `envconfig:"EVENT_LOG_RETRY_DELAY" default:"2s" validate:"gt=0"`
	DeadLetterPath string        `envconfig:"EVENT_LOG_DEAD_LETTER_PATH" default:"logs/event-deadletter.jsonl" validate:"required"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Warnings reports non-fatal problems such as example secrets left in place
func (c *Config) Warnings() []string {
	var warnings []string

	if c.Database.Password == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if c.Environment == EnvironmentProduction && c.Discord.ForceCommandUpdate {
		warnings = append(warnings, "DISCORD_FORCE_COMMAND_UPDATE is enabled in production - every restart re-registers commands")
	}

	return warnings
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return c.Database.ConnString(c.Database.Name)
}

// ConnString returns the connection string for database name on this server
func (d DatabaseConfig) ConnString(name string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// LoadDatabase reads only the database settings, for tools that never
// talk to Discord
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load()

	var cfg DatabaseConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
