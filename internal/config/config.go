package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=WEBSERVER_"`
	Database DatabaseConfig `env:",prefix=DATABASE_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	Discord  DiscordConfig  `env:",prefix="`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Worker   WorkerConfig   `env:",prefix=WORKER_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string        `env:"PORT,default=8080"`
	Host         string        `env:"HOST,default=0.0.0.0"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type DatabaseConfig struct {
	URL           string `env:"URL,required"`
	Driver        string `env:"DRIVER,default=postgres"`
	User          string `env:"USER"`
	Password      string `env:"PASSWORD"`
	MaxOpenConns  int    `env:"MAX_OPEN_CONNS,default=100"`
	MigrationsURL string `env:"MIGRATIONS_URL,default=file://migrations"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB,default=0"`
}

type DiscordConfig struct {
	ApplicationID     string `env:"APPLICATION_ID,required"`
	ApplicationSecret string `env:"APPLICATION_SECRET,required"`
	RedirectURL       string `env:"REDIRECT_URL,required"`
	// AuthURL may be empty; the callback answers 500 at request time when
	// it has nowhere to redirect.
	AuthURL string `env:"AUTH_URL"`
	// BaseURL overrides the Discord API origin, empty means the real API.
	BaseURL string        `env:"DISCORD_API_BASE_URL"`
	Timeout time.Duration `env:"OAUTH_TIMEOUT,default=10s"`
}

type SecurityConfig struct {
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=*"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

type WorkerConfig struct {
	PoolSize  int `env:"POOL_SIZE,default=8"`
	QueueSize int `env:"QUEUE_SIZE,default=64"`
}

// DSN returns the database connection string with the configured user and
// password merged into the URL, matching the split DATABASE_* layout the
// deployment environment provides.
func (d DatabaseConfig) DSN() (string, error) {
	if d.User == "" {
		return d.URL, nil
	}

	u, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	u.User = url.UserPassword(d.User, d.Password)

	return u.String(), nil
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Placeholder credentials from the sample env file must not pass.
	if config.Discord.ApplicationID == "your_id" || config.Discord.ApplicationSecret == "your_secret" {
		return nil, fmt.Errorf("APPLICATION_ID and APPLICATION_SECRET must be set to real Discord application credentials")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
