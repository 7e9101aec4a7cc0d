package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Cache        CacheConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values. An empty DSN selects the
// in-memory record store.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Token schemes.
const (
	TokenSchemeSigned = "signed"
	TokenSchemeLegacy = "legacy"
)

// Password schemes.
const (
	PasswordSchemeArgon2id = "argon2id"
	PasswordSchemeBcrypt   = "bcrypt"
)

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret      string
	TokenTTLHours  int
	TokenScheme    string
	PasswordScheme string
	BcryptCost     int
}

// CacheConfig tunes read caches.
type CacheConfig struct {
	InventoryTTLSeconds int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
// When CONFIG_FILE names a YAML file of KEY: value pairs, those values are used for
// keys missing from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	src := envSource{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileValues, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		src.file = fileValues
	}
	return load(src)
}

func load(src envSource) (*Config, error) {
	redisDB, err := strconv.Atoi(src.get("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  src.get("APP_NAME", "blood-bank-service"),
			Env:                   src.get("APP_ENV", "development"),
			Host:                  src.get("APP_HOST", "0.0.0.0"),
			Port:                  src.get("APP_PORT", "8080"),
			Version:               src.get("APP_VERSION", "dev"),
			RequestTimeoutSeconds: src.getInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            src.get("POSTGRES_DSN", ""),
			MaxConns:       int32(src.getInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(src.getInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  src.getBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(src.getInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(src.getInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     src.get("REDIS_ADDR", ""),
			Password: src.get("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: src.get("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:      src.get("AUTH_JWT_SECRET", "dev-secret"),
			TokenTTLHours:  src.getInt("AUTH_TOKEN_TTL_HOURS", 7*24),
			TokenScheme:    src.get("AUTH_TOKEN_SCHEME", TokenSchemeSigned),
			PasswordScheme: src.get("AUTH_PASSWORD_SCHEME", PasswordSchemeArgon2id),
			BcryptCost:     src.getInt("AUTH_BCRYPT_COST", 12),
		},
		Cache: CacheConfig{
			InventoryTTLSeconds: src.getInt("CACHE_INVENTORY_TTL_SECONDS", 60),
		},
		Notification: NotificationConfig{
			EmailFrom:  src.get("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: src.get("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.TokenScheme {
	case TokenSchemeSigned, TokenSchemeLegacy:
	default:
		return fmt.Errorf("invalid AUTH_TOKEN_SCHEME %q", c.Auth.TokenScheme)
	}
	switch c.Auth.PasswordScheme {
	case PasswordSchemeArgon2id, PasswordSchemeBcrypt:
	default:
		return fmt.Errorf("invalid AUTH_PASSWORD_SCHEME %q", c.Auth.PasswordScheme)
	}
	if c.Auth.TokenScheme == TokenSchemeSigned && c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required for signed tokens")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the bearer token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// InventoryTTL returns how long inventory listings stay cached.
func (c CacheConfig) InventoryTTL() time.Duration {
	if c.InventoryTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.InventoryTTLSeconds) * time.Second
}

func readConfigFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return values, nil
}

// envSource resolves keys from the process environment first, then from
// the optional config file.
type envSource struct {
	file map[string]string
}

func (s envSource) get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if val, ok := s.file[key]; ok && val != "" {
		return val
	}
	return fallback
}

func (s envSource) getInt(key string, fallback int) int {
	val := s.get(key, "")
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s envSource) getBool(key string, fallback bool) bool {
	val := s.get(key, "")
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
