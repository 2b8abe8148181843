package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string

	APIKey         string
	TrustedProxies []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns        int
	DBConnMaxIdleTime time.Duration
	DBConnMaxLifetime time.Duration

	DeadLetterPath  string
	EventMaxRetries int
	EventRetryDelay time.Duration

	// Audit trail retention and how often the cleanup job runs
	EventRetentionDays   int
	EventCleanupInterval time.Duration

	WorkerCount     int
	WorkerQueueSize int

	// Interval at which the tournament worker checks for tournaments past
	// their end time.
	TournamentSweepInterval time.Duration

	// Upper bound for a single external call (fraud scorer, payment
	// processor) when the caller supplies no tighter deadline.
	ExternalCallTimeout time.Duration

	FraudAPIURL     string
	FraudAPIKey     string
	ProcessorAPIURL string
	ProcessorAPIKey string

	// Path to the badge catalog JSON synced at startup; empty disables
	// the sync.
	BadgeConfigPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		ServiceName:    getEnv("SERVICE_NAME", "rewards-engine"),
		Version:        getEnv("VERSION", "dev"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "rewards"),
		APIKey:         getEnv("API_KEY", ""),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", "deadletter.jsonl"),

		FraudAPIURL:     getEnv("FRAUD_API_URL", "http://localhost:9001"),
		FraudAPIKey:     getEnv("FRAUD_API_KEY", ""),
		ProcessorAPIURL: getEnv("PROCESSOR_API_URL", "http://localhost:9002"),
		ProcessorAPIKey: getEnv("PROCESSOR_API_KEY", ""),

		BadgeConfigPath: getEnv("BADGE_CONFIG_PATH", "config/badge_definitions.json"),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	sweep, err := time.ParseDuration(getEnv("TOURNAMENT_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOURNAMENT_SWEEP_INTERVAL value: %w", err)
	}
	cfg.TournamentSweepInterval = sweep

	timeout, err := time.ParseDuration(getEnv("EXTERNAL_CALL_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXTERNAL_CALL_TIMEOUT value: %w", err)
	}
	cfg.ExternalCallTimeout = timeout

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS value: %w", err)
	}
	cfg.DBMaxConns = maxConns

	idle, err := time.ParseDuration(getEnv("DB_CONN_MAX_IDLE_TIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_IDLE_TIME value: %w", err)
	}
	cfg.DBConnMaxIdleTime = idle

	life, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME value: %w", err)
	}
	cfg.DBConnMaxLifetime = life

	retries, err := strconv.Atoi(getEnv("EVENT_MAX_RETRIES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_MAX_RETRIES value: %w", err)
	}
	cfg.EventMaxRetries = retries

	retryDelay, err := time.ParseDuration(getEnv("EVENT_RETRY_DELAY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETRY_DELAY value: %w", err)
	}
	cfg.EventRetryDelay = retryDelay

	retention, err := strconv.Atoi(getEnv("EVENT_RETENTION_DAYS", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION_DAYS value: %w", err)
	}
	cfg.EventRetentionDays = retention

	cleanupInterval, err := time.ParseDuration(getEnv("EVENT_CLEANUP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_CLEANUP_INTERVAL value: %w", err)
	}
	cfg.EventCleanupInterval = cleanupInterval

	workers, err := strconv.Atoi(getEnv("WORKER_COUNT", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_COUNT value: %w", err)
	}
	cfg.WorkerCount = workers

	queueSize, err := strconv.Atoi(getEnv("WORKER_QUEUE_SIZE", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_QUEUE_SIZE value: %w", err)
	}
	cfg.WorkerQueueSize = queueSize

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
