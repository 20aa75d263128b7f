// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session backend selectors.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Port   string
	APIKey string

	GroqAPIKeys []string
	GroqModel   string
	LLMTimeout  time.Duration

	CallbackURL     string
	CallbackTimeout time.Duration

	SessionBackend string
	RedisAddr      string
	DBPath         string
	SessionTTL     time.Duration
	EvictInterval  time.Duration

	MinReplyLatency time.Duration

	EngagementLog EngagementLogConfig
}

// EngagementLogConfig controls NDJSON engagement logging.
type EngagementLogConfig struct {
	Enabled       bool
	Dir           string
	GlobalEnabled bool
	GlobalPath    string
	QueueSize     int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	queueSize := getEnvInt("ENGAGEMENT_LOG_QUEUE_SIZE", 1000)
	if queueSize <= 0 {
		queueSize = 1000
	}

	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		APIKey: getEnv("API_KEY", ""),

		GroqAPIKeys: []string{
			getEnv("GROQ_API_KEY", ""),
			getEnv("GROQ_API_KEY2", ""),
		},
		GroqModel:  getEnv("GROQ_MODEL", ""),
		LLMTimeout: getEnvDuration("LLM_TIMEOUT", 5*time.Second),

		CallbackURL:     getEnv("CALLBACK_URL", ""),
		CallbackTimeout: getEnvDuration("CALLBACK_TIMEOUT", 10*time.Second),

		SessionBackend: strings.ToLower(getEnv("SESSION_BACKEND", BackendMemory)),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		DBPath:         getEnv("DB_PATH", "./data/honeypot.db"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 60*time.Minute),
		EvictInterval:  getEnvDuration("EVICT_INTERVAL", 5*time.Minute),

		MinReplyLatency: getEnvDuration("MIN_REPLY_LATENCY", time.Second),

		EngagementLog: EngagementLogConfig{
			Enabled:       getEnvBool("ENGAGEMENT_LOG_ENABLED", false),
			Dir:           getEnv("ENGAGEMENT_LOG_DIR", "./data/logs/engagements"),
			GlobalEnabled: getEnvBool("ENGAGEMENT_LOG_GLOBAL_ENABLED", false),
			GlobalPath:    getEnv("ENGAGEMENT_LOG_GLOBAL_PATH", "./data/logs/engagements/all.ndjson"),
			QueueSize:     queueSize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY must be set; requests are rejected without a shared secret")
	}
	switch c.SessionBackend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of %q, %q, %q", BackendMemory, BackendRedis, BackendSQLite)
	}
	if c.SessionBackend == BackendSQLite && c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty for the sqlite backend")
	}
	if c.SessionBackend == BackendRedis && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR cannot be empty for the redis backend")
	}
	if c.EngagementLog.Enabled && c.EngagementLog.Dir == "" {
		return fmt.Errorf("ENGAGEMENT_LOG_DIR cannot be empty when logging is enabled")
	}
	return nil
}

// HasGroqKeys reports whether at least one generation credential is
// configured.
func (c *Config) HasGroqKeys() bool {
	for _, k := range c.GroqAPIKeys {
		if strings.TrimSpace(k) != "" {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
