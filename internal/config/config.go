package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	CredentialModeSession   = "session"
	CredentialModePersisted = "persisted"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	DB         DatabaseConfig   `koanf:"db"`
	Fixtures   FixturesConfig   `koanf:"fixtures"`
	Simulation SimulationConfig `koanf:"simulation"`
	Chat       ChatConfig       `koanf:"chat"`
	Feed       FeedConfig       `koanf:"feed"`
	Worker     WorkerConfig     `koanf:"worker"`
	Events     EventsConfig     `koanf:"events"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	RateLimitRPS    int           `koanf:"rate_limit_rps"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	MetricsEnabled  bool          `koanf:"metrics_enabled"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type FixturesConfig struct {
	// Path to a YAML dataset; empty uses the built-in demo data.
	Path string `koanf:"path"`
}

type SimulationConfig struct {
	Seed         uint64        `koanf:"seed"`
	AIDelay      time.Duration `koanf:"ai_delay"`
	LoadDelay    time.Duration `koanf:"load_delay"`
	RequestDelay time.Duration `koanf:"request_delay"`
	ReportDelay  time.Duration `koanf:"report_delay"`
}

type ChatConfig struct {
	URL            string        `koanf:"url"`
	Model          string        `koanf:"model"`
	Temperature    float64       `koanf:"temperature"`
	MaxTokens      int           `koanf:"max_tokens"`
	Timeout        time.Duration `koanf:"timeout"`
	CredentialMode string        `koanf:"credential_mode"`
	Fallback       bool          `koanf:"fallback"`
	SessionTTL     time.Duration `koanf:"session_ttl"`
	MaxSessions    int           `koanf:"max_sessions"`
}

type FeedConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

type WorkerConfig struct {
	Count      int `koanf:"count"`
	BufferSize int `koanf:"buffer_size"`
}

type EventsConfig struct {
	KafkaBrokers []string `koanf:"kafka_brokers"`
	KafkaTopic   string   `koanf:"kafka_topic"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			RateLimitRPS:    20,
			CORSOrigins:     []string{"*"},
			MetricsEnabled:  true,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		DB: DatabaseConfig{
			Path: "./data/dashboard.db",
		},
		Simulation: SimulationConfig{
			AIDelay:      1500 * time.Millisecond,
			LoadDelay:    1000 * time.Millisecond,
			RequestDelay: 800 * time.Millisecond,
			ReportDelay:  2000 * time.Millisecond,
		},
		Chat: ChatConfig{
			URL:            "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-4o-mini",
			Temperature:    0.3,
			MaxTokens:      500,
			Timeout:        30 * time.Second,
			CredentialMode: CredentialModeSession,
			Fallback:       true,
			SessionTTL:     time.Hour,
			MaxSessions:    1000,
		},
		Feed: FeedConfig{
			Enabled:  false,
			Interval: time.Minute,
		},
		Worker: WorkerConfig{
			Count:      2,
			BufferSize: 20,
		},
		Events: EventsConfig{
			KafkaTopic: "dashboard-events",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.RateLimitRPS = getEnvInt("RATE_LIMIT_RPS", cfg.Server.RateLimitRPS)
	cfg.Server.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.Server.CORSOrigins)
	cfg.Server.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.Server.MetricsEnabled)
	cfg.Server.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	cfg.DB.Path = getEnv("DB_PATH", cfg.DB.Path)
	cfg.Fixtures.Path = getEnv("FIXTURES_PATH", cfg.Fixtures.Path)

	cfg.Simulation.Seed = getEnvUint64("SIMULATION_SEED", cfg.Simulation.Seed)
	cfg.Simulation.AIDelay = getEnvDuration("AI_DELAY", cfg.Simulation.AIDelay)
	cfg.Simulation.LoadDelay = getEnvDuration("LOAD_DELAY", cfg.Simulation.LoadDelay)
	cfg.Simulation.RequestDelay = getEnvDuration("REQUEST_DELAY", cfg.Simulation.RequestDelay)
	cfg.Simulation.ReportDelay = getEnvDuration("REPORT_DELAY", cfg.Simulation.ReportDelay)

	cfg.Chat.URL = getEnv("CHAT_API_URL", cfg.Chat.URL)
	cfg.Chat.Model = getEnv("CHAT_MODEL", cfg.Chat.Model)
	cfg.Chat.Temperature = getEnvFloat("CHAT_TEMPERATURE", cfg.Chat.Temperature)
	cfg.Chat.MaxTokens = getEnvInt("CHAT_MAX_TOKENS", cfg.Chat.MaxTokens)
	cfg.Chat.Timeout = getEnvDuration("CHAT_TIMEOUT", cfg.Chat.Timeout)
	cfg.Chat.CredentialMode = getEnv("CHAT_CREDENTIAL_MODE", cfg.Chat.CredentialMode)
	cfg.Chat.Fallback = getEnvBool("CHAT_FALLBACK", cfg.Chat.Fallback)
	cfg.Chat.SessionTTL = getEnvDuration("CHAT_SESSION_TTL", cfg.Chat.SessionTTL)
	cfg.Chat.MaxSessions = getEnvInt("CHAT_MAX_SESSIONS", cfg.Chat.MaxSessions)

	cfg.Feed.Enabled = getEnvBool("FEED_ENABLED", cfg.Feed.Enabled)
	cfg.Feed.Interval = getEnvDuration("FEED_INTERVAL", cfg.Feed.Interval)

	cfg.Worker.Count = getEnvInt("WORKER_COUNT", cfg.Worker.Count)
	cfg.Worker.BufferSize = getEnvInt("WORKER_BUFFER_SIZE", cfg.Worker.BufferSize)

	cfg.Events.KafkaBrokers = getEnvList("KAFKA_BROKERS", cfg.Events.KafkaBrokers)
	cfg.Events.KafkaTopic = getEnv("KAFKA_TOPIC", cfg.Events.KafkaTopic)
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 request per second")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	sim := c.Simulation
	if sim.AIDelay < 0 || sim.LoadDelay < 0 || sim.RequestDelay < 0 || sim.ReportDelay < 0 {
		return fmt.Errorf("simulation delays must not be negative")
	}

	switch c.Chat.CredentialMode {
	case CredentialModeSession, CredentialModePersisted:
	default:
		return fmt.Errorf("invalid chat credential mode: %s", c.Chat.CredentialMode)
	}
	if c.Chat.Timeout <= 0 {
		return fmt.Errorf("chat timeout must be positive")
	}
	if c.Chat.SessionTTL < 0 || c.Chat.MaxSessions < 0 {
		return fmt.Errorf("chat session limits must not be negative")
	}

	if c.Feed.Enabled && c.Feed.Interval < time.Second {
		return fmt.Errorf("feed interval must be at least 1 second")
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}
	if len(c.Events.KafkaBrokers) > 0 && c.Events.KafkaTopic == "" {
		return fmt.Errorf("kafka topic is required when brokers are set")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvUint64 keeps the fallback for negative or malformed values.
func getEnvUint64(key string, fallback uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if u, err := strconv.ParseUint(val, 10, 64); err == nil {
			return u
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty items.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
