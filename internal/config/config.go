package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "SEO_ENGINE_CONFIG"
	serverAddrEnv   = "SERVER_ADDR"
	databaseDSNEnv  = "DATABASE_DSN"
	backendEnv      = "GENERATOR_BACKEND"
	openAIKeyEnv    = "OPENAI_API_KEY"
	openAIModelEnv  = "OPENAI_MODEL"
	inferenceURLEnv = "INFERENCE_URL"
	telegramToken   = "TELEGRAM_BOT_TOKEN"
	telegramChatID  = "TELEGRAM_CHAT_ID"
	logLevelEnv     = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server        ServerConfig       `yaml:"server"`
	Database      DatabaseConfig     `yaml:"database"`
	Generator     GeneratorConfig    `yaml:"generator"`
	Batch         BatchConfig        `yaml:"batch"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig describes Postgres connection details. An empty DSN selects
// the in-memory repository.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// GeneratorConfig selects and configures the generation backend.
type GeneratorConfig struct {
	Backend   string          `yaml:"backend"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Inference InferenceConfig `yaml:"inference"`
}

// OpenAIConfig defines how to contact an OpenAI-compatible API.
type OpenAIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// InferenceConfig describes a self-hosted generation service.
type InferenceConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"apiKey"`
}

// BatchConfig tunes the orchestrator worker pool and retry policy.
type BatchConfig struct {
	Workers               int `yaml:"workers"`
	MaxRetries            int `yaml:"maxRetries"`
	AttemptTimeoutSeconds int `yaml:"attemptTimeoutSeconds"`
}

// AttemptTimeout is the per-attempt deadline applied to generator calls.
func (b BatchConfig) AttemptTimeout() time.Duration {
	return time.Duration(b.AttemptTimeoutSeconds) * time.Second
}

// SchedulerConfig defines when the analytics digest runs.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	WindowDays     int            `yaml:"windowDays"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(backendEnv); v != "" {
		c.Generator.Backend = v
	}

	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.Generator.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.Generator.OpenAI.Model = v
	}

	if v := os.Getenv(inferenceURLEnv); v != "" {
		c.Generator.Inference.URL = v
	}

	if v := os.Getenv(telegramToken); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatID); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server = override.Server
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Generator.Backend != "" {
		base.Generator.Backend = override.Generator.Backend
	}
	if override.Generator.OpenAI.Endpoint != "" {
		base.Generator.OpenAI.Endpoint = override.Generator.OpenAI.Endpoint
	}
	if override.Generator.OpenAI.Model != "" {
		base.Generator.OpenAI.Model = override.Generator.OpenAI.Model
	}
	if override.Generator.OpenAI.APIKey != "" {
		base.Generator.OpenAI.APIKey = override.Generator.OpenAI.APIKey
	}
	if override.Generator.Inference.URL != "" {
		base.Generator.Inference.URL = override.Generator.Inference.URL
	}
	if override.Generator.Inference.APIKey != "" {
		base.Generator.Inference.APIKey = override.Generator.Inference.APIKey
	}

	if override.Batch.Workers > 0 {
		base.Batch.Workers = override.Batch.Workers
	}
	if override.Batch.MaxRetries > 0 {
		base.Batch.MaxRetries = override.Batch.MaxRetries
	}
	if override.Batch.AttemptTimeoutSeconds > 0 {
		base.Batch.AttemptTimeoutSeconds = override.Batch.AttemptTimeoutSeconds
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}
	if override.Scheduler.WindowDays > 0 {
		base.Scheduler.WindowDays = override.Scheduler.WindowDays
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Server:   ServerConfig{Addr: ":5000"},
		Database: DatabaseConfig{DSN: ""},
		Generator: GeneratorConfig{
			Backend: "stub",
			OpenAI: OpenAIConfig{
				Endpoint: "https://api.openai.com/v1/chat/completions",
				Model:    "gpt-4o-mini",
			},
			Inference: InferenceConfig{URL: ""},
		},
		Batch: BatchConfig{
			Workers:               5,
			MaxRetries:            2,
			AttemptTimeoutSeconds: 90,
		},
		Scheduler: SchedulerConfig{
			CronExpression: "0 6 * * *",
			Timezone:       defaultTimezone,
			WindowDays:     30,
			location:       tz,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
