package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for both services.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"file"` // "file" or "postgres"
	StatsFile     string `env:"STATS_FILE" envDefault:"interview_stats.json"`
	HistoryFile   string `env:"HISTORY_FILE" envDefault:"resume_analysis_history.json"`
	DBURL         string `env:"DB_URL"`

	// Cache for single-resume analysis results
	CacheProvider string        `env:"CACHE_PROVIDER" envDefault:"none"` // "redis" or "none"
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	// Events
	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"none"` // "nats" or "none"
	NatsURL        string `env:"NATS_URL"`

	// LLM
	LLMProvider string        `env:"LLM_PROVIDER" envDefault:"ollama"` // "ollama" (local inference) or "openai"
	OllamaURL   string        `env:"OLLAMA_URL" envDefault:"http://127.0.0.1:11434"`
	LLMModel    string        `env:"LLM_MODEL" envDefault:"llama3"`
	OpenAIKey   string        `env:"OPENAI_API_KEY"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"180s"`

	// Batch resume scoring
	BatchConcurrency int `env:"BATCH_CONCURRENCY" envDefault:"4"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
