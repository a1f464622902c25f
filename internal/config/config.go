package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Completion store backends.
const (
	CompletionStoreDatabase = "database"
	CompletionStoreRedis    = "redis"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	CORSOrigins       string
	DatabaseDriver    string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	EventPrefix       string
	JWTSecret         string
	AIProvider        string
	GeminiAPIKey      string
	GeminiModel       string
	OpenAIAPIKey      string
	OpenAIModel       string
	AnthropicAPIKey   string
	AnthropicModel    string
	AITimeout         time.Duration
	HistoryCacheTTL   time.Duration
	CompletionStore   string
	AnalyzeRateLimit  int
	AnalyzeRateWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from WRITERPRO_* environment variables and
// an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("WRITERPRO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "WriterPro API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("event.prefix", "writerpro")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("anthropic.model", "claude-3-5-haiku-latest")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("history.cache_ttl", "5m")
	v.SetDefault("completion.store", CompletionStoreDatabase)
	v.SetDefault("analyze.rate_limit", 10)
	v.SetDefault("analyze.rate_window", "1m")

	aiTimeout, err := parseDuration(v, "ai.timeout")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := parseDuration(v, "history.cache_ttl")
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := parseDuration(v, "analyze.rate_window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		CORSOrigins:       v.GetString("cors.origins"),
		DatabaseDriver:    strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		EventPrefix:       v.GetString("event.prefix"),
		JWTSecret:         v.GetString("jwt.secret"),
		AIProvider:        strings.ToLower(strings.TrimSpace(v.GetString("ai.provider"))),
		GeminiAPIKey:      v.GetString("gemini.api_key"),
		GeminiModel:       v.GetString("gemini.model"),
		OpenAIAPIKey:      v.GetString("openai.api_key"),
		OpenAIModel:       v.GetString("openai.model"),
		AnthropicAPIKey:   v.GetString("anthropic.api_key"),
		AnthropicModel:    v.GetString("anthropic.model"),
		AITimeout:         aiTimeout,
		HistoryCacheTTL:   cacheTTL,
		CompletionStore:   strings.ToLower(strings.TrimSpace(v.GetString("completion.store"))),
		AnalyzeRateLimit:  v.GetInt("analyze.rate_limit"),
		AnalyzeRateWindow: rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	switch cfg.CompletionStore {
	case CompletionStoreDatabase:
	case CompletionStoreRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("redis completion store requires a redis url")
		}
	default:
		return Config{}, fmt.Errorf("unsupported completion store %q", cfg.CompletionStore)
	}

	if cfg.AnalyzeRateLimit <= 0 {
		cfg.AnalyzeRateLimit = 10
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	value, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return value, nil
}
