package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel   OTelConfig
	LLM    LLMConfig
	Search SearchConfig
	Intent IntentConfig
	Env    string
	Port   string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	APIKey    string
	BaseURL   string // Optional: for custom endpoints
	Model     string
	MaxTokens int
}

// SearchConfig selects and configures the web-search provider.
type SearchConfig struct {
	Provider     string // "tavily", "duckduckgo", or "linkup"
	TavilyAPIKey string
	TavilyDepth  string
	LinkupAPIKey string
}

// IntentConfig configures the zero-shot malicious-intent classifier.
type IntentConfig struct {
	APIKey  string
	BaseURL string // Optional: for custom inference endpoints
	Model   string
}

type ServiceType string

const (
	ServiceTypeServer  ServiceType = "server"
	ServiceTypePlanner ServiceType = "planner"
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the assistant API server
//   - .env.planner for the legacy planner server
//
// Falls back to .env if the service-specific file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("NEURANOTE_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	cfg := Config{
		Env:  getEnv("NEURANOTE_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "neuranote-"+string(serviceType)),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		LLM: LLMConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			BaseURL:   getEnv("OPENAI_BASE_URL", ""),
			Model:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens: getEnvInt("OPENAI_MAX_TOKENS", 4096),
		},
		Search: SearchConfig{
			Provider:     getEnv("SEARCH_PROVIDER", "tavily"),
			TavilyAPIKey: getEnv("TAVILY_API_KEY", ""),
			TavilyDepth:  getEnv("TAVILY_DEPTH", "basic"),
			LinkupAPIKey: getEnv("LINKUP_API_KEY", ""),
		},
		Intent: IntentConfig{
			APIKey:  getEnv("HF_API_KEY", ""),
			BaseURL: getEnv("HF_BASE_URL", ""),
			Model:   getEnv("INTENT_MODEL", "facebook/bart-large-mnli"),
		},
	}

	if cfg.LLM.APIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c IntentConfig) Enabled() bool {
	return c.APIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
