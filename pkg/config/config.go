package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Application settings
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Storage   StorageConfig
	Pipeline  PipelineConfig
	Providers ProviderConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

// Storage settings
type StorageConfig struct {
	// DataDir is where the snapshot store keeps its files.
	// Empty means an in-memory store (nothing survives a restart).
	DataDir string
}

type PipelineConfig struct {
	MaxSelectedAds      int
	StageTimeout        time.Duration
	RequestTimeout      time.Duration
	RateLimitPerSecond  int
	PlaceholderImageURL string
}

type ProviderConfig struct {
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ImageModel    string
	ChatModel     string
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Pipeline: PipelineConfig{
			MaxSelectedAds:      getIntEnv("MAX_SELECTED_ADS", 3),
			StageTimeout:        getDurationEnv("STAGE_TIMEOUT", "60s"),
			RequestTimeout:      getDurationEnv("REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond:  getIntEnv("RATE_LIMIT_PER_SECOND", 10),
			PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", "https://picsum.photos/1024/1024?random=1"),
		},
		Providers: ProviderConfig{
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			ImageModel:    getEnv("IMAGE_MODEL", "dall-e-3"),
			ChatModel:     getEnv("CHAT_MODEL", "gpt-4o-mini"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

// GeminiConfigured reports whether a Gemini credential is available for
// analysis, insight and chat generation.
func (c *Config) GeminiConfigured() bool {
	return strings.TrimSpace(c.Providers.GeminiAPIKey) != ""
}

// OpenAIConfigured reports whether an OpenAI credential is available for
// image generation.
func (c *Config) OpenAIConfigured() bool {
	return strings.TrimSpace(c.Providers.OpenAIAPIKey) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
