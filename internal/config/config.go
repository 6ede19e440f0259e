// Package config loads the service configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/codesphere-app/review-api/internal/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config holds the application's configuration values.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Logging logger.Config
}

// ServerConfig configures the inbound HTTP surface.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// ClientTimeout bounds outbound calls; zero leaves them unbounded.
	ClientTimeout time.Duration
}

// AIConfig selects and configures the model backend.
type AIConfig struct {
	LLMProvider   string
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	OllamaHost    string
	OllamaModel   string
}

// LoadConfig reads configuration from environment variables and a .env file in
// the working directory, applies defaults and validates the result. It uses the
// global viper instance so command-line flags bound there take precedence.
func LoadConfig() (*Config, error) {
	return LoadWithViper(viper.GetViper(), ".env")
}

// Load reads configuration with a private viper instance and an explicit .env path.
func Load(envFile string) (*Config, error) {
	return LoadWithViper(viper.New(), envFile)
}

// LoadWithViper loads configuration through v. A missing env file is not an
// error; environment variables always take precedence over file values.
func LoadWithViper(v *viper.Viper, envFile string) (*Config, error) {
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "0s")
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("OLLAMA_MODEL", "gemma3:latest")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ClientTimeout:  v.GetDuration("HTTP_CLIENT_TIMEOUT"),
		},
		AI: AIConfig{
			LLMProvider:   strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
			GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
			GeminiBaseURL: v.GetString("GEMINI_BASE_URL"),
			GeminiModel:   v.GetString("GEMINI_MODEL"),
			OllamaHost:    v.GetString("OLLAMA_HOST"),
			OllamaModel:   v.GetString("OLLAMA_MODEL"),
		},
		Logging: logger.Config{
			Level:  normalizeLevel(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
			Output: strings.ToLower(v.GetString("LOG_OUTPUT")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot serve requests.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("SERVER_PORT must be set")
	}
	if c.Server.ClientTimeout < 0 {
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must not be negative, got %s", c.Server.ClientTimeout)
	}

	switch c.AI.LLMProvider {
	case ProviderGemini:
		if c.AI.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY must be set for the gemini provider")
		}
		if c.AI.GeminiModel == "" {
			return errors.New("GEMINI_MODEL must not be empty")
		}
	case ProviderOllama:
		if c.AI.OllamaHost == "" || c.AI.OllamaModel == "" {
			return errors.New("OLLAMA_HOST and OLLAMA_MODEL must be set for the ollama provider")
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %q", c.AI.LLMProvider)
	}
	return nil
}

// GeneratorModel is the model name used by the selected provider.
func (c *Config) GeneratorModel() string {
	if c.AI.LLMProvider == ProviderOllama {
		return c.AI.OllamaModel
	}
	return c.AI.GeminiModel
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func normalizeLevel(raw string) string {
	level := strings.ToLower(strings.TrimSpace(raw))
	switch level {
	case "debug", "info", "warn", "error":
		return level
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", raw)
		return "info"
	}
}
