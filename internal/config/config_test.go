package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoad_DefaultsFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Zero(t, cfg.Server.ClientTimeout)
	assert.Equal(t, ProviderGemini, cfg.AI.LLMProvider)
	assert.Equal(t, "from-env", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.AI.GeminiBaseURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeneratorModel())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "GEMINI_API_KEY=from-file\nSERVER_PORT=9090\nCORS_ALLOWED_ORIGINS=http://localhost:3000, https://app.example.com\nHTTP_CLIENT_TIMEOUT=90s\nLOG_LEVEL=DEBUG\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Server.ClientTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GEMINI_API_KEY=from-file\n"), 0o600))
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AI.GeminiAPIKey)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load(missingEnvFile(t))
	assert.EqualError(t, err, "GEMINI_API_KEY must be set for the gemini provider")
}

func TestLoad_OllamaProviderNeedsNoKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "Ollama")
	t.Setenv("OLLAMA_MODEL", "qwen2.5-coder")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, cfg.AI.LLMProvider)
	assert.Equal(t, "qwen2.5-coder", cfg.GeneratorModel())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			AI:     AIConfig{LLMProvider: ProviderGemini, GeminiAPIKey: "k", GeminiModel: "gemini-2.5-flash"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid gemini", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Server.ClientTimeout = -time.Second }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.AI.LLMProvider = "openai" }, wantErr: true},
		{name: "empty gemini model", mutate: func(c *Config) { c.AI.GeminiModel = "" }, wantErr: true},
		{
			name: "ollama without host",
			mutate: func(c *Config) {
				c.AI.LLMProvider = ProviderOllama
				c.AI.OllamaModel = "llama3"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
