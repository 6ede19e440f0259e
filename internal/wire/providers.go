package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/codesphere-app/review-api/internal/app"
	"github.com/codesphere-app/review-api/internal/config"
	"github.com/codesphere-app/review-api/internal/core"
	"github.com/codesphere-app/review-api/internal/gemini"
	"github.com/codesphere-app/review-api/internal/llm"
	"github.com/codesphere-app/review-api/internal/logger"
	"github.com/codesphere-app/review-api/internal/review"
	"github.com/codesphere-app/review-api/internal/server"
)

// ReviewerSet builds a core.Reviewer from configuration.
var ReviewerSet = wire.NewSet(
	config.LoadConfig,
	provideLoggerConfig,
	provideLogWriter,
	logger.NewLogger,
	provideHTTPClient,
	provideGenerator,
	provideModelProvider,
	llm.NewPromptManager,
	review.NewService,
	wire.Bind(new(core.Reviewer), new(*review.Service)),
)

// Tooling bundles what command-line tools need to run reviews in-process.
type Tooling struct {
	Config   *config.Config
	Logger   *slog.Logger
	Prompts  *llm.PromptManager
	Reviewer core.Reviewer
}

// ToolingSet builds Tooling.
var ToolingSet = wire.NewSet(
	ReviewerSet,
	wire.Struct(new(Tooling), "*"),
)

// AppSet builds the full HTTP application.
var AppSet = wire.NewSet(
	ReviewerSet,
	server.NewServer,
	app.NewApp,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) io.Writer {
	return cfg.Logging.Writer()
}

func provideModelProvider(cfg *config.Config) llm.ModelProvider {
	return llm.ModelProvider(cfg.AI.LLMProvider)
}

// provideHTTPClient returns the process-wide client for outbound model calls.
// A zero ClientTimeout leaves calls bounded only by the request context.
func provideHTTPClient(cfg *config.Config) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Server.ClientTimeout,
	}
}

func provideGenerator(_ context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (core.Generator, error) {
	switch cfg.AI.LLMProvider {
	case config.ProviderGemini:
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return gemini.NewClient(gemini.Config{
			BaseURL: cfg.AI.GeminiBaseURL,
			Model:   cfg.AI.GeminiModel,
			APIKey:  cfg.AI.GeminiAPIKey,
		}, httpClient, logger), nil
	case config.ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithModel(cfg.AI.OllamaModel),
			ollama.WithHTTPClient(httpClient),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return llm.NewModelGenerator("ollama/"+cfg.AI.OllamaModel, model, logger), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}
