// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/codesphere-app/review-api/internal/app"
	"github.com/codesphere-app/review-api/internal/config"
	"github.com/codesphere-app/review-api/internal/llm"
	"github.com/codesphere-app/review-api/internal/logger"
	"github.com/codesphere-app/review-api/internal/review"
	"github.com/codesphere-app/review-api/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	tooling, cleanup, err := InitializeTooling(ctx)
	if err != nil {
		return nil, nil, err
	}

	srv := server.NewServer(tooling.Config, tooling.Reviewer, tooling.Logger)
	application := app.NewApp(tooling.Config, srv, tooling.Logger)
	return application, cleanup, nil
}

// InitializeTooling wires configuration, logging and the review service.
func InitializeTooling(ctx context.Context) (*Tooling, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerConfig := provideLoggerConfig(cfg)
	logWriter := provideLogWriter(cfg)
	slogLogger := logger.NewLogger(loggerConfig, logWriter)

	httpClient := provideHTTPClient(cfg)
	generator, err := provideGenerator(ctx, cfg, httpClient, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	modelProvider := provideModelProvider(cfg)
	service := review.NewService(promptMgr, generator, modelProvider, slogLogger)

	tooling := &Tooling{
		Config:   cfg,
		Logger:   slogLogger,
		Prompts:  promptMgr,
		Reviewer: service,
	}
	cleanup := func() {
		httpClient.CloseIdleConnections()
	}
	return tooling, cleanup, nil
}
