//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/codesphere-app/review-api/internal/app"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}

func InitializeTooling(ctx context.Context) (*Tooling, func(), error) {
	wire.Build(ToolingSet)
	return &Tooling{}, nil, nil
}
