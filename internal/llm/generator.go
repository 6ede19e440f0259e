package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/goframe/llms"

	"github.com/codesphere-app/review-api/internal/core"
)

// ModelGenerator adapts a GoFrame model (for example the Ollama backend) to core.Generator.
type ModelGenerator struct {
	name   string
	call   func(ctx context.Context, prompt string) (string, error)
	logger *slog.Logger
}

// NewModelGenerator wraps model. name is only used in logs and errors.
func NewModelGenerator(name string, model llms.Model, logger *slog.Logger) *ModelGenerator {
	return &ModelGenerator{
		name: name,
		call: func(ctx context.Context, prompt string) (string, error) {
			return model.Call(ctx, prompt)
		},
		logger: logger,
	}
}

// Generate sends prompt to the wrapped model. A blank answer is reported as core.ErrNoResponse.
func (g *ModelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("calling model", "model", g.name, "prompt_chars", len(prompt))

	resp, err := g.call(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", g.name, err)
	}
	if strings.TrimSpace(resp) == "" {
		return "", core.ErrNoResponse
	}
	return resp, nil
}
