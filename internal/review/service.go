// Package review turns a review request into feedback by rendering the prompt and
// calling the configured generator once, synchronously.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codesphere-app/review-api/internal/core"
	"github.com/codesphere-app/review-api/internal/llm"
)

// Service implements core.Reviewer.
type Service struct {
	promptMgr *llm.PromptManager
	generator core.Generator
	provider  llm.ModelProvider
	logger    *slog.Logger
}

// NewService creates a review service. provider selects the prompt variant.
func NewService(promptMgr *llm.PromptManager, generator core.Generator, provider llm.ModelProvider, logger *slog.Logger) *Service {
	if promptMgr == nil {
		panic("prompt manager cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Service{promptMgr: promptMgr, generator: generator, provider: provider, logger: logger}
}

// Review renders the prompt, calls the generator and classifies the outcome.
func (s *Service) Review(ctx context.Context, req *core.ReviewRequest) core.Result {
	if req == nil {
		req = &core.ReviewRequest{}
	}
	start := time.Now()
	log := s.logger.With("language", req.Language, "code_chars", len(req.Code))

	prompt, err := s.promptMgr.BuildPrompt(s.provider, req.Language, req.Code)
	if err != nil {
		log.Error("failed to render review prompt", "error", err)
		return core.Failed(fmt.Errorf("could not render prompt: %w", err))
	}

	text, err := s.generator.Generate(ctx, prompt)
	result := classify(text, err)

	switch result.Outcome {
	case core.OutcomeFailed:
		log.Error("review failed", "error", err, "duration", time.Since(start))
	case core.OutcomeNoResponse:
		log.Warn("review returned no candidates", "duration", time.Since(start))
	default:
		log.Info("review completed", "feedback_chars", len(text), "duration", time.Since(start))
	}
	return result
}

func classify(text string, err error) core.Result {
	switch {
	case err == nil:
		return core.Succeeded(text)
	case errors.Is(err, core.ErrNoResponse):
		return core.NoResponse()
	default:
		return core.Failed(err)
	}
}
