package core

import (
	"context"
	"errors"
)

// ErrNoResponse is returned by a Generator whose upstream answered without any
// candidate data. It is not a failure: callers report it with NoResponseFeedback.
var ErrNoResponse = errors.New("no response from model")

// Generator sends a rendered prompt to a language model and returns its text answer.
// Implementations must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
