// Package core defines the data structures and interfaces shared by the review
// service and its transports. Nothing here performs I/O.
package core

import "context"

// NoResponseFeedback is returned to callers when the upstream model produced no candidates.
const NoResponseFeedback = "No response from Gemini."

// ReviewRequest is the body accepted by the review endpoint.
// Neither field is validated; empty values are forwarded as-is.
type ReviewRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// ReviewResponse is the body returned by the review endpoint. Feedback always
// carries text, which may be model output, the no-response fallback or an error message.
type ReviewResponse struct {
	Feedback string `json:"feedback"`
}

// Reviewer produces feedback for a single piece of source code.
//
//go:generate mockgen -destination=../../mocks/mock_core.go -package=mocks . Reviewer,Generator
type Reviewer interface {
	// Review blocks until the upstream model answers or the call fails.
	// Failures are reported through the returned Result, never as a panic.
	Review(ctx context.Context, req *ReviewRequest) Result
}
