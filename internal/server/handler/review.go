// Package handler provides HTTP handlers for the review API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/codesphere-app/review-api/internal/core"
)

// ReviewHandler serves POST /api/review.
type ReviewHandler struct {
	reviewer core.Reviewer
	logger   *slog.Logger
}

// NewReviewHandler creates a review handler backed by reviewer.
func NewReviewHandler(reviewer core.Reviewer, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewer: reviewer,
		logger:   logger,
	}
}

// Handle decodes the request, runs the review and always answers 200 with the
// rendered feedback, whatever the upstream outcome. Only an undecodable body is rejected.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("request_id", middleware.GetReqID(r.Context()))

	var req core.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("could not decode review request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.reviewer.Review(r.Context(), &req)
	if result.Outcome != core.OutcomeSuccess {
		log.Info("returning fallback feedback", "outcome", result.Outcome.String())
	}

	writeJSON(w, http.StatusOK, result.Response(), log)
}

func writeJSON(w http.ResponseWriter, status int, body any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
