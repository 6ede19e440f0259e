package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/codesphere-app/review-api/internal/core"
	"github.com/codesphere-app/review-api/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReviewHandler_Handle(t *testing.T) {
	tests := []struct {
		name         string
		result       core.Result
		wantFeedback string
	}{
		{name: "success", result: core.Succeeded("1. No bugs"), wantFeedback: "1. No bugs"},
		{name: "no response", result: core.NoResponse(), wantFeedback: "No response from Gemini."},
		{name: "failure stays 200", result: core.Failed(errors.New("boom")), wantFeedback: "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reviewer := mocks.NewMockReviewer(ctrl)
			reviewer.EXPECT().
				Review(gomock.Any(), &core.ReviewRequest{Language: "python", Code: "def f(): pass"}).
				Return(tt.result)

			h := NewReviewHandler(reviewer, discardLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(`{"language":"python","code":"def f(): pass"}`))
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body core.ReviewResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantFeedback, body.Feedback)
		})
	}
}

func TestReviewHandler_MissingFieldsAreForwardedEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)
	reviewer.EXPECT().
		Review(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *core.ReviewRequest) core.Result {
			assert.Empty(t, req.Language)
			assert.Equal(t, "x", req.Code)
			return core.Succeeded("fine")
		})

	h := NewReviewHandler(reviewer, discardLogger())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(`{"code":"x","extra":true}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"feedback":"fine"}`, rec.Body.String())
}

func TestReviewHandler_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)

	h := NewReviewHandler(reviewer, discardLogger())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(`{"language":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewHandler_FeedbackKeepsHTMLCharacters(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)
	reviewer.EXPECT().
		Review(gomock.Any(), gomock.Any()).
		Return(core.Succeeded("use `a < b && b > c` in <code>"))

	h := NewReviewHandler(reviewer, discardLogger())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(`{"language":"go","code":"x"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{\"feedback\":\"use `a < b && b > c` in <code>\"}\n", rec.Body.String())
}
