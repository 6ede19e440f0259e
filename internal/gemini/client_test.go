package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesphere-app/review-api/internal/core"
)

const testAPIKey = "test-secret-key"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Model: "gemini-2.5-flash", APIKey: testAPIKey}, srv.Client(), nil)
}

func TestClient_Generate_RequestShape(t *testing.T) {
	var (
		gotMethod, gotPath, gotKey, gotContentType string
		gotBody                                    []byte
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"looks good"}],"role":"model"},"finishReason":"STOP"}],"usageMetadata":{"totalTokenCount":12},"modelVersion":"gemini-2.5-flash"}`)
	})

	got, err := client.Generate(context.Background(), "the <prompt> & more")
	require.NoError(t, err)
	assert.Equal(t, "looks good", got)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, testAPIKey, gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, `{"contents":[{"parts":[{"text":"the <prompt> & more"}]}]}`, string(gotBody))
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 500, "message": "internal failure", "status": "INTERNAL"},
		})
	})

	_, err := client.Generate(context.Background(), "p")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "internal failure", apiErr.Message)
	assert.Contains(t, err.Error(), "500 Internal Server Error from POST ")
	assert.Contains(t, err.Error(), "/v1beta/models/gemini-2.5-flash:generateContent: internal failure")
	assert.NotContains(t, err.Error(), testAPIKey)
}

func TestClient_Generate_UpstreamErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), "p")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.NotContains(t, err.Error(), ": ")
}

func TestClient_Generate_EmptyBodyIsNoResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, core.ErrNoResponse)
}

func TestClient_Generate_MissingCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	_, err := client.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, core.ErrNoResponse)
}

func TestClient_Generate_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"candidates": "not-a-list"`)
	})

	_, err := client.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode generateContent response")
}

func TestClient_Generate_TransportErrorIsRedacted(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: baseURL, APIKey: testAPIKey}, nil, nil)
	_, err := client.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testAPIKey)
	assert.Contains(t, err.Error(), ":generateContent")
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://example.test/", APIKey: "k"}, nil, nil)
	assert.Equal(t, DefaultModel, client.Model())
	assert.Equal(t, "https://example.test/v1beta/models/gemini-2.5-flash:generateContent", client.endpoint())
	assert.Equal(t, "https://example.test/v1beta/models/gemini-2.5-flash:generateContent?key=k", client.requestURL())

	client = NewClient(Config{}, nil, nil)
	assert.Equal(t, DefaultBaseURL+"/v1beta/models/gemini-2.5-flash:generateContent", client.endpoint())
}
