// Package gemini is a minimal client for the Gemini generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"

	maxErrorBodyBytes = 1 << 20
)

// Config holds the connection settings of a Client.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
}

// APIError is returned when the upstream answers with a non-2xx status.
// URL never contains the API key.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%d %s from %s %s", e.StatusCode, http.StatusText(e.StatusCode), e.Method, e.URL)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Client calls generateContent for a single model. It is safe for concurrent use;
// the underlying http.Client is shared for the lifetime of the process.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client. Empty BaseURL and Model fall back to the public
// endpoint and DefaultModel; a nil httpClient uses http.DefaultClient.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

// Model returns the configured model ID.
func (c *Client) Model() string {
	return c.cfg.Model
}

// endpoint is the request URL without the key query parameter. It is the only
// form of the URL that may be logged or put into errors.
func (c *Client) endpoint() string {
	return c.cfg.BaseURL + "/v1beta/models/" + url.PathEscape(c.cfg.Model) + ":generateContent"
}

func (c *Client) requestURL() string {
	return c.endpoint() + "?key=" + url.QueryEscape(c.cfg.APIKey)
}

// GenerateContent posts the payload and decodes the answer. A 2xx answer with an
// empty body returns (nil, nil).
func (c *Client) GenerateContent(ctx context.Context, payload *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generateContent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generateContent request: %w", c.redact(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.redact(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("gemini call completed",
		"model", c.cfg.Model,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generateContent response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode generateContent response: %w", err)
	}
	return &out, nil
}

// Generate renders the outbound payload for prompt, performs the call and
// extracts the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.GenerateContent(ctx, BuildOutboundPayload(prompt))
	if err != nil {
		return "", err
	}

	if resp != nil {
		attrs := []any{"model", c.cfg.Model, "candidates", len(resp.Candidates)}
		if resp.ModelVersion != "" {
			attrs = append(attrs, "model_version", resp.ModelVersion)
		}
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			attrs = append(attrs, "finish_reason", resp.Candidates[0].FinishReason)
		}
		if resp.UsageMetadata != nil {
			attrs = append(attrs, "total_tokens", resp.UsageMetadata.TotalTokenCount)
		}
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			attrs = append(attrs, "block_reason", resp.PromptFeedback.BlockReason)
		}
		c.logger.Debug("gemini response received", attrs...)
	}

	return ExtractFeedback(resp)
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Method:     http.MethodPost,
		URL:        c.endpoint(),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var envelope apiErrorBody
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

// redact replaces the URL carried by transport errors, which would otherwise
// include the API key.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.endpoint()
	}
	if c.cfg.APIKey != "" && strings.Contains(err.Error(), c.cfg.APIKey) {
		return errors.New(strings.ReplaceAll(err.Error(), c.cfg.APIKey, "REDACTED"))
	}
	return err
}
