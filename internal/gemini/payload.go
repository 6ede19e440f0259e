package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/codesphere-app/review-api/internal/core"
)

// BuildOutboundPayload wraps a prompt in the single-content, single-part shape
// expected by generateContent.
func BuildOutboundPayload(prompt string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
	}
}

// encodePayload renders the request body. HTML characters are kept as-is so the
// prompt text reaches the upstream unchanged.
func encodePayload(payload *GenerateContentRequest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ExtractionError describes a generateContent answer whose structure does not
// match what ExtractFeedback reads.
type ExtractionError struct {
	Field  string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("malformed generateContent response: %s %s", e.Field, e.Reason)
}

// ExtractFeedback returns candidates[0].content.parts[0].text verbatim.
// A nil response, or one without a candidates key, yields core.ErrNoResponse.
// Any other structural mismatch, an explicit null included, yields an *ExtractionError.
func ExtractFeedback(resp *GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", core.ErrNoResponse
	}
	if resp.candidatesNull {
		return "", &ExtractionError{Field: "candidates", Reason: "is null"}
	}
	if resp.Candidates == nil {
		return "", core.ErrNoResponse
	}
	if len(resp.Candidates) == 0 {
		return "", &ExtractionError{Field: "candidates", Reason: "is empty"}
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return "", &ExtractionError{Field: "candidates[0].content", Reason: "is missing"}
	}
	if len(content.Parts) == 0 {
		return "", &ExtractionError{Field: "candidates[0].content.parts", Reason: "is empty"}
	}

	text := content.Parts[0].Text
	if text == nil {
		return "", &ExtractionError{Field: "candidates[0].content.parts[0].text", Reason: "is missing"}
	}
	return *text, nil
}
