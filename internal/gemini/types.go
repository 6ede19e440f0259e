package gemini

import (
	"bytes"
	"encoding/json"
)

// GenerateContentRequest is the body of a generateContent call. Only the fields
// this service sends are declared so the encoded JSON stays minimal.
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Content is one conversation turn of a request.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a text fragment of a request turn.
type Part struct {
	Text string `json:"text"`
}

// GenerateContentResponse is the decoded body of a generateContent answer.
// Candidates is nil when the key is absent or null and empty when the list is empty.
// An explicit null is recorded separately because ExtractFeedback treats it as malformed.
type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`

	candidatesNull bool
}

// UnmarshalJSON decodes the answer and notes whether candidates was sent as null.
func (r *GenerateContentResponse) UnmarshalJSON(data []byte) error {
	type plain GenerateContentResponse
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	raw, ok := keys["candidates"]
	r.candidatesNull = ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
	return nil
}

// Candidate is one generated answer.
type Candidate struct {
	Content      *CandidateContent `json:"content"`
	FinishReason string            `json:"finishReason,omitempty"`
}

// CandidateContent holds the parts of a generated answer.
type CandidateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []ResponsePart `json:"parts"`
}

// ResponsePart is a fragment of a generated answer. Text is a pointer so a part
// without text can be told apart from an empty string.
type ResponsePart struct {
	Text *string `json:"text"`
}

// PromptFeedback is set when the prompt itself was blocked.
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// UsageMetadata reports token accounting for a call.
type UsageMetadata struct {
	PromptTokenCount     int32 `json:"promptTokenCount"`
	CandidatesTokenCount int32 `json:"candidatesTokenCount"`
	TotalTokenCount      int32 `json:"totalTokenCount"`
}

// apiErrorBody is the error envelope returned with non-2xx statuses.
type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
