package core

// Outcome classifies how a review finished.
type Outcome int

const (
	// OutcomeSuccess means the model returned text.
	OutcomeSuccess Outcome = iota
	// OutcomeNoResponse means the call succeeded but carried no candidate data.
	OutcomeNoResponse
	// OutcomeFailed means the upstream call or the response extraction failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoResponse:
		return "no_response"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the typed outcome of a review. Transports decide how to present it;
// Feedback gives the plain-text rendering used by the HTTP endpoint.
type Result struct {
	Outcome Outcome
	Text    string
	Err     error
}

// Succeeded wraps model output.
func Succeeded(text string) Result {
	return Result{Outcome: OutcomeSuccess, Text: text}
}

// NoResponse reports an answer without candidates.
func NoResponse() Result {
	return Result{Outcome: OutcomeNoResponse}
}

// Failed wraps an upstream or extraction error.
func Failed(err error) Result {
	return Result{Outcome: OutcomeFailed, Err: err}
}

// Feedback renders the result as caller-visible text.
func (r Result) Feedback() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return r.Text
	case OutcomeNoResponse:
		return NoResponseFeedback
	default:
		if r.Err == nil {
			return "Error: unknown failure"
		}
		return "Error: " + r.Err.Error()
	}
}

// Response wraps the rendered feedback in the endpoint's response body.
func (r Result) Response() *ReviewResponse {
	return &ReviewResponse{Feedback: r.Feedback()}
}
