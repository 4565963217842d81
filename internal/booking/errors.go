package booking

import "fmt"

// SubmissionError describes a failed booking request: either a transport
// failure (Err set, StatusCode zero) or a non-2xx response.
type SubmissionError struct {
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
