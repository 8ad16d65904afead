package errors

import "time"

// ErrorEnvelope is the body written for every failed request.
type ErrorEnvelope struct {
	Timestamp time.Time    `json:"timestamp"`
	Status    int          `json:"status"`
	Error     string       `json:"error"`   // HTTP reason phrase, e.g. "Not Found"
	Message   string       `json:"message"` // User-friendly error message
	Code      string       `json:"code,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
	RequestID string       `json:"requestId,omitempty"`
}
