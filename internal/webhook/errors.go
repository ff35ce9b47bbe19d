package webhook

import "errors"

var (
	// ErrNotConfigured indicates no URL is set for the endpoint.
	ErrNotConfigured = errors.New("webhook endpoint not configured")

	// ErrUnavailable indicates the webhook host is unreachable.
	ErrUnavailable = errors.New("webhook unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("webhook request timed out")

	// ErrInvalidResponse indicates the webhook body could not be decoded
	// into the expected shape.
	ErrInvalidResponse = errors.New("invalid webhook response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("webhook retry attempts exhausted")

	// ErrSubmissionRejected indicates the lead endpoint answered success=false.
	ErrSubmissionRejected = errors.New("project submission rejected")
)
