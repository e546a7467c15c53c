package model

import "fmt"

// APIError represents a non-2xx API response without diagnosable
// field-level details
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d [%s]: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// NewAPIError creates a new API error
func NewAPIError(message string, statusCode int, code string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// QuotaExceededError represents an HTTP 402 response: the account's
// monthly quota is used up. It is an account-level condition, never a
// per-request validation failure.
type QuotaExceededError struct {
	APIError
}

// NewQuotaExceededError creates a new quota error
func NewQuotaExceededError(message string) *QuotaExceededError {
	return &QuotaExceededError{
		APIError: APIError{
			StatusCode: 402,
			Code:       "quota_exceeded",
			Message:    message,
		},
	}
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %s", e.Message)
}

// NetworkError represents a transport-level failure: the request never
// produced an HTTP response (connection refused, DNS failure, timeout).
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *NetworkError {
	return &NetworkError{
		Message: message,
		Cause:   cause,
	}
}
