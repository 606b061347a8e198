package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNetwork marks a transport failure where no HTTP response arrived
// at all. It is distinct from an APIError, which always carries a
// status code.
var ErrNetwork = errors.New("backend unreachable")

// APIError is a non-success HTTP response from the backend, with the
// human-readable message extracted from the conventional error body.
type APIError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int

	// Message is the detail string from the error body, or a generic
	// fallback when the body carried none.
	Message string

	// Details holds individual validation messages when the backend
	// returned a structured detail list instead of a single string.
	Details []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.UserMessage())
}

// UserMessage returns the most specific message available, preferring
// the structured validation details over the generic one.
func (e *APIError) UserMessage() string {
	if len(e.Details) > 0 {
		return strings.Join(e.Details, ", ")
	}
	return e.Message
}

// IsAuthError reports whether err is a 401 response from any endpoint.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNetworkError reports whether err was a transport failure with no
// HTTP response attached.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// errorBody is the backend's conventional error envelope. The detail
// field is either a plain string or a list of {msg} objects for
// validation failures.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseErrorBody builds an APIError from a non-success response body.
// Bodies that are not JSON, or carry no detail, fall back to a generic
// status message.
func parseErrorBody(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("http error, status %d", status),
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return apiErr
	}

	var detail string
	if json.Unmarshal(envelope.Detail, &detail) == nil && detail != "" {
		apiErr.Message = detail
		return apiErr
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(envelope.Detail, &items) == nil {
		for _, item := range items {
			if item.Msg != "" {
				apiErr.Details = append(apiErr.Details, item.Msg)
			}
		}
	}

	return apiErr
}
