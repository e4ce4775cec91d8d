package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnauthorized is the sentinel behind every 401 the upstream
// returns. By the time a caller sees it the session has already
// been cleared; the session middleware is the one place that turns
// it into a login redirect.
var ErrUnauthorized = errors.New("upstream: unauthorized")

// APIError is a non-2xx upstream response: the status plus the raw
// error payload, kept so callers can surface the server's own
// message to the user.
type APIError struct {
	Status int
	Data   json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: status %d", e.Status)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) work on 401s.
func (e *APIError) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}

// Message extracts the server-provided message from the payload,
// falling back to the given default when the body carries none.
func (e *APIError) Message(fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if len(e.Data) > 0 && json.Unmarshal(e.Data, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}

// ErrorMessage returns the user-facing message for any error a
// service operation produced: the server message for API errors,
// the fallback for everything else.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}
