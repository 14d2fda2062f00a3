package apiclient

import (
	"fmt"
	"net/http"
)

// APIError is returned for any response outside the 2xx range.
type APIError struct {
	StatusCode int
	StatusText string
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(method, path string, resp *http.Response, serverMessage string) *APIError {
	statusText := http.StatusText(resp.StatusCode)
	if len(resp.Status) > 4 {
		// resp.Status is "404 Not Found"; keep what the server actually sent.
		statusText = resp.Status[4:]
	}
	msg := serverMessage
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d %s for %s %s", resp.StatusCode, statusText, method, path)
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		StatusText: statusText,
		Method:     method,
		Path:       path,
		Message:    msg,
	}
}

// TransportError wraps network failures and undecodable successful responses.
// The client never retries them.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
