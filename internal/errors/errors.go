package errors

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"quizadmin/internal/apiclient"
)

var (
	// ErrMissingToken is returned when a login response carries no token.
	ErrMissingToken = errors.New("login response did not include a token")
	// ErrUnknownSortKey is returned when a sort column is not allowed for a list.
	ErrUnknownSortKey = errors.New("unknown sort key")
	// ErrInvalidPage is returned for a page number below 1.
	ErrInvalidPage = errors.New("invalid page")
	// ErrFormBusy is returned when a form is opened while another edit is in progress.
	ErrFormBusy = errors.New("another edit is in progress")
	// ErrFormClosed is returned when a closed form is submitted.
	ErrFormClosed = errors.New("form is not open")
	// ErrFormAborted marks a submit with a blank required field. It is a
	// cancellation and is not shown to the operator as an error.
	ErrFormAborted = errors.New("edit cancelled")
	// ErrNodeCycle is returned when a parent assignment would make a node its own ancestor.
	ErrNodeCycle = errors.New("parent would create a cycle in the node tree")
	// ErrUnknownResource is returned for a list page name that does not exist.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrNotSupported is returned for operations a resource does not offer.
	ErrNotSupported = errors.New("operation not supported for this resource")
	// ErrConfirmationRequired is returned when a delete is not confirmed.
	ErrConfirmationRequired = errors.New("delete must be confirmed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var sentinels = []struct {
	err    error
	status int
	code   string
}{
	{ErrMissingToken, http.StatusBadGateway, "MISSING_TOKEN"},
	{ErrUnknownSortKey, http.StatusBadRequest, "UNKNOWN_SORT_KEY"},
	{ErrInvalidPage, http.StatusBadRequest, "INVALID_PAGE"},
	{ErrFormBusy, http.StatusConflict, "FORM_BUSY"},
	{ErrFormClosed, http.StatusConflict, "FORM_CLOSED"},
	{ErrFormAborted, http.StatusBadRequest, "FORM_ABORTED"},
	{ErrNodeCycle, http.StatusUnprocessableEntity, "NODE_CYCLE"},
	{ErrUnknownResource, http.StatusNotFound, "UNKNOWN_RESOURCE"},
	{ErrNotSupported, http.StatusMethodNotAllowed, "NOT_SUPPORTED"},
	{ErrConfirmationRequired, http.StatusBadRequest, "CONFIRMATION_REQUIRED"},
}

// MapErrorToHTTP maps domain, validation and backend errors to HTTP errors.
// Backend errors keep the backend's status and message.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return NewHTTPError(s.status, err.Error(), s.code)
		}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return NewHTTPError(http.StatusBadRequest, validationErrs.Error(), "VALIDATION_FAILED")
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return NewHTTPError(apiErr.StatusCode, apiErr.Error(), "BACKEND_ERROR")
	}
	var transportErr *apiclient.TransportError
	if errors.As(err, &transportErr) {
		return NewHTTPError(http.StatusBadGateway, transportErr.Error(), "BACKEND_UNREACHABLE")
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
