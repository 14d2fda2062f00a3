package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"quizadmin/internal/apiclient"
)

func TestMapErrorToHTTP(t *testing.T) {
	type draft struct {
		Name string `validate:"required"`
	}
	validationErr := validator.New().Struct(draft{})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"wrapped sentinel", fmt.Errorf("sort %q: %w", "age", ErrUnknownSortKey), http.StatusBadRequest, "UNKNOWN_SORT_KEY", `sort "age": unknown sort key`},
		{"node cycle", ErrNodeCycle, http.StatusUnprocessableEntity, "NODE_CYCLE", ErrNodeCycle.Error()},
		{"form busy", ErrFormBusy, http.StatusConflict, "FORM_BUSY", ErrFormBusy.Error()},
		{"backend message kept", &apiclient.APIError{StatusCode: 404, Message: "Not found"}, http.StatusNotFound, "BACKEND_ERROR", "Not found"},
		{"transport", &apiclient.TransportError{Err: errors.New("connection refused")}, http.StatusBadGateway, "BACKEND_UNREACHABLE", "connection refused"},
		{"validation", validationErr, http.StatusBadRequest, "VALIDATION_FAILED", validationErr.Error()},
		{"http error passes through", NewHTTPError(http.StatusFound, "login", "REDIRECT"), http.StatusFound, "REDIRECT", "login"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.Equal(t, ErrorResponse{Error: tt.wantMsg, Code: tt.wantCode}, got.ToErrorResponse())
		})
	}
}
