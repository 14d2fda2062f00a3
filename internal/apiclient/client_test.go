package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

func newBackend(t *testing.T, status int, contentType, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		rec.body = string(raw)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClientSendsDefaultsAndBearer(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, "application/json; charset=utf-8", `{"items":[],"total":0}`)
	client := New(srv.URL+"/api/", TokenFunc(func() string { return "T" }))

	var out struct {
		Total int `json:"total"`
	}
	err := client.Get(context.Background(), "/nodes", RequestOptions{Query: Query{{"page", 1}, {"search", nil}, {"sort", "name"}}}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/nodes", rec.path)
	assert.Equal(t, "page=1&sort=name", rec.query)
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"))
	assert.Equal(t, "application/json", rec.header.Get("Accept"))
	assert.Equal(t, "Bearer T", rec.header.Get("Authorization"))
	assert.NotEmpty(t, rec.header.Get("X-Request-ID"))
}

func TestClientSkipAuthAndMissingToken(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, "application/json", `{}`)

	client := New(srv.URL, TokenFunc(func() string { return "T" }))
	require.NoError(t, client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.com"}, RequestOptions{SkipAuth: true}, nil))
	assert.Empty(t, rec.header.Get("Authorization"))
	assert.JSONEq(t, `{"email":"a@b.com"}`, rec.body)

	anonymous := New(srv.URL, TokenFunc(func() string { return "" }))
	require.NoError(t, anonymous.Get(context.Background(), "/users", RequestOptions{}, nil))
	assert.Empty(t, rec.header.Get("Authorization"))
}

func TestClientCallerHeadersWin(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, "text/plain", "ok")
	client := New(srv.URL, nil)

	err := client.Put(context.Background(), "/raw", "plain body", RequestOptions{
		Headers: map[string]string{"content-type": "text/plain", "X-Request-ID": "fixed"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "text/plain", rec.header.Get("Content-Type"))
	assert.Equal(t, "fixed", rec.header.Get("X-Request-ID"))
	assert.Equal(t, "plain body", rec.body)
}

func TestClientNonJSONResponseIsAbsent(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, "text/html", `{"message":"ignored"}`)
	client := New(srv.URL, nil)

	out := map[string]string{"untouched": "yes"}
	require.NoError(t, client.Delete(context.Background(), "/nodes/1", RequestOptions{}, &out))
	assert.Equal(t, map[string]string{"untouched": "yes"}, out)
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMessage string
	}{
		{
			name:        "server message on 404",
			status:      http.StatusNotFound,
			contentType: "application/json",
			body:        `{"message":"Not found"}`,
			wantMessage: "Not found",
		},
		{
			name:        "synthesized on 500 without json",
			status:      http.StatusInternalServerError,
			contentType: "text/plain",
			body:        "boom",
			wantMessage: "HTTP 500 Internal Server Error for GET /nodes",
		},
		{
			name:        "synthesized when json has no message",
			status:      http.StatusForbidden,
			contentType: "application/json",
			body:        `{"error":"nope"}`,
			wantMessage: "HTTP 403 Forbidden for GET /nodes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, tt.status, tt.contentType, tt.body)
			client := New(srv.URL, nil)

			err := client.Get(context.Background(), "/nodes", RequestOptions{Query: Query{{"page", 2}}}, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantMessage, err.Error())

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, http.MethodGet, apiErr.Method)
			assert.Equal(t, "/nodes", apiErr.Path)
		})
	}
}

func TestClientTransportErrorNoRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"items": [`)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	var out map[string]any
	err := client.Get(context.Background(), "/nodes", RequestOptions{}, &out)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 1, calls)

	srv.Close()
	err = client.Get(context.Background(), "/nodes", RequestOptions{}, &out)
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 1, calls)
}
