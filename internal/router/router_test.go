package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizadmin/internal/apiclient"
	"quizadmin/internal/apitest"
	"quizadmin/internal/config"
	"quizadmin/internal/console"
	"quizadmin/internal/gateway"
	"quizadmin/internal/handler"
	"quizadmin/internal/session"
	"quizadmin/internal/storage"
)

type testApp struct {
	e       *echo.Echo
	backend *apitest.Backend
}

func newApp(t *testing.T) *testApp {
	t.Helper()
	backend := apitest.New()
	t.Cleanup(backend.Close)
	backend.AddUser("Root", "root@example.com", "admin", "pw")

	cfg := &config.Config{PageLimit: 10, UsersPageSize: 5}
	store := session.New(storage.NewMemory())
	store.Hydrate(context.Background())
	c := console.New(cfg, gateway.New(apiclient.New(backend.URL(), store)), store)

	e := echo.New()
	Register(e, cfg, store, handler.NewAuthHandler(c), handler.NewResourceHandler(c))
	return &testApp{e: e, backend: backend}
}

func (a *testApp) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	rec := a.do(http.MethodPost, "/login", `{"email":"root@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	app := newApp(t)
	rec := app.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	app := newApp(t)
	for _, target := range []string{"/nodes", "/users/form", "/attempts?page=2"} {
		rec := app.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation), target)
	}
	assert.Zero(t, app.backend.Hits(http.MethodGet, "/nodes"))
}

func TestLoginFlow(t *testing.T) {
	app := newApp(t)

	rec := app.do(http.MethodGet, "/session", "")
	assert.Equal(t, "anonymous", decodeBody(t, rec)["status"])

	rec = app.do(http.MethodPost, "/login", `{"email":"not-an-email","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/login", `{"email":"root@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, rec)["error"])

	app.login(t)
	body := decodeBody(t, app.do(http.MethodGet, "/session", ""))
	assert.Equal(t, "authenticated", body["status"])
	assert.NotContains(t, body, "token")

	rec = app.do(http.MethodPost, "/logout", "")
	assert.Equal(t, "anonymous", decodeBody(t, rec)["status"])
	assert.Equal(t, http.StatusFound, app.do(http.MethodGet, "/nodes", "").Code)
}

func TestLoginWithoutToken(t *testing.T) {
	app := newApp(t)
	app.backend.OmitToken = true

	rec := app.do(http.MethodPost, "/login", `{"email":"root@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", decodeBody(t, rec)["code"])
	assert.Equal(t, "anonymous", decodeBody(t, app.do(http.MethodGet, "/session", ""))["status"])
}

func TestScreens(t *testing.T) {
	app := newApp(t)
	app.login(t)
	id := app.backend.Seed("nodes", apitest.Doc{"name": "Math", "type": "category", "parentId": nil})

	rec := app.do(http.MethodGet, "/nodes?sort=name&search=ma", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, "name", body["sort"])
	assert.Equal(t, "asc", body["order"])

	rec = app.do(http.MethodGet, "/nodes?sort=password", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/nodes?page=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/grades", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodDelete, "/nodes/"+id, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, app.backend.Count("nodes"))

	rec = app.do(http.MethodDelete, "/nodes/"+id+"?confirm=true", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(0), decodeBody(t, rec)["total"])
	assert.Equal(t, 0, app.backend.Count("nodes"))
}

func TestForms(t *testing.T) {
	app := newApp(t)
	app.login(t)

	rec := app.do(http.MethodPost, "/nodes", `{"name":"Math","type":"category"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, decodeBody(t, rec)["aborted"])
	assert.Equal(t, 1, app.backend.Count("nodes"))

	rec = app.do(http.MethodPost, "/nodes", `{"name":"","type":"category"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["aborted"])
	assert.Equal(t, 1, app.backend.Count("nodes"))

	rec = app.do(http.MethodPost, "/nodes", `{"name":"Bad","type":"planet"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeBody(t, rec)["code"])

	other := app.backend.Seed("nodes", apitest.Doc{"name": "Physics", "type": "category", "parentId": nil})
	rec = app.do(http.MethodGet, "/nodes/form?id="+other, "")
	assert.Equal(t, http.StatusConflict, rec.Code, "the failed draft is still open")
	assert.Equal(t, "FORM_BUSY", decodeBody(t, rec)["code"])

	rec = app.do(http.MethodDelete, "/nodes/form", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "closed", decodeBody(t, rec)["state"])

	rec = app.do(http.MethodGet, "/nodes/form", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "open", decodeBody(t, rec)["state"])

	rec = app.do(http.MethodPost, "/attempts", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetrics(t *testing.T) {
	app := newApp(t)
	app.login(t)

	rec := app.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "quizadmin_api_requests_total")
}
