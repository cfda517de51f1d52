package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-container/framework/http"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newJSONRequest(body string) *gohttp.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return gohttp.NewRequest(req)
}

func newFormRequest(values url.Values) *gohttp.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return gohttp.NewRequest(req)
}

type user struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ── Bind ─────────────────────────────────────────────────────────────────────

func TestRequest_BindJSON(t *testing.T) {
	t.Parallel()
	req := newJSONRequest(`{"name":"Alice","email":"alice@example.com"}`)

	var u user
	require.NoError(t, req.Bind(&u))
	assert.Equal(t, user{Name: "Alice", Email: "alice@example.com"}, u)
}

func TestRequest_BindJSON_EmptyBody(t *testing.T) {
	t.Parallel()
	var u user
	assert.ErrorIs(t, newJSONRequest("").Bind(&u), gohttp.ErrEmptyBody)
}

func TestRequest_BindJSON_Invalid(t *testing.T) {
	t.Parallel()
	var u user
	assert.Error(t, newJSONRequest("{not json").Bind(&u))
}

func TestRequest_BindForm(t *testing.T) {
	t.Parallel()
	req := newFormRequest(url.Values{"name": {"Bob"}, "email": {"bob@example.com"}})

	var u user
	require.NoError(t, req.Bind(&u))
	assert.Equal(t, "Bob", u.Name)
	assert.Equal(t, "bob@example.com", u.Email)
}

// ── Input ────────────────────────────────────────────────────────────────────

func TestRequest_Input(t *testing.T) {
	t.Parallel()
	req := newFormRequest(url.Values{"name": {"Carol"}})

	assert.Equal(t, "Carol", req.Input("name"))
	assert.Equal(t, "fallback", req.Input("missing", "fallback"))
	assert.True(t, req.Has("name"))
	assert.False(t, req.Has("missing"))
}

func TestRequest_QueryAndAll(t *testing.T) {
	t.Parallel()
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/users?page=2&sort=name", nil))

	assert.Equal(t, "2", req.Query("page"))
	assert.Equal(t, "1", req.Query("limit", "1"))
	assert.Equal(t, map[string]string{"page": "2", "sort": "name"}, req.All())
}

func TestRequest_Headers(t *testing.T) {
	t.Parallel()
	raw := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	raw.Header.Set("X-Custom", "yes")
	raw.Header.Set("Authorization", "Bearer secret-token")
	raw.Header.Set("Accept", "application/json")
	req := gohttp.NewRequest(raw)

	assert.Equal(t, "yes", req.Header("X-Custom"))
	assert.Equal(t, "secret-token", req.BearerToken())
	assert.True(t, req.IsJSON())
	assert.Equal(t, http.MethodGet, req.Method())
	assert.Equal(t, "/api/v1/users", req.Path())
	assert.Same(t, raw, req.Raw())
}

func TestRequest_BearerToken_Missing(t *testing.T) {
	t.Parallel()
	raw := httptest.NewRequest(http.MethodGet, "/", nil)
	raw.Header.Set("Authorization", "Basic abc")

	assert.Empty(t, gohttp.NewRequest(raw).BearerToken())
}

func TestRequest_RouteParam(t *testing.T) {
	t.Parallel()
	var got string
	r := chi.NewRouter()
	r.Get("/users/{id}", func(_ http.ResponseWriter, raw *http.Request) {
		got = gohttp.NewRequest(raw).RouteParam("id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/42", nil))
	assert.Equal(t, "42", got)
}
