package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrEmptyBody is returned by Bind for a JSON request without a body.
var ErrEmptyBody = errors.New("http: empty request body")

// Request wraps *http.Request with Laravel-style helpers. The router injects
// one into every container-dispatched action that asks for it.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes a JSON body into v. Form bodies are decoded through their
// json tags, first value per key.
func (req *Request) Bind(v any) error {
	if strings.Contains(req.ContentType(), "application/json") {
		defer req.raw.Body.Close()
		body, err := io.ReadAll(req.raw.Body)
		if err != nil {
			return err
		}
		if len(body) == 0 {
			return ErrEmptyBody
		}
		return json.Unmarshal(body, v)
	}

	if err := req.raw.ParseForm(); err != nil {
		return err
	}
	b, err := json.Marshal(req.All())
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a value from the query string or the form body.
func (req *Request) Input(key string, fallback ...string) string {
	_ = req.raw.ParseForm()
	return or(req.raw.FormValue(key), fallback)
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	return or(req.raw.URL.Query().Get(key), fallback)
}

// All returns the first value of every query and form key.
func (req *Request) All() map[string]string {
	_ = req.raw.ParseForm()
	out := make(map[string]string, len(req.raw.Form))
	for k, v := range req.raw.Form {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// Has reports whether key is present and non-empty.
func (req *Request) Has(key string) bool { return req.Input(key) != "" }

// RouteParam returns a URL route parameter.
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string { return req.raw.Header.Get(key) }

// BearerToken extracts the token from "Authorization: Bearer <token>".
func (req *Request) BearerToken() string {
	token, ok := strings.CutPrefix(req.raw.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return token
}

func (req *Request) Method() string      { return req.raw.Method }
func (req *Request) Path() string        { return req.raw.URL.Path }
func (req *Request) ContentType() string { return req.raw.Header.Get("Content-Type") }

// IsJSON reports whether the request sends or accepts JSON.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.Header("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}

func or(v string, fallback []string) string {
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}
